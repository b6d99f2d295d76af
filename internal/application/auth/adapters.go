package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/pkg/jwt"
)

// BcryptHasher implementa PasswordHasher con bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher cost <= 0 usa bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// JWTIssuer implementa TokenIssuer con pkg/jwt (HS256).
type JWTIssuer struct {
	cfg JWTConfig
}

// NewJWTIssuer construye el emisor.
func NewJWTIssuer(cfg JWTConfig) *JWTIssuer {
	return &JWTIssuer{cfg: cfg}
}

func (i *JWTIssuer) Issue(user *entity.User) (string, time.Time, error) {
	return jwt.Generate(i.cfg.Secret, user.ID, user.TeamID, user.Role, i.cfg.Issuer, i.cfg.ExpMinutes)
}
