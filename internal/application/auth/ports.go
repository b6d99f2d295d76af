package auth

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
)

// PasswordHasher hashea y verifica passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer emite tokens de acceso para un usuario.
type TokenIssuer interface {
	Issue(user *entity.User) (token string, expiresAt time.Time, err error)
}

// TokenDenylist registra tokens revocados (jti) hasta su expiración.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
