package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
)

const minPasswordLength = 8

// UseCase casos de uso de autenticación: registro, alta de miembros, login y logout.
type UseCase struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	issuer   TokenIssuer
	denylist TokenDenylist
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(users repository.UserRepository, hasher PasswordHasher, issuer TokenIssuer, denylist TokenDenylist) *UseCase {
	return &UseCase{users: users, hasher: hasher, issuer: issuer, denylist: denylist}
}

// Register crea un usuario admin sin equipo; luego crea su equipo. Email duplicado = Conflict.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	user, err := uc.newUser(ctx, in.Email, in.Password, in.FirstName, in.LastName, entity.RoleAdmin, "")
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// AddTeamMember el admin de un equipo crea un manager o clerk ya enlazado a su equipo.
func (uc *UseCase) AddTeamMember(ctx context.Context, actor dto.Actor, in dto.AddMemberRequest) (*dto.UserResponse, error) {
	if actor.TeamID == "" {
		return nil, domain.NewError(domain.ErrForbidden, "Debe pertenecer a un equipo", "user (%s) sin equipo", actor.UserID)
	}
	if actor.Role != entity.RoleAdmin {
		return nil, domain.NewError(domain.ErrForbidden, "Solo un administrador puede agregar miembros",
			"user (%s) con rol %s", actor.UserID, actor.Role)
	}
	if in.Role != entity.RoleManager && in.Role != entity.RoleClerk {
		return nil, domain.NewError(domain.ErrBadRequest, "El rol debe ser manager o clerk", "rol %q", in.Role)
	}
	user, err := uc.newUser(ctx, in.Email, in.Password, in.FirstName, in.LastName, in.Role, actor.TeamID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || uc.hasher.Compare(user.PasswordHash, in.Password) != nil {
		return nil, domain.NewError(domain.ErrUnauthorized, "Credenciales inválidas", "login fallido para %s", in.Email)
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.NewError(domain.ErrForbidden, "La cuenta está inactiva", "user (%s) inactivo", user.ID)
	}
	return uc.issue(user)
}

// Refresh emite un token nuevo con el estado actual del usuario (p. ej. tras crear su equipo).
func (uc *UseCase) Refresh(ctx context.Context, userID string) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewError(domain.ErrUnauthorized, "Sesión inválida", "user (%s) no existe", userID)
	}
	return uc.issue(user)
}

// Logout revoca el token (jti) hasta su expiración.
func (uc *UseCase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return domain.NewError(domain.ErrBadRequest, "Token sin identificador", "logout sin jti")
	}
	return uc.denylist.Revoke(ctx, tokenID, expiresAt)
}

// IsRevoked informa si el token fue revocado. Lo consulta el AuthMiddleware.
func (uc *UseCase) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	return uc.denylist.IsRevoked(ctx, tokenID)
}

func (uc *UseCase) newUser(ctx context.Context, email, password, firstName, lastName, role, teamID string) (*entity.User, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.NewError(domain.ErrBadRequest, "Email inválido", "email %q", email)
	}
	if len(password) < minPasswordLength {
		return nil, domain.NewError(domain.ErrBadRequest, "La contraseña debe tener al menos 8 caracteres", "password corto")
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, emailTaken(email)
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		TeamID:       teamID,
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Role:         role,
		StoreIDs:     []string{},
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, emailTaken(email)
		}
		return nil, err
	}
	return user, nil
}

func (uc *UseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, exp, err := uc.issuer.Issue(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      *dto.NewUserResponse(user),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailTaken(email string) error {
	return domain.NewError(domain.ErrConflict, "El email ya está registrado", "email %s duplicado", email)
}
