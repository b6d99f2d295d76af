package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-teams-api/internal/application/auth"
	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Inventario-teams-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.UseCase, *memory.Store) {
	t.Helper()
	st := memory.NewStore()
	uc := auth.NewUseCase(
		st.Users(),
		auth.NewBcryptHasher(bcrypt.MinCost),
		auth.NewJWTIssuer(auth.JWTConfig{Secret: testSecret, ExpMinutes: 15, Issuer: "teams-api-test"}),
		memory.NewDenylist(),
	)
	return uc, st
}

func TestRegister_AdminSinEquipoYEmailDuplicado(t *testing.T) {
	uc, st := newAuth(t)
	ctx := context.Background()

	out, err := uc.Register(ctx, dto.RegisterRequest{Email: " Ana@Example.com ", Password: "supersecreto"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", out.Email)
	assert.Equal(t, entity.RoleAdmin, out.Role)
	assert.Empty(t, out.TeamID)

	stored, err := st.Users().GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "supersecreto", stored.PasswordHash, "nunca se guarda el password plano")

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "otrosecreto"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "no-es-email", Password: "supersecreto"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "corto"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestLogin_TokenConRolYEquipo(t *testing.T) {
	uc, st := newAuth(t)
	ctx := context.Background()
	admin, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "supersecreto"})
	require.NoError(t, err)
	require.NoError(t, st.Users().SetTeam(ctx, admin.ID, "team-1"))

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "supersecreto"})
	require.NoError(t, err)
	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.UserID)
	assert.Equal(t, "team-1", claims.TeamID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "supersecreto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAddTeamMember_SoloAdminConEquipo(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	admin := dto.Actor{UserID: "u-admin", TeamID: "team-1", Role: entity.RoleAdmin}

	out, err := uc.AddTeamMember(ctx, admin, dto.AddMemberRequest{Email: "luis@example.com", Password: "supersecreto", Role: entity.RoleClerk})
	require.NoError(t, err)
	assert.Equal(t, "team-1", out.TeamID)
	assert.Equal(t, entity.RoleClerk, out.Role)

	_, err = uc.AddTeamMember(ctx, admin, dto.AddMemberRequest{Email: "otro@example.com", Password: "supersecreto", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	manager := dto.Actor{UserID: "u-man", TeamID: "team-1", Role: entity.RoleManager}
	_, err = uc.AddTeamMember(ctx, manager, dto.AddMemberRequest{Email: "x@example.com", Password: "supersecreto", Role: entity.RoleClerk})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.AddTeamMember(ctx, dto.Actor{UserID: "u", Role: entity.RoleAdmin}, dto.AddMemberRequest{Email: "y@example.com", Password: "supersecreto", Role: entity.RoleClerk})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogout_RevocaJTI(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "supersecreto"})
	require.NoError(t, err)
	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "supersecreto"})
	require.NoError(t, err)
	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)

	revoked, err := uc.IsRevoked(ctx, claims.TokenID())
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, uc.Logout(ctx, claims.TokenID(), claims.Expiry()))
	revoked, err = uc.IsRevoked(ctx, claims.TokenID())
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.ErrorIs(t, uc.Logout(ctx, "", time.Now().Add(time.Minute)), domain.ErrBadRequest)
}
