package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Inventario-teams-api/pkg/jwt"
)

func TestGenerateYParse_IdaYVuelta(t *testing.T) {
	tok, exp, err := pkgjwt.Generate("s3cret", "u1", "t1", "manager", "teams-api", 30)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	claims, err := pkgjwt.Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "t1", claims.TeamID)
	assert.Equal(t, "manager", claims.Role)
	assert.NotEmpty(t, claims.TokenID(), "cada token lleva jti")
	assert.Equal(t, exp.Unix(), claims.Expiry().Unix())
}

func TestGenerate_JTIUnico(t *testing.T) {
	a, _, err := pkgjwt.Generate("s3cret", "u1", "", "admin", "teams-api", 5)
	require.NoError(t, err)
	b, _, err := pkgjwt.Generate("s3cret", "u1", "", "admin", "teams-api", 5)
	require.NoError(t, err)

	ca, err := pkgjwt.Parse("s3cret", a)
	require.NoError(t, err)
	cb, err := pkgjwt.Parse("s3cret", b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.TokenID(), cb.TokenID())
}

func TestParse_FirmaIncorrectaOExpirado(t *testing.T) {
	tok, _, err := pkgjwt.Generate("s3cret", "u1", "t1", "clerk", "teams-api", 5)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)

	expired, _, err := pkgjwt.Generate("s3cret", "u1", "t1", "clerk", "teams-api", -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("s3cret", expired)
	assert.Error(t, err)

	_, _, err = pkgjwt.Generate("", "u1", "t1", "clerk", "teams-api", 5)
	assert.Error(t, err)
}
