package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/teams?sslmode=disable", migrateURL("postgres://u:p@db:5432/teams?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/teams", migrateURL("postgresql://u@db/teams"))
	assert.Equal(t, "pgx5://ya", migrateURL("pgx5://ya"))
}

func TestMigrationsEmbebidas(t *testing.T) {
	up, err := fs.ReadFile(migrationsFS, "migrations/000001_init.up.sql")
	require.NoError(t, err)
	for _, table := range []string{"users", "teams", "stores", "products", "carts", "cart_items", "orders", "histories", "reports", "graphics"} {
		assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	_, err = fs.ReadFile(migrationsFS, "migrations/000001_init.down.sql")
	assert.NoError(t, err)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% caf\_e`, escapeLike("100% caf_e"))
}
