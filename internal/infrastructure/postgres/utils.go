package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullableID convierte "" en NULL para claves foráneas opcionales.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

// orEmpty evita guardar NULL en columnas text[] NOT NULL.
func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
