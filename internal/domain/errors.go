package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Cada uno es un "kind" que la capa HTTP traduce a un status.
var (
	ErrBadRequest   = errors.New("solicitud inválida")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrConflict     = errors.New("recurso duplicado")
	ErrInternal     = errors.New("algo salió mal")

	// ErrDuplicate alias histórico de ErrConflict (violación de unicidad en persistencia).
	ErrDuplicate = ErrConflict
	// ErrInvalidInput alias de ErrBadRequest usado por las validaciones de casos de uso.
	ErrInvalidInput = ErrBadRequest
)

// AppError error de aplicación con mensaje público (seguro para el cliente) y mensaje interno (diagnóstico).
type AppError struct {
	Kind     error
	Public   string
	Internal string
	Cause    error
}

// NewError construye un AppError. internal admite formato estilo fmt.
func NewError(kind error, public, internal string, args ...any) *AppError {
	return &AppError{Kind: kind, Public: public, Internal: fmt.Sprintf(internal, args...)}
}

// Wrap igual que NewError pero conserva la causa original.
func Wrap(kind error, cause error, public, internal string, args ...any) *AppError {
	e := NewError(kind, public, internal, args...)
	e.Cause = cause
	return e
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Internal + ": " + e.Cause.Error()
	}
	if e.Internal != "" {
		return e.Internal
	}
	return e.Kind.Error()
}

// Unwrap permite errors.Is(err, domain.ErrNotFound) y errors.Is contra la causa.
func (e *AppError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// PublicMessage devuelve el mensaje apto para el cliente. Para errores sin tipar usa el mensaje genérico.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Public != "" {
		return appErr.Public
	}
	for _, kind := range []error{ErrBadRequest, ErrNotFound, ErrForbidden, ErrUnauthorized, ErrConflict} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return ErrInternal.Error()
}
