// Package evolution mantiene la serie temporal de cantidades de un producto agrupada por día.
package evolution

import (
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
)

const dateKeyLayout = "2006-01-02"

// DateKey devuelve el bucket YYYY-MM-DD del día calendario de t en su propia zona horaria.
// El llamador decide la zona (t.In(loc)) antes de invocarla.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// New construye una observación para el instante at.
func New(at time.Time, quantity int, collectedBy string) entity.Evolution {
	return entity.Evolution{
		Date:        at,
		DateKey:     DateKey(at),
		Quantity:    quantity,
		CollectedBy: collectedBy,
	}
}

// Merge inserta next en la serie: si ya existe una entrada con el mismo DateKey se reemplaza
// (la lectura del mismo día se sobrescribe), si no se agrega al final.
// No modifica evolutions; devuelve un slice nuevo.
func Merge(evolutions []entity.Evolution, next entity.Evolution) []entity.Evolution {
	out := make([]entity.Evolution, len(evolutions), len(evolutions)+1)
	copy(out, evolutions)
	if i := IndexOf(out, next.DateKey); i >= 0 {
		out[i] = next
		return out
	}
	return append(out, next)
}

// IndexOf posición de la entrada con dateKey, o -1.
func IndexOf(evolutions []entity.Evolution, dateKey string) int {
	return slices.IndexFunc(evolutions, func(e entity.Evolution) bool {
		return e.DateKey == dateKey
	})
}

// SortByDateKey copia ordenada cronológicamente (el almacenamiento no garantiza orden).
func SortByDateKey(evolutions []entity.Evolution) []entity.Evolution {
	out := slices.Clone(evolutions)
	slices.SortStableFunc(out, func(a, b entity.Evolution) int {
		if c := strings.Compare(a.DateKey, b.DateKey); c != 0 {
			return c
		}
		return a.Date.Compare(b.Date)
	})
	return out
}

// Latest última observación cronológica; false si la serie está vacía.
func Latest(evolutions []entity.Evolution) (entity.Evolution, bool) {
	if len(evolutions) == 0 {
		return entity.Evolution{}, false
	}
	sorted := SortByDateKey(evolutions)
	return sorted[len(sorted)-1], true
}
