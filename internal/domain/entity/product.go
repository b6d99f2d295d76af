package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de una tienda. Cada cambio de Quantity se refleja en su History.
type Product struct {
	ID          string
	StoreID     string
	TeamID      string
	OwnerID     string
	Name        string
	Description string
	Quantity    int
	MinQuantity int // umbral de stock bajo
	UnitPrice   decimal.Decimal
	Picture     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si la cantidad actual está por debajo del mínimo configurado.
func (p *Product) IsLowStock() bool {
	return p.Quantity < p.MinQuantity
}
