package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem línea congelada de una orden: ProductDetails es una copia, no referencia el precio vigente.
type OrderItem struct {
	ProductID      string         `json:"product_id"`
	Quantity       int            `json:"quantity"`
	ProductDetails ProductDetails `json:"product_details"`
}

// Order snapshot inmutable de un carrito al momento del checkout (o creada directamente).
type Order struct {
	ID          string
	OrderNumber string
	Items       []OrderItem
	TotalPrice  decimal.Decimal
	OrderedBy   string
	TeamID      string
	StoreID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrderNumber número legible de orden: ORD-AAAAMMDD-<8 primeros del id>.
func NewOrderNumber(now time.Time, id string) string {
	suffix := strings.ReplaceAll(id, "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return "ORD-" + now.Format("20060102") + "-" + strings.ToUpper(suffix)
}
