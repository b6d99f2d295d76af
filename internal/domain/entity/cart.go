package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart carrito activo de un usuario en una tienda. Único por (StoreID, UserID).
// TotalPrices nunca es fuente de verdad: se recalcula en cada lectura (ver pricing.Aggregate).
type Cart struct {
	ID          string
	StoreID     string
	UserID      string
	Items       []string // IDs de CartItem en orden de inserción
	TotalPrices decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CartItem línea de un carrito. TotalPrice es un caché escrito al crear/actualizar y puede estar desactualizado.
type CartItem struct {
	ID         string
	CartID     string
	ProductID  string
	Quantity   int
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductDetails proyección de un producto embebida en líneas de carrito y órdenes.
type ProductDetails struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Picture     string          `json:"picture,omitempty"`
}

// CartItemDetails línea de carrito unida (join) con el producto vigente.
type CartItemDetails struct {
	CartItem
	ProductDetails ProductDetails
}

// CartDetails carrito con sus líneas expandidas. Es la entrada del agregador de precios.
type CartDetails struct {
	ID          string
	StoreID     string
	UserID      string
	Items       []*CartItemDetails
	TotalPrices decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
