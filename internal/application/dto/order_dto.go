package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemDTO línea de orden con el producto congelado.
type OrderItemDTO struct {
	ProductID      string            `json:"product_id" validate:"required,uuid"`
	Quantity       int               `json:"quantity" validate:"required,min=1"`
	ProductDetails ProductDetailsDTO `json:"product_details"`
}

// CreateOrderRequest entrada para crear una orden directamente (sin carrito).
type CreateOrderRequest struct {
	StoreID string         `json:"store_id" validate:"required,uuid"`
	Items   []OrderItemDTO `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderRequest reemplaza las líneas de una orden.
type UpdateOrderRequest struct {
	Items []OrderItemDTO `json:"items" validate:"required,min=1,dive"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number"`
	Items       []OrderItemDTO  `json:"items"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	OrderedBy   string          `json:"ordered_by"`
	TeamID      string          `json:"team_id"`
	StoreID     string          `json:"store_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
