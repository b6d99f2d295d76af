package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartItemInput producto y cantidad solicitada al agregar al carrito.
type AddCartItemInput struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// AddCartItemsRequest entrada para agregar uno o varios productos al carrito.
type AddCartItemsRequest struct {
	Items []AddCartItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateCartItemRequest entrada para cambiar la cantidad de una línea.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,gt=0"`
}

// ProductDetailsDTO proyección del producto dentro de líneas de carrito y órdenes.
type ProductDetailsDTO struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Picture     string          `json:"picture,omitempty"`
}

// CartItemResponse línea de carrito con total recalculado.
type CartItemResponse struct {
	ID             string            `json:"id"`
	ProductID      string            `json:"product_id"`
	Quantity       int               `json:"quantity"`
	TotalPrice     decimal.Decimal   `json:"total_price"`
	ProductDetails ProductDetailsDTO `json:"product_details"`
}

// CartResponse carrito con líneas expandidas y total recalculado en la lectura.
type CartResponse struct {
	ID          string             `json:"id"`
	StoreID     string             `json:"store_id"`
	UserID      string             `json:"user_id"`
	Items       []CartItemResponse `json:"items"`
	TotalPrices decimal.Decimal    `json:"total_prices"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
