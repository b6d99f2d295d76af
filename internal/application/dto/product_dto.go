package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto en una tienda.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	MinQuantity int             `json:"min_quantity" validate:"min=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Picture     string          `json:"picture"`
}

// UpdateProductRequest entrada para actualizar un producto. Si Quantity viene, se registra en el historial.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Quantity    *int             `json:"quantity" validate:"omitempty,min=0"`
	MinQuantity *int             `json:"min_quantity" validate:"omitempty,min=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Picture     *string          `json:"picture"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	StoreID     string          `json:"store_id"`
	TeamID      string          `json:"team_id"`
	OwnerID     string          `json:"owner_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Picture     string          `json:"picture,omitempty"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
