package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateGraphicRequest entrada para crear una gráfica a partir de productos con historial.
type CreateGraphicRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"max=500"`
	ProductIDs  []string `json:"product_ids" validate:"required,min=1,dive,uuid"`
}

// CreateReportRequest entrada para crear un reporte a partir de órdenes.
type CreateReportRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"max=500"`
	OrderIDs    []string `json:"order_ids" validate:"required,min=1,dive,uuid"`
}

// UpdateNamedRequest edición de nombre/descripción (reportes y gráficas).
type UpdateNamedRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// GraphicResponse gráfica unida a sus historiales.
type GraphicResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	GeneratedBy string            `json:"generated_by"`
	TeamID      string            `json:"team_id"`
	StoreID     string            `json:"store_id"`
	Histories   []HistoryResponse `json:"histories"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// GraphicDetailResponse gráfica con el dueño y la tienda proyectados.
type GraphicDetailResponse struct {
	GraphicResponse
	OwnerDetails *OwnerDetails `json:"owner_details,omitempty"`
	StoreDetails *StoreDetails `json:"store_details,omitempty"`
}

// ReportResponse reporte unido a sus órdenes.
type ReportResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	GeneratedBy string          `json:"generated_by"`
	TeamID      string          `json:"team_id"`
	StoreID     string          `json:"store_id"`
	Orders      []OrderResponse `json:"orders"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ReportDetailResponse reporte con totales derivados, dueño y tienda proyectados.
type ReportDetailResponse struct {
	ReportResponse
	TotalItems    int             `json:"total_items"`
	TotalPrices   decimal.Decimal `json:"total_prices"`
	AllOrderItems []OrderItemDTO  `json:"all_order_items"`
	OwnerDetails  *OwnerDetails   `json:"owner_details,omitempty"`
	StoreDetails  *StoreDetails   `json:"store_details,omitempty"`
}
