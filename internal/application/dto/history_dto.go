package dto

import "time"

// RecordQuantityRequest entrada manual para registrar una observación de cantidad.
// Quantity es puntero para distinguir "no enviado" de 0.
type RecordQuantityRequest struct {
	ProductID string     `json:"product_id" validate:"required,uuid"`
	Quantity  *int       `json:"quantity" validate:"required"`
	At        *time.Time `json:"at"`
}

// EvolutionDTO una observación diaria.
type EvolutionDTO struct {
	Date        time.Time `json:"date"`
	DateKey     string    `json:"date_key"`
	Quantity    int       `json:"quantity"`
	CollectedBy string    `json:"collected_by"`
}

// HistoryResponse serie temporal de un producto.
type HistoryResponse struct {
	ID          string         `json:"id"`
	ProductID   string         `json:"product_id"`
	ProductName string         `json:"product_name"`
	StoreID     string         `json:"store_id"`
	TeamID      string         `json:"team_id"`
	Evolutions  []EvolutionDTO `json:"evolutions"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
