package entity

import "time"

// Evolution una observación de cantidad para un producto en un día (DateKey = YYYY-MM-DD).
type Evolution struct {
	Date        time.Time `json:"date"`
	DateKey     string    `json:"date_key"`
	Quantity    int       `json:"quantity"`
	CollectedBy string    `json:"collected_by"`
}

// History serie temporal de cantidades de un producto. Única por (ProductID, StoreID, TeamID).
type History struct {
	ID          string
	ProductID   string
	ProductName string
	StoreID     string
	TeamID      string
	Evolutions  []Evolution
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
