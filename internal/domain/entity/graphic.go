package entity

import "time"

// Graphic definición de gráfica que referencia Histories para visualizar cantidad vs tiempo.
type Graphic struct {
	ID          string
	Name        string
	Description string
	HistoryIDs  []string
	GeneratedBy string
	TeamID      string
	StoreID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
