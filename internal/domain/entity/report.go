package entity

import "time"

// Report resumen con nombre que agrupa órdenes de un equipo y tienda.
type Report struct {
	ID          string
	Name        string
	Description string
	OrderIDs    []string
	GeneratedBy string
	TeamID      string
	StoreID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
