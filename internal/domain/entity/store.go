package entity

import "time"

// Address dirección postal de una tienda.
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
}

// Store representa una tienda de un equipo; agrupa productos, carritos, reportes y gráficas.
type Store struct {
	ID          string
	TeamID      string
	OwnerID     string
	Name        string
	Description string
	Address     Address
	Active      bool
	Picture     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
