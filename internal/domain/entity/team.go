package entity

import "time"

// Team representa un equipo/tenant del sistema. Un usuario es dueño de como máximo un equipo.
type Team struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
