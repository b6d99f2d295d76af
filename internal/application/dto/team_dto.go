package dto

import "time"

// CreateTeamRequest entrada para crear un equipo (el dueño es el usuario autenticado).
type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateTeamRequest entrada para editar un equipo.
type UpdateTeamRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// TeamResponse salida de un equipo.
type TeamResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TeamCreatedResponse equipo creado más un token nuevo que ya incluye el team_id.
type TeamCreatedResponse struct {
	Team    TeamResponse  `json:"team"`
	Session LoginResponse `json:"session"`
}
