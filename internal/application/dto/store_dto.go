package dto

import "time"

// AddressDTO dirección postal.
type AddressDTO struct {
	Line1   string `json:"line1" validate:"required,min=10,max=500"`
	Line2   string `json:"line2"`
	Country string `json:"country" validate:"required,min=3,max=100"`
	State   string `json:"state" validate:"required,min=2,max=100"`
	City    string `json:"city" validate:"required,min=3,max=100"`
}

// CreateStoreRequest entrada para crear una tienda.
type CreateStoreRequest struct {
	Name        string     `json:"name" validate:"required,min=3,max=100"`
	Description string     `json:"description" validate:"required,min=6,max=500"`
	Active      bool       `json:"active"`
	Picture     string     `json:"picture"`
	Address     AddressDTO `json:"address"`
}

// UpdateStoreRequest entrada para editar una tienda.
type UpdateStoreRequest struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Active      *bool       `json:"active"`
	Picture     *string     `json:"picture"`
	Address     *AddressDTO `json:"address"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID          string     `json:"id"`
	TeamID      string     `json:"team_id"`
	OwnerID     string     `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Address     AddressDTO `json:"address"`
	Active      bool       `json:"active"`
	Picture     string     `json:"picture,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// StoreDetails proyección de la tienda unida a reportes y gráficas.
type StoreDetails struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Address     AddressDTO `json:"address"`
	Active      bool       `json:"active"`
}
