package dto

import "github.com/jhoicas/Inventario-teams-api/internal/domain/entity"

// Mappers compartidos entre casos de uso (entidad → respuesta). Los campos internos no se exponen.

// NewUserResponse proyecta un usuario sin el hash de password.
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	storeIDs := u.StoreIDs
	if storeIDs == nil {
		storeIDs = []string{}
	}
	return &UserResponse{
		ID:        u.ID,
		TeamID:    u.TeamID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		StoreIDs:  storeIDs,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewOwnerDetails proyección mínima del usuario generador.
func NewOwnerDetails(u *entity.User) *OwnerDetails {
	if u == nil {
		return nil
	}
	return &OwnerDetails{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName, Role: u.Role}
}

// NewStoreResponse proyecta una tienda.
func NewStoreResponse(s *entity.Store) *StoreResponse {
	if s == nil {
		return nil
	}
	return &StoreResponse{
		ID:          s.ID,
		TeamID:      s.TeamID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Description: s.Description,
		Address:     AddressDTO(s.Address),
		Active:      s.Active,
		Picture:     s.Picture,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// NewStoreDetails proyección de tienda unida a reportes/gráficas.
func NewStoreDetails(s *entity.Store) *StoreDetails {
	if s == nil {
		return nil
	}
	return &StoreDetails{ID: s.ID, Name: s.Name, Description: s.Description, Address: AddressDTO(s.Address), Active: s.Active}
}

// NewOrderResponse proyecta una orden.
func NewOrderResponse(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, NewOrderItemDTO(it))
	}
	return &OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Items:       items,
		TotalPrice:  o.TotalPrice,
		OrderedBy:   o.OrderedBy,
		TeamID:      o.TeamID,
		StoreID:     o.StoreID,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// NewOrderItemDTO proyecta una línea de orden.
func NewOrderItemDTO(it entity.OrderItem) OrderItemDTO {
	return OrderItemDTO{
		ProductID:      it.ProductID,
		Quantity:       it.Quantity,
		ProductDetails: ProductDetailsDTO(it.ProductDetails),
	}
}

// NewHistoryResponse proyecta una History en el orden almacenado.
func NewHistoryResponse(h *entity.History) *HistoryResponse {
	if h == nil {
		return nil
	}
	evos := make([]EvolutionDTO, 0, len(h.Evolutions))
	for _, e := range h.Evolutions {
		evos = append(evos, EvolutionDTO(e))
	}
	return &HistoryResponse{
		ID:          h.ID,
		ProductID:   h.ProductID,
		ProductName: h.ProductName,
		StoreID:     h.StoreID,
		TeamID:      h.TeamID,
		Evolutions:  evos,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

// NewCartResponse proyecta un carrito ya agregado (ver pricing.Aggregate).
func NewCartResponse(c *entity.CartDetails) *CartResponse {
	if c == nil {
		return nil
	}
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, CartItemResponse{
			ID:             it.ID,
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			TotalPrice:     it.TotalPrice,
			ProductDetails: ProductDetailsDTO(it.ProductDetails),
		})
	}
	return &CartResponse{
		ID:          c.ID,
		StoreID:     c.StoreID,
		UserID:      c.UserID,
		Items:       items,
		TotalPrices: c.TotalPrices,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
