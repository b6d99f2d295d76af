// Package permission contiene la tabla de políticas rol × recurso × acción.
package permission

import "github.com/jhoicas/Inventario-teams-api/internal/domain/entity"

// Recursos protegidos.
const (
	ResourceTeams     = "teams"
	ResourceUsers     = "users"
	ResourceStores    = "stores"
	ResourceProducts  = "products"
	ResourceCartItems = "cartItems"
	ResourceCarts     = "carts"
	ResourceOrders    = "orders"
	ResourceReports   = "reports"
	ResourceGraphics  = "graphics"
	ResourceHistories = "histories"
)

// Acciones.
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionAll    = "*"
)

// Resources lista todos los recursos conocidos.
var Resources = []string{
	ResourceTeams, ResourceUsers, ResourceStores, ResourceProducts, ResourceCartItems,
	ResourceCarts, ResourceOrders, ResourceReports, ResourceGraphics, ResourceHistories,
}

// Grant permiso concedido a un rol: "recurso.acción" o "recurso.*".
type Grant string

// G construye un Grant.
func G(resource, action string) Grant {
	return Grant(resource + "." + action)
}

// Policy tabla inmutable rol → permisos. Se construye una vez al arrancar el proceso.
type Policy struct {
	grants map[string]map[Grant]struct{}
}

// NewPolicy construye la política a partir de una tabla explícita.
func NewPolicy(table map[string][]Grant) Policy {
	p := Policy{grants: make(map[string]map[Grant]struct{}, len(table))}
	for role, list := range table {
		set := make(map[Grant]struct{}, len(list))
		for _, g := range list {
			set[g] = struct{}{}
		}
		p.grants[role] = set
	}
	return p
}

// HasPermission true si el rol tiene "recurso.acción" exacto o el comodín "recurso.*".
// Rol vacío o desconocido: false.
func (p Policy) HasPermission(role, resource, action string) bool {
	set, ok := p.grants[role]
	if !ok || resource == "" || action == "" {
		return false
	}
	if _, ok := set[G(resource, action)]; ok {
		return true
	}
	_, ok = set[G(resource, ActionAll)]
	return ok
}

// DefaultPolicy tabla de permisos de la aplicación.
func DefaultPolicy() Policy {
	admin := make([]Grant, 0, len(Resources))
	for _, r := range Resources {
		admin = append(admin, G(r, ActionAll))
	}
	return NewPolicy(map[string][]Grant{
		entity.RoleAdmin: admin,
		entity.RoleManager: {
			G(ResourceTeams, ActionRead),
			G(ResourceUsers, ActionAll),
			G(ResourceStores, ActionAll),
			G(ResourceProducts, ActionAll),
			G(ResourceCarts, ActionAll),
			G(ResourceCartItems, ActionAll),
			G(ResourceOrders, ActionAll),
			G(ResourceReports, ActionAll),
			G(ResourceGraphics, ActionAll),
			G(ResourceHistories, ActionAll),
		},
		entity.RoleClerk: {
			G(ResourceTeams, ActionRead),
			G(ResourceUsers, ActionRead),
			G(ResourceUsers, ActionUpdate),
			G(ResourceStores, ActionRead),
			G(ResourceProducts, ActionRead),
			G(ResourceProducts, ActionUpdate),
			G(ResourceCarts, ActionAll),
			G(ResourceCartItems, ActionAll),
			G(ResourceOrders, ActionCreate),
			G(ResourceOrders, ActionRead),
			G(ResourceReports, ActionRead),
			G(ResourceGraphics, ActionRead),
			G(ResourceHistories, ActionRead),
		},
	})
}
