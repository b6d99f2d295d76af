package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/permission"
)

func TestHasPermission_ComodinYExacto(t *testing.T) {
	p := permission.NewPolicy(map[string][]permission.Grant{
		"r1": {permission.G("teams", "*"), permission.G("users", "read")},
	})

	assert.True(t, p.HasPermission("r1", "teams", "delete"), "teams.* cubre cualquier acción")
	assert.True(t, p.HasPermission("r1", "users", "read"))
	assert.False(t, p.HasPermission("r1", "users", "delete"))
	assert.False(t, p.HasPermission("r1", "stores", "read"))
}

func TestHasPermission_RolDesconocidoOVacio(t *testing.T) {
	p := permission.DefaultPolicy()
	assert.False(t, p.HasPermission("", permission.ResourceUsers, permission.ActionRead))
	assert.False(t, p.HasPermission("superuser", permission.ResourceUsers, permission.ActionRead))
	assert.False(t, p.HasPermission(entity.RoleAdmin, "", permission.ActionRead))
}

func TestDefaultPolicy_AdminTodo(t *testing.T) {
	p := permission.DefaultPolicy()
	for _, r := range permission.Resources {
		for _, a := range []string{permission.ActionCreate, permission.ActionRead, permission.ActionUpdate, permission.ActionDelete} {
			assert.True(t, p.HasPermission(entity.RoleAdmin, r, a), "admin debe tener %s.%s", r, a)
		}
	}
}

func TestDefaultPolicy_Clerk(t *testing.T) {
	p := permission.DefaultPolicy()

	cases := []struct {
		resource, action string
		want             bool
	}{
		{permission.ResourceCarts, permission.ActionCreate, true},
		{permission.ResourceCartItems, permission.ActionDelete, true},
		{permission.ResourceOrders, permission.ActionCreate, true},
		{permission.ResourceOrders, permission.ActionDelete, false},
		{permission.ResourceProducts, permission.ActionCreate, false},
		{permission.ResourceStores, permission.ActionDelete, false},
		{permission.ResourceTeams, permission.ActionUpdate, false},
		{permission.ResourceReports, permission.ActionCreate, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.HasPermission(entity.RoleClerk, tc.resource, tc.action),
			"clerk %s.%s", tc.resource, tc.action)
	}
}

func TestDefaultPolicy_ManagerNoAdministraEquipos(t *testing.T) {
	p := permission.DefaultPolicy()
	assert.True(t, p.HasPermission(entity.RoleManager, permission.ResourceTeams, permission.ActionRead))
	assert.False(t, p.HasPermission(entity.RoleManager, permission.ResourceTeams, permission.ActionDelete))
	assert.True(t, p.HasPermission(entity.RoleManager, permission.ResourceReports, permission.ActionCreate))
}
