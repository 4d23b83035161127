package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/shop-admin/internal/model"
)

func TestPolicy_Decide(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name    string
		path    string
		role    string
		allowed bool
	}{
		{"admin dashboard as admin", "/admin/dashboard", model.RoleAdmin, true},
		{"admin dashboard without session", "/admin/dashboard", "", false},
		{"admin dashboard as shipment manager", "/admin/dashboard", model.RoleShipmentManager, false},
		{"products as product manager", "/admin/products/42", model.RoleProductManager, true},
		{"products as shipment manager", "/admin/products/42", model.RoleShipmentManager, false},
		{"products without session", "/admin/products/42", "", false},
		{"products as admin", "/admin/products", model.RoleAdmin, true},
		{"orders as shipment manager", "/orders", model.RoleShipmentManager, true},
		{"orders as product manager", "/orders/o1", model.RoleProductManager, false},
		{"orders as admin", "/orders/o1", model.RoleAdmin, true},
		{"login is unprotected", "/login", "", true},
		{"unknown path is unprotected", "/healthz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := policy.Decide(tt.path, tt.role)
			assert.Equal(t, tt.allowed, decision.Allowed)
			if !tt.allowed {
				assert.Equal(t, "/login", decision.RedirectTo)
			}
		})
	}
}

func TestPolicy_LongestPrefixWins(t *testing.T) {
	policy := DefaultPolicy()

	// /admin/products falls under both /admin and /admin/products; the more
	// specific rule must decide, so a product manager gets in.
	decision := policy.Decide("/admin/products/42", model.RoleProductManager)
	assert.True(t, decision.Allowed)

	// but /admin itself stays admin-only
	decision = policy.Decide("/admin/customers", model.RoleProductManager)
	assert.False(t, decision.Allowed)
}

func TestPolicy_DeclarationOrderIrrelevant(t *testing.T) {
	rules := []Rule{
		{Prefix: "/admin/products", Roles: []string{model.RoleProductManager}},
		{Prefix: "/admin", Roles: []string{model.RoleAdmin}},
	}
	reversed := []Rule{rules[1], rules[0]}

	for _, p := range []*Policy{NewPolicy(rules, "/login"), NewPolicy(reversed, "/login")} {
		assert.True(t, p.Decide("/admin/products", model.RoleProductManager).Allowed)
		assert.False(t, p.Decide("/admin/customers", model.RoleProductManager).Allowed)
	}
}

func TestPolicy_EmptyRoleNeverMatches(t *testing.T) {
	// a rule with an empty role string must not admit sessionless callers
	policy := NewPolicy([]Rule{{Prefix: "/admin", Roles: []string{""}}}, "/login")
	assert.False(t, policy.Decide("/admin", "").Allowed)
}
