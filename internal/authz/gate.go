package authz

import (
	"sort"
	"strings"

	"github.com/example/shop-admin/internal/model"
)

// Rule permits the listed roles to access any path under Prefix.
type Rule struct {
	Prefix string
	Roles  []string
}

// Decision is the outcome of evaluating a path against a Policy.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Policy is an ordered list of prefix rules. The most specific (longest)
// matching prefix wins regardless of declaration order, so overlapping
// prefixes like /admin and /admin/products behave predictably.
type Policy struct {
	rules     []Rule
	loginPath string
}

// NewPolicy builds a Policy from rules and the path denied callers are
// redirected to.
func NewPolicy(rules []Rule, loginPath string) *Policy {
	ordered := append([]Rule(nil), rules...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Prefix) > len(ordered[j].Prefix)
	})
	return &Policy{rules: ordered, loginPath: loginPath}
}

// DefaultPolicy is the storefront's role map.
func DefaultPolicy() *Policy {
	return NewPolicy([]Rule{
		{Prefix: "/admin", Roles: []string{model.RoleAdmin}},
		{Prefix: "/admin/products", Roles: []string{model.RoleAdmin, model.RoleProductManager}},
		{Prefix: "/orders", Roles: []string{model.RoleAdmin, model.RoleShipmentManager}},
	}, "/login")
}

// LoginPath returns the redirect target for denied requests.
func (p *Policy) LoginPath() string {
	return p.loginPath
}

func (p *Policy) match(path string) (Rule, bool) {
	for _, r := range p.rules {
		if strings.HasPrefix(path, r.Prefix) {
			return r, true
		}
	}
	return Rule{}, false
}

// Decide evaluates path for a caller with the given role. role is empty for
// callers without a valid session. Paths that match no rule are always
// allowed.
func (p *Policy) Decide(path, role string) Decision {
	rule, ok := p.match(path)
	if !ok {
		return Decision{Allowed: true}
	}
	if role != "" {
		for _, permitted := range rule.Roles {
			if permitted == role {
				return Decision{Allowed: true}
			}
		}
	}
	return Decision{Allowed: false, RedirectTo: p.loginPath}
}
