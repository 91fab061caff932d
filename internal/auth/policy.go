package auth

import (
	"net/http"
	"strings"

	"github.com/frahmantamala/parc-info/internal/user"
)

// Rule grants the listed roles access to the routes matching Pattern. A
// pattern ending in "*" matches by prefix. Empty Methods matches any method.
type Rule struct {
	Methods []string
	Pattern string
	Roles   []user.Role
}

func (r Rule) matches(method, pattern string) bool {
	if len(r.Methods) > 0 {
		found := false
		for _, m := range r.Methods {
			if m == method {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if prefix, ok := strings.CutSuffix(r.Pattern, "*"); ok {
		return strings.HasPrefix(pattern, prefix)
	}
	return r.Pattern == pattern
}

func (r Rule) allows(role user.Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Policy is the capability table for authenticated routes. The first matching
// rule decides; routes without a rule are open to every authenticated user.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

var (
	staff     = []user.Role{user.RoleAdmin, user.RoleTechnician}
	adminOnly = []user.Role{user.RoleAdmin}
	writes    = []string{http.MethodPost, http.MethodPut}
)

func DefaultPolicy() *Policy {
	return NewPolicy(
		Rule{Pattern: "/api/users*", Roles: adminOnly},

		Rule{Methods: []string{http.MethodDelete}, Pattern: "/api/alerts/{id}", Roles: adminOnly},
		Rule{Methods: writes, Pattern: "/api/alerts*", Roles: staff},

		Rule{Pattern: "/api/maintenance/{id}/technicians/*", Roles: staff},
		Rule{Pattern: "/api/maintenance/{id}/equipment/*", Roles: staff},
		Rule{Methods: []string{http.MethodDelete}, Pattern: "/api/maintenance/{id}", Roles: adminOnly},
		Rule{Methods: writes, Pattern: "/api/maintenance*", Roles: staff},

		Rule{Methods: []string{http.MethodPost}, Pattern: "/api/settings/import", Roles: staff},
	)
}

func (p *Policy) Authorize(role user.Role, method, pattern string) bool {
	pattern = normalizePattern(pattern)
	for _, rule := range p.rules {
		if rule.matches(method, pattern) {
			return rule.allows(role)
		}
	}
	return true
}

// normalizePattern folds the "/*" segments chi leaves behind for mounted
// routers and drops the trailing slash.
func normalizePattern(p string) string {
	for strings.Contains(p, "/*/") {
		p = strings.ReplaceAll(p, "/*/", "/")
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}
