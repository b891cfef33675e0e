package access

import (
	"strings"

	"lms/learning/internal/model"
)

// Authority is the route-level role requirement for a URL prefix. It
// answers whether a role may call a kind of endpoint at all, never
// whether a particular resource belongs to the caller.
type Authority string

const (
	AuthorityAnyone        Authority = "anyone"
	AuthorityAuthenticated Authority = "authenticated"
	AuthorityAdmin         Authority = "admin"
	AuthorityInstructor    Authority = "instructor"
	AuthorityEmployee      Authority = "employee"
)

// Permits reports whether a principal (nil for anonymous callers)
// satisfies the authority.
func (a Authority) Permits(principal *model.Principal) bool {
	switch a {
	case AuthorityAnyone:
		return true
	case AuthorityAuthenticated:
		return principal != nil
	case AuthorityAdmin:
		return principal != nil && principal.Role == model.RoleAdmin
	case AuthorityInstructor:
		return principal != nil && principal.Role == model.RoleInstructor
	case AuthorityEmployee:
		return principal != nil && principal.Role == model.RoleEmployee
	default:
		return false
	}
}

type authorityRule struct {
	prefix    string
	authority Authority
}

// AuthorityTable maps URL prefixes to required authorities, evaluated
// most-specific-first. Read-only after construction.
type AuthorityTable struct {
	rules    []authorityRule
	fallback Authority
}

// NewAuthorityTable orders the given prefix rules longest-first so an
// overlapping shorter prefix can never shadow a more specific one.
// Paths matching no rule fall back to authenticated-any-role.
func NewAuthorityTable(rules map[string]Authority) *AuthorityTable {
	table := &AuthorityTable{fallback: AuthorityAuthenticated}
	for prefix, authority := range rules {
		table.rules = append(table.rules, authorityRule{prefix: prefix, authority: authority})
	}
	for i := 1; i < len(table.rules); i++ {
		for j := i; j > 0 && len(table.rules[j].prefix) > len(table.rules[j-1].prefix); j-- {
			table.rules[j], table.rules[j-1] = table.rules[j-1], table.rules[j]
		}
	}
	return table
}

// DefaultAuthorityTable is the fixed startup policy of the platform.
func DefaultAuthorityTable() *AuthorityTable {
	return NewAuthorityTable(map[string]Authority{
		"/admin":      AuthorityAdmin,
		"/instructor": AuthorityInstructor,
		"/employee":   AuthorityEmployee,
		"/public":     AuthorityAnyone,
	})
}

func (t *AuthorityTable) RequiredFor(path string) Authority {
	for _, rule := range t.rules {
		if strings.HasPrefix(path, rule.prefix) {
			return rule.authority
		}
	}
	return t.fallback
}
