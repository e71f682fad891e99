package authclient

import "github.com/golang-jwt/jwt/v5"

// UserRole is the coarse authorization category used for client-side
// gating only; it is never a security boundary.
type UserRole string

const (
	// RoleAdmin unlocks the admin-only dashboard sections
	RoleAdmin UserRole = "ADMIN"
	// RoleUser is the regular authenticated role
	RoleUser UserRole = "USER"
	// RoleUnknown means no role could be derived from the claims
	RoleUnknown UserRole = ""
)

// IsValid checks if the role is one of the predefined valid roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// IsAtLeast checks if this role meets the minimum required level
func (r UserRole) IsAtLeast(minRole UserRole) bool {
	roleHierarchy := map[UserRole]int{
		RoleUser:  0,
		RoleAdmin: 1,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// ResolveRole derives a UserRole from decoded claims using a fallback
// chain, evaluated in order, first match wins: roles, authorities,
// scope, then the singular role claim. When none of those are present
// but the token carries a subject, a ROLE_USER entry is synthesized so
// the dashboard stays usable against backends whose claim shape is not
// fully pinned down. The order matters; later rules run only when
// earlier ones produce nothing.
func ResolveRole(claims jwt.MapClaims) UserRole {
	if claims == nil {
		return RoleUnknown
	}

	// a null or non-collection value does not stop the chain; an empty
	// collection does
	var roles []string
	for _, key := range []string{"roles", "authorities", "scope", "role"} {
		raw, ok := claims[key]
		if !ok {
			continue
		}
		if roles = normalizeRoleClaim(raw); roles != nil {
			break
		}
	}

	if len(roles) == 0 {
		if _, ok := claims["sub"]; ok {
			roles = []string{"ROLE_USER"}
		}
	}

	if containsRole(roles, "ROLE_ADMIN") {
		return RoleAdmin
	}
	if containsRole(roles, "ROLE_USER") {
		return RoleUser
	}

	// no matching entries: a subject or email is still enough to treat
	// the holder as a regular user
	if _, ok := claims["sub"]; ok {
		return RoleUser
	}
	if _, ok := claims["email"]; ok {
		return RoleUser
	}

	return RoleUnknown
}

// normalizeRoleClaim coerces a role-like claim into a string collection,
// wrapping bare scalars into a single-element slice.
func normalizeRoleClaim(raw any) []string {
	switch value := raw.(type) {
	case []string:
		return value
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{value}
	default:
		return nil
	}
}

func containsRole(roles []string, want string) bool {
	for _, role := range roles {
		if role == want {
			return true
		}
	}
	return false
}
