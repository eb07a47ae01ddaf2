// Package authz holds the role model and the capability checks built on it.
package authz

// Role is the privilege level of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the principal holds administrative privileges.
func (p Principal) IsAdmin() bool {
	return RequireAdmin(p.Role).Allowed
}

// Decision is the outcome of a capability check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// RequireAdmin allows only the admin role.
func RequireAdmin(role Role) Decision {
	if role != RoleAdmin {
		return deny("admin privileges required")
	}
	return allow()
}

// OwnerOrAdmin allows the resource owner or any admin.
func OwnerOrAdmin(p Principal, ownerID string) Decision {
	if p.ID != "" && p.ID == ownerID {
		return allow()
	}
	if p.IsAdmin() {
		return allow()
	}
	return deny("not allowed to modify this resource")
}
