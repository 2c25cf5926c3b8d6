package domain

// Role identifies what kind of actor an identity represents.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

// Permission names a single privileged capability.
type Permission string

// PermProvisionCashiers gates creation and deletion of cashier accounts.
const PermProvisionCashiers Permission = "cashiers:provision"

// rolePermissions is the full permission grant table. Matching is exact:
// an unknown or differently-cased role carries no permissions.
var rolePermissions = map[Role]map[Permission]struct{}{
	RoleAdmin: {
		PermProvisionCashiers: {},
	},
	RoleCashier: {},
}

// IsValid reports whether the role is one of the predefined roles.
func (r Role) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Can reports whether the role grants the given permission.
func (r Role) Can(p Permission) bool {
	perms, ok := rolePermissions[r]
	if !ok {
		return false
	}
	_, ok = perms[p]
	return ok
}
