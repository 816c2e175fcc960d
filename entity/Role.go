package entity

// Role is the account role carried in the JWT and on the user row.
type Role string

const (
	RoleUser         Role = "USER"
	RoleAdminGeneral Role = "ADMIN_GENERAL"
	RoleCompanyAdmin Role = "COMPANY_ADMIN"
	RoleSuperAdmin   Role = "SUPER_ADMIN"
)

// IsOrderAdmin reports whether the role may drive order status transitions.
// ADMIN_GENERAL is a client-side display role, not an operational one.
func (r Role) IsOrderAdmin() bool {
	return r == RoleCompanyAdmin || r == RoleSuperAdmin
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdminGeneral, RoleCompanyAdmin, RoleSuperAdmin:
		return true
	}
	return false
}
