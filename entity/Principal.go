package entity

// Principal is the authenticated caller as resolved by the auth middleware:
// the user row's identity fields, nothing request-specific.
type Principal struct {
	ID        uint
	CompanyID *uint
	Role      Role
	Email     string
}

func (p Principal) HasCompany() bool {
	return p.CompanyID != nil && *p.CompanyID != 0
}

// SameCompany reports whether the principal belongs to the given company.
// Principals without a company match nothing.
func (p Principal) SameCompany(companyID uint) bool {
	return p.HasCompany() && *p.CompanyID == companyID
}
