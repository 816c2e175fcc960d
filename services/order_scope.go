package services

import (
	"github.com/cristianbbs/kolder-backend/entity"
	"github.com/cristianbbs/kolder-backend/pkg/apperr"
)

// All order/allow-list authorization decisions live here so every endpoint
// applies the same policy instead of re-branching on roles per route.

// OrderListScope is the visibility filter for listing orders. Nil fields mean
// "no restriction on that column".
type OrderListScope struct {
	CompanyID *uint
	UserID    *uint
}

// ListScopeFor computes the listing filter:
//
//	SUPER_ADMIN   -> everything
//	COMPANY_ADMIN -> own company
//	anyone else   -> own company AND own orders
func ListScopeFor(p entity.Principal) (OrderListScope, error) {
	switch p.Role {
	case entity.RoleSuperAdmin:
		return OrderListScope{}, nil
	case entity.RoleCompanyAdmin:
		if !p.HasCompany() {
			return OrderListScope{}, apperr.NoCompany()
		}
		return OrderListScope{CompanyID: p.CompanyID}, nil
	default:
		if !p.HasCompany() {
			return OrderListScope{}, apperr.NoCompany()
		}
		uid := p.ID
		return OrderListScope{CompanyID: p.CompanyID, UserID: &uid}, nil
	}
}

// CanViewOrder implements the single-order read rule: owner, same-company
// admin, or super admin. Everything else must look like a missing order.
func CanViewOrder(p entity.Principal, o *entity.Order) bool {
	if o.UserID == p.ID {
		return true
	}
	if p.Role == entity.RoleSuperAdmin {
		return true
	}
	return p.Role.IsOrderAdmin() && p.SameCompany(o.CompanyID)
}

// CheckMutateOrder gates status transitions. A disallowed role is disclosed
// (403); a tenant mismatch is hidden (404) to keep the same leakage surface
// as reads.
func CheckMutateOrder(p entity.Principal, o *entity.Order) error {
	if !p.Role.IsOrderAdmin() {
		return apperr.Forbidden()
	}
	if p.Role == entity.RoleSuperAdmin {
		return nil
	}
	if !p.SameCompany(o.CompanyID) {
		return apperr.NotFound("order")
	}
	return nil
}

// ResolveCompanyScope picks the company an allow-list or user-management
// operation applies to: COMPANY_ADMIN always acts on its own company,
// SUPER_ADMIN must name one explicitly.
func ResolveCompanyScope(p entity.Principal, explicit *uint) (uint, error) {
	if p.Role == entity.RoleSuperAdmin {
		if explicit == nil || *explicit == 0 {
			return 0, apperr.CompanyIDRequired()
		}
		return *explicit, nil
	}
	if !p.HasCompany() {
		return 0, apperr.NoCompany()
	}
	return *p.CompanyID, nil
}

// CheckCompanyAccess guards /company/:id/... routes where the target company
// is in the path: SUPER_ADMIN anywhere, COMPANY_ADMIN only at home.
func CheckCompanyAccess(p entity.Principal, companyID uint) error {
	if p.Role == entity.RoleSuperAdmin {
		return nil
	}
	if p.Role == entity.RoleCompanyAdmin && p.SameCompany(companyID) {
		return nil
	}
	return apperr.Forbidden()
}
