package services

import (
	"errors"
	"testing"

	"github.com/cristianbbs/kolder-backend/entity"
	"github.com/cristianbbs/kolder-backend/pkg/apperr"

	"github.com/stretchr/testify/require"
)

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "expected *apperr.Error, got %v", err)
	return ae.Code
}

func TestListScopeFor(t *testing.T) {
	cid := uint(7)

	t.Run("super admin sees everything", func(t *testing.T) {
		scope, err := ListScopeFor(superPrincipal(1))
		require.NoError(t, err)
		require.Nil(t, scope.CompanyID)
		require.Nil(t, scope.UserID)
	})

	t.Run("company admin filtered to company", func(t *testing.T) {
		scope, err := ListScopeFor(adminPrincipal(2, cid))
		require.NoError(t, err)
		require.NotNil(t, scope.CompanyID)
		require.Equal(t, cid, *scope.CompanyID)
		require.Nil(t, scope.UserID)
	})

	t.Run("user filtered to company and self", func(t *testing.T) {
		scope, err := ListScopeFor(userPrincipal(3, cid))
		require.NoError(t, err)
		require.NotNil(t, scope.CompanyID)
		require.Equal(t, cid, *scope.CompanyID)
		require.NotNil(t, scope.UserID)
		require.Equal(t, uint(3), *scope.UserID)
	})

	t.Run("admin general scoped like user", func(t *testing.T) {
		p := entity.Principal{ID: 4, CompanyID: &cid, Role: entity.RoleAdminGeneral}
		scope, err := ListScopeFor(p)
		require.NoError(t, err)
		require.NotNil(t, scope.UserID, "ADMIN_GENERAL must not get admin scope")
		require.Equal(t, uint(4), *scope.UserID)
	})

	t.Run("no company fails", func(t *testing.T) {
		_, err := ListScopeFor(entity.Principal{ID: 5, Role: entity.RoleCompanyAdmin})
		require.Equal(t, "NO_COMPANY", appErrCode(t, err))
		_, err = ListScopeFor(entity.Principal{ID: 6, Role: entity.RoleUser})
		require.Equal(t, "NO_COMPANY", appErrCode(t, err))
	})
}

func TestCanViewOrder(t *testing.T) {
	order := &entity.Order{UserID: 10, CompanyID: 1}

	cases := []struct {
		name string
		p    entity.Principal
		want bool
	}{
		{"owner", userPrincipal(10, 1), true},
		{"other user same company", userPrincipal(11, 1), false},
		{"admin same company", adminPrincipal(12, 1), true},
		{"admin other company", adminPrincipal(13, 2), false},
		{"super admin", superPrincipal(14), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CanViewOrder(tc.p, order))
		})
	}
}

func TestCheckMutateOrder(t *testing.T) {
	order := &entity.Order{UserID: 10, CompanyID: 1}

	t.Run("user role disclosed as forbidden", func(t *testing.T) {
		err := CheckMutateOrder(userPrincipal(10, 1), order)
		require.Equal(t, "FORBIDDEN", appErrCode(t, err))
	})

	t.Run("admin other company hidden as not found", func(t *testing.T) {
		err := CheckMutateOrder(adminPrincipal(20, 2), order)
		require.Equal(t, "NOT_FOUND", appErrCode(t, err))
	})

	t.Run("admin same company allowed", func(t *testing.T) {
		require.NoError(t, CheckMutateOrder(adminPrincipal(21, 1), order))
	})

	t.Run("super admin allowed anywhere", func(t *testing.T) {
		require.NoError(t, CheckMutateOrder(superPrincipal(22), order))
	})
}

func TestResolveCompanyScope(t *testing.T) {
	cid := uint(3)

	t.Run("super admin requires explicit company", func(t *testing.T) {
		_, err := ResolveCompanyScope(superPrincipal(1), nil)
		require.Equal(t, "COMPANY_ID_REQUIRED", appErrCode(t, err))
		got, err := ResolveCompanyScope(superPrincipal(1), &cid)
		require.NoError(t, err)
		require.Equal(t, cid, got)
	})

	t.Run("company admin uses own company", func(t *testing.T) {
		other := uint(9)
		got, err := ResolveCompanyScope(adminPrincipal(2, cid), &other)
		require.NoError(t, err)
		require.Equal(t, cid, got, "explicit id must not override own company")
	})

	t.Run("company admin without company", func(t *testing.T) {
		_, err := ResolveCompanyScope(entity.Principal{ID: 3, Role: entity.RoleCompanyAdmin}, nil)
		require.Equal(t, "NO_COMPANY", appErrCode(t, err))
	})
}

func TestCheckCompanyAccess(t *testing.T) {
	require.NoError(t, CheckCompanyAccess(superPrincipal(1), 5))
	require.NoError(t, CheckCompanyAccess(adminPrincipal(2, 5), 5))

	err := CheckCompanyAccess(adminPrincipal(3, 6), 5)
	require.Equal(t, "FORBIDDEN", appErrCode(t, err))
	err = CheckCompanyAccess(userPrincipal(4, 5), 5)
	require.Equal(t, "FORBIDDEN", appErrCode(t, err))
}
