package controllers

import (
	"strconv"

	"github.com/cristianbbs/kolder-backend/pkg/apperr"
	"github.com/cristianbbs/kolder-backend/pkg/resp"
	"github.com/cristianbbs/kolder-backend/services"
	"github.com/cristianbbs/kolder-backend/utils"

	"github.com/gin-gonic/gin"
)

type CompanyController struct {
	AllowList *services.AllowListService
	Users     *services.CompanyUserService
	Auth      *services.AuthService
}

func NewCompanyController(allowList *services.AllowListService, users *services.CompanyUserService, auth *services.AuthService) *CompanyController {
	return &CompanyController{AllowList: allowList, Users: users, Auth: auth}
}

// queryCompanyID reads the optional ?companyId= used by SUPER_ADMIN.
func queryCompanyID(c *gin.Context) *uint {
	raw := c.Query("companyId")
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return nil
	}
	id := uint(n)
	return &id
}

// GET /company/me
func (cc *CompanyController) Me(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	profile, err := cc.Auth.Profile(p.ID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"profile": profile})
}

// ----- Allow-list -----

// GET /company/allowed-products returns the full catalog with a per-product allowed flag.
func (cc *CompanyController) AllowedProducts(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	companyID, err := services.ResolveCompanyScope(p, queryCompanyID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}

	categories, err := cc.AllowList.Overview(companyID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"companyId": companyID, "categories": categories})
}

// GET /company/:id/products/enabled
func (cc *CompanyController) EnabledProducts(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	companyID, ok := pathID(c)
	if !ok {
		return
	}
	if err := services.CheckCompanyAccess(p, companyID); err != nil {
		resp.Error(c, err)
		return
	}

	ids, err := cc.AllowList.EnabledProductIDs(companyID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"companyId": companyID, "enabledProductIds": ids})
}

type putEnabledReq struct {
	ProductIDs []uint `json:"productIds" binding:"required,max=10000"`
}

// PUT /company/:id/products/enabled replaces the whole allow-list.
func (cc *CompanyController) ReplaceEnabledProducts(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	companyID, ok := pathID(c)
	if !ok {
		return
	}
	if err := services.CheckCompanyAccess(p, companyID); err != nil {
		resp.Error(c, err)
		return
	}

	var req putEnabledReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, apperr.BadBody(err.Error()))
		return
	}

	changed, enabled, err := cc.AllowList.Replace(p, companyID, req.ProductIDs)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{
		"companyId":         companyID,
		"enabledProductIds": enabled,
		"changed":           changed,
	})
}

type toggleReq struct {
	ProductID uint  `json:"productId" binding:"required,min=1"`
	Enabled   *bool `json:"enabled" binding:"required"`
}

// PATCH /company/:id/products/toggle flips one entry (idempotent).
func (cc *CompanyController) ToggleProduct(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	companyID, ok := pathID(c)
	if !ok {
		return
	}
	if err := services.CheckCompanyAccess(p, companyID); err != nil {
		resp.Error(c, err)
		return
	}

	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, apperr.BadBody(err.Error()))
		return
	}

	if err := cc.AllowList.Toggle(p, companyID, req.ProductID, *req.Enabled); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"companyId": companyID, "productId": req.ProductID, "enabled": *req.Enabled})
}

// ----- Users -----

// GET /company/users
func (cc *CompanyController) ListUsers(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	companyID, users, err := cc.Users.List(p, queryCompanyID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"companyId": companyID, "users": users})
}

// POST /company/users
func (cc *CompanyController) CreateUser(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	var req services.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, apperr.BadBody(err.Error()))
		return
	}

	created, err := cc.Users.Create(p, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	out := gin.H{"id": created.ID, "companyId": created.CompanyID}
	if created.Provisional != "" {
		out["provisional"] = created.Provisional
	}
	resp.OK(c, out)
}

// POST /company/users/:id/reissue-provisional
func (cc *CompanyController) ReissueProvisional(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	userID, ok := pathID(c)
	if !ok {
		return
	}

	out, err := cc.Users.Reissue(p, userID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	body := gin.H{"id": out.ID, "until": out.Until}
	if out.Provisional != "" {
		body["provisional"] = out.Provisional
	}
	resp.OK(c, body)
}

// DELETE /company/users/:id
func (cc *CompanyController) DeleteUser(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	userID, ok := pathID(c)
	if !ok {
		return
	}

	if err := cc.Users.Delete(p, userID); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{})
}
