package controllers

import (
	"strconv"

	"github.com/cristianbbs/kolder-backend/entity"
	"github.com/cristianbbs/kolder-backend/pkg/apperr"
	"github.com/cristianbbs/kolder-backend/pkg/resp"
	"github.com/cristianbbs/kolder-backend/services"
	"github.com/cristianbbs/kolder-backend/utils"

	"github.com/gin-gonic/gin"
)

// AdminController is the SUPER_ADMIN back-office order board.
type AdminController struct {
	Orders *services.OrderService
}

func NewAdminController(orders *services.OrderService) *AdminController {
	return &AdminController{Orders: orders}
}

// GET /admin/orders?page=&pageSize=&status=&companyId=
func (ac *AdminController) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	var status *entity.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := entity.OrderStatus(raw)
		if !s.Valid() {
			resp.Error(c, apperr.BadBody("unknown status filter"))
			return
		}
		status = &s
	}

	list, err := ac.Orders.AdminList(queryCompanyID(c), status, page, pageSize)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{
		"items":    list.Items,
		"total":    list.Total,
		"page":     list.Page,
		"pageSize": list.Limit,
	})
}

// GET /admin/orders/:id
func (ac *AdminController) OrderDetail(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := ac.Orders.Detail(p, id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"order": detail})
}

// PATCH /admin/orders/:id/status, same transition path as PUT /orders/:id/status.
func (ac *AdminController) ChangeOrderStatus(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Status entity.OrderStatus `json:"status" binding:"required"`
		Note   string             `json:"note" binding:"omitempty,max=500"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, apperr.BadBody(err.Error()))
		return
	}

	detail, err := ac.Orders.ChangeStatus(p, id, req.Status, req.Note)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"order": detail})
}
