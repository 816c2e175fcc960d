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

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{Service: service}
}

// GET /orders returns orders visible to the caller (see services.ListScopeFor).
func (oc *OrderController) List(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	orders, err := oc.Service.List(p)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": orders})
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, apperr.BadBody(err.Error()))
		return
	}

	order, err := oc.Service.Create(p, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{
		"id":        order.ID,
		"status":    order.Status,
		"createdAt": order.CreatedAt,
		"emergency": order.Emergency,
		"extraCost": order.ExtraCost,
		"items":     order.Items,
	})
}

// POST /orders/:id/repeat clones a prior order of the same user.
func (oc *OrderController) Repeat(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := oc.Service.Repeat(p, id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{
		"id":        order.ID,
		"status":    order.Status,
		"createdAt": order.CreatedAt,
		"items":     order.Items,
	})
}

// GET /orders/:id returns the detail plus full timeline.
func (oc *OrderController) Detail(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := oc.Service.Detail(p, id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"order": detail})
}

type changeStatusReq struct {
	Status entity.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note" binding:"omitempty,max=500"`
}

// PUT /orders/:id/status applies an admin-only transition with audit.
func (oc *OrderController) ChangeStatus(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req changeStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, apperr.BadBody(err.Error()))
		return
	}

	detail, err := oc.Service.ChangeStatus(p, id, req.Status, req.Note)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"order": detail})
}

// pathID parses the :id param, responding BAD_ID itself on garbage.
func pathID(c *gin.Context) (uint, bool) {
	n, err := strconv.Atoi(c.Param("id"))
	if err != nil || n <= 0 {
		resp.Error(c, apperr.BadID())
		return 0, false
	}
	return uint(n), true
}
