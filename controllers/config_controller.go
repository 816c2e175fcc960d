package controllers

import (
	"github.com/cristianbbs/kolder-backend/pkg/apperr"
	"github.com/cristianbbs/kolder-backend/pkg/resp"
	"github.com/cristianbbs/kolder-backend/services"
	"github.com/cristianbbs/kolder-backend/utils"

	"github.com/gin-gonic/gin"
)

type ConfigController struct {
	Service *services.ConfigService
}

func NewConfigController(service *services.ConfigService) *ConfigController {
	return &ConfigController{Service: service}
}

// GET /config/emergency
func (cc *ConfigController) GetEmergency(c *gin.Context) {
	cfg, err := cc.Service.GetEmergency()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"extraCost": cfg.ExtraCost, "hours": cfg.Hours, "days": cfg.Days})
}

// PUT /config/emergency, admin roles only (enforced by the route group).
func (cc *ConfigController) UpdateEmergency(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	var req services.EmergencyConfigIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, apperr.BadBody(err.Error()))
		return
	}

	cfg, err := cc.Service.UpdateEmergency(p, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"extraCost": cfg.ExtraCost, "hours": cfg.Hours, "days": cfg.Days})
}
