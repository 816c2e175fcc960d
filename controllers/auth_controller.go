package controllers

import (
	"github.com/cristianbbs/kolder-backend/pkg/apperr"
	"github.com/cristianbbs/kolder-backend/pkg/resp"
	"github.com/cristianbbs/kolder-backend/services"
	"github.com/cristianbbs/kolder-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{Service: service}
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, apperr.BadBody(err.Error()))
		return
	}

	token, mustChange, profile, err := ac.Service.Login(req.Email, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{
		"token":              token,
		"mustChangePassword": mustChange,
		"profile":            profile,
	})
}

// GET /auth/me
func (ac *AuthController) Me(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	profile, err := ac.Service.Profile(p.ID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"profile": profile})
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword" binding:"required,min=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// POST /auth/change-password
func (ac *AuthController) ChangePassword(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, apperr.BadBody(err.Error()))
		return
	}

	if err := ac.Service.ChangePassword(p.ID, req.OldPassword, req.NewPassword); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{})
}
