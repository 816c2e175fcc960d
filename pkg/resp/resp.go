package resp

import (
	"errors"
	"log"
	"net/http"

	"github.com/cristianbbs/kolder-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// OK writes payload at the top level with ok:true.
func OK(c *gin.Context, payload gin.H) {
	write(c, http.StatusOK, payload)
}

func Created(c *gin.Context, payload gin.H) {
	write(c, http.StatusCreated, payload)
}

func write(c *gin.Context, status int, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["ok"] = true
	c.JSON(status, payload)
}

// Error maps an *apperr.Error to its status/code; anything else is logged in
// full and surfaced as an opaque INTERNAL.
func Error(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		body := gin.H{"ok": false, "code": ae.Code, "message": ae.Message}
		if ae.Issues != nil {
			body["issues"] = ae.Issues
		}
		c.JSON(ae.Status, body)
		return
	}
	log.Printf("[INTERNAL] %s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "code": "INTERNAL", "message": "internal error"})
}

func BadRequest(c *gin.Context, code, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "code": code, "message": msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "code": "UNAUTHORIZED", "message": msg})
}

func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "code": "FORBIDDEN", "message": msg})
}
