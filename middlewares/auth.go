package middlewares

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cristianbbs/kolder-backend/configs"
	"github.com/cristianbbs/kolder-backend/entity"
	"github.com/cristianbbs/kolder-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the bearer token, reloads the user row so role and
// company are always current, and (optionally) enforces roles. Everything the
// handlers know about the caller comes from the resolved Principal.
func AuthMiddleware(requiredRoles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token")
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")

		token, err := jwt.ParseWithClaims(tokenStr, &utils.Claims{}, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(configs.JWTSecret()), nil
		})
		if err != nil || !token.Valid {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
			return
		}
		claims, ok := token.Claims.(*utils.Claims)
		if !ok || claims.UserID == 0 {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid claims")
			return
		}

		var user entity.User
		if err := configs.DB().First(&user, claims.UserID).Error; err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "unknown user")
			return
		}
		if user.IsBlocked {
			abort(c, http.StatusForbidden, "BLOCKED", "user is blocked")
			return
		}

		// A pending provisional password locks everything except the
		// change-password endpoint itself.
		if user.MustChangePassword && !isChangePassword(c) {
			if user.ProvisionalExpiresAt != nil && time.Now().After(*user.ProvisionalExpiresAt) {
				abort(c, http.StatusForbidden, "PROVISIONAL_EXPIRED", "provisional password expired, request a new one")
				return
			}
			abort(c, http.StatusForbidden, "PASSWORD_CHANGE_REQUIRED", "password change required")
			return
		}

		p := entity.Principal{
			ID:        user.ID,
			CompanyID: user.CompanyID,
			Role:      user.Role,
			Email:     user.Email,
		}
		utils.SetPrincipal(c, p)

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if p.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				abort(c, http.StatusForbidden, "FORBIDDEN", "forbidden")
				return
			}
		}

		c.Next()
	}
}

func isChangePassword(c *gin.Context) bool {
	return c.Request.Method == http.MethodPost && strings.HasSuffix(c.Request.URL.Path, "/auth/change-password")
}

func abort(c *gin.Context, status int, code, msg string) {
	c.JSON(status, gin.H{"ok": false, "code": code, "message": msg})
	c.Abort()
}
