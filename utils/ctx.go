package utils

import (
	"github.com/cristianbbs/kolder-backend/entity"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

func SetPrincipal(c *gin.Context, p entity.Principal) {
	c.Set(principalKey, p)
}

// CurrentPrincipal returns the principal the auth middleware resolved for this
// request. Zero value means the route was registered without AuthMiddleware.
func CurrentPrincipal(c *gin.Context) entity.Principal {
	v, _ := c.Get(principalKey)
	if p, ok := v.(entity.Principal); ok {
		return p
	}
	return entity.Principal{}
}
