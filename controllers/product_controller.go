package controllers

import (
	"github.com/cristianbbs/kolder-backend/pkg/resp"
	"github.com/cristianbbs/kolder-backend/services"
	"github.com/cristianbbs/kolder-backend/utils"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	Catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{Catalog: catalog}
}

// GET /products/catalog returns the caller's company catalog, allow-list filtered.
func (pc *ProductController) Catalogue(c *gin.Context) {
	p := utils.CurrentPrincipal(c)

	categories, err := pc.Catalog.ForPrincipal(p)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"categories": categories})
}
