package routes

import (
	"github.com/cristianbbs/kolder-backend/configs"
	"github.com/cristianbbs/kolder-backend/controllers"
	"github.com/cristianbbs/kolder-backend/entity"
	"github.com/cristianbbs/kolder-backend/middlewares"
	"github.com/cristianbbs/kolder-backend/repository"
	"github.com/cristianbbs/kolder-backend/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	db := configs.DB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	companyProdRepo := repository.NewCompanyProductRepository(db)
	configRepo := repository.NewConfigRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	orderSvc := services.NewOrderService(db, orderRepo, productRepo, configRepo)
	catalogSvc := services.NewCatalogService(productRepo, companyProdRepo)
	allowListSvc := services.NewAllowListService(db, productRepo, companyProdRepo)
	companyUserSvc := services.NewCompanyUserService(userRepo, cfg.ReturnProvisional)
	configSvc := services.NewConfigService(configRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	productCtrl := controllers.NewProductController(catalogSvc)
	companyCtrl := controllers.NewCompanyController(allowListSvc, companyUserSvc, authSvc)
	configCtrl := controllers.NewConfigController(configSvc)
	adminCtrl := controllers.NewAdminController(orderSvc)

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/login", authCtrl.Login)
	}
	aAuth := a.Group("", middlewares.AuthMiddleware())
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.POST("/change-password", authCtrl.ChangePassword)
	}

	// Orders. Visibility and mutation scoping happens in the services.
	orders := r.Group("/orders", middlewares.AuthMiddleware())
	{
		orders.GET("", orderCtrl.List)
		orders.POST("", orderCtrl.Create)
		orders.GET("/:id", orderCtrl.Detail)
		orders.POST("/:id/repeat", orderCtrl.Repeat)
		orders.PUT("/:id/status", orderCtrl.ChangeStatus)
	}

	// Catalog for ordering users
	products := r.Group("/products", middlewares.AuthMiddleware())
	{
		products.GET("", productCtrl.Catalogue)
		products.GET("/catalog", productCtrl.Catalogue)
		products.GET("/categories", productCtrl.Catalogue)
	}

	// Company administration
	company := r.Group("/company", middlewares.AuthMiddleware())
	{
		company.GET("/me", companyCtrl.Me)
	}
	companyAdmin := r.Group("/company", middlewares.AuthMiddleware(entity.RoleCompanyAdmin, entity.RoleSuperAdmin))
	{
		companyAdmin.GET("/allowed-products", companyCtrl.AllowedProducts)
		companyAdmin.GET("/:id/products/enabled", companyCtrl.EnabledProducts)
		companyAdmin.PUT("/:id/products/enabled", companyCtrl.ReplaceEnabledProducts)
		companyAdmin.PATCH("/:id/products/toggle", companyCtrl.ToggleProduct)

		companyAdmin.GET("/users", companyCtrl.ListUsers)
		companyAdmin.POST("/users", companyCtrl.CreateUser)
		companyAdmin.POST("/users/:id/reissue-provisional", companyCtrl.ReissueProvisional)
		companyAdmin.DELETE("/users/:id", companyCtrl.DeleteUser)
	}

	// Emergency ordering config
	config := r.Group("/config", middlewares.AuthMiddleware())
	{
		config.GET("/emergency", configCtrl.GetEmergency)
	}
	configAdmin := r.Group("/config", middlewares.AuthMiddleware(entity.RoleCompanyAdmin, entity.RoleSuperAdmin))
	{
		configAdmin.PUT("/emergency", configCtrl.UpdateEmergency)
	}

	// Back-office (super admin only)
	admin := r.Group("/admin", middlewares.AuthMiddleware(entity.RoleSuperAdmin))
	{
		admin.GET("/orders", adminCtrl.ListOrders)
		admin.GET("/orders/:id", adminCtrl.OrderDetail)
		admin.PATCH("/orders/:id/status", adminCtrl.ChangeOrderStatus)
	}
}
