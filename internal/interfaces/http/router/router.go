// Package router wires the HTTP endpoints to their handlers.
package router

import (
	"net/http"

	"github.com/autoparts/backend/internal/infrastructure/auth"
	"github.com/autoparts/backend/internal/infrastructure/config"
	"github.com/autoparts/backend/internal/interfaces/http/handler"
	"github.com/autoparts/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Auth      *handler.AuthHandler
	Products  *handler.ProductHandler
	Orders    *handler.OrderHandler
	Users     *handler.UserHandler
	Reports   *handler.ReportHandler
	Diagnosis *handler.DiagnosisHandler
}

// New builds the gin engine with all middleware and routes mounted
func New(cfg *config.Config, jwtService *auth.JWTService, handlers Handlers, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.AccessLog(logger))
	engine.Use(middleware.Recovery(logger))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.MaxMultipartMemory = cfg.HTTP.MaxBodySize
	}
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// images from the local storage backend are served statically
	if cfg.Storage.Backend == "local" {
		engine.Static(cfg.Storage.BaseURL, cfg.Storage.LocalDir)
	}

	authRequired := middleware.JWTAuth(jwtService, logger)

	api := engine.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", handlers.Auth.Register)
			authGroup.POST("/login", handlers.Auth.Login)
			authGroup.POST("/forgot-password", handlers.Auth.ForgotPassword)
			authGroup.POST("/verify-reset-code", handlers.Auth.VerifyResetCode)
			authGroup.POST("/reset-password", handlers.Auth.ResetPassword)
		}

		products := api.Group("/products")
		{
			products.GET("", handlers.Products.List)
			products.GET("/:id", handlers.Products.Get)

			staff := products.Group("", authRequired, middleware.RequireStaff())
			{
				staff.POST("", handlers.Products.Create)
				staff.PUT("/:id", handlers.Products.Update)
				staff.DELETE("/:id", handlers.Products.Delete)
				staff.POST("/:id/restock", handlers.Products.Restock)
			}
		}

		orders := api.Group("/orders", authRequired)
		{
			orders.POST("", handlers.Orders.Place)
			orders.GET("", handlers.Orders.ListMine)
			orders.GET("/:id", handlers.Orders.Get)
			orders.POST("/:id/confirm-receipt", handlers.Orders.ConfirmReceipt)
		}

		api.POST("/ml/diagnose", handlers.Diagnosis.Diagnose)

		stats := api.Group("/stats", authRequired, middleware.RequireStaff())
		{
			stats.GET("/overview", handlers.Reports.Overview)
			stats.GET("/traffic", handlers.Reports.Traffic)
		}

		admin := api.Group("/admin", authRequired, middleware.RequireAdmin())
		{
			admin.GET("/orders", handlers.Orders.ListAll)
			admin.PUT("/orders/:id/status", handlers.Orders.SetStatus)
			admin.GET("/users", handlers.Users.List)
			admin.PUT("/users/:id/role", handlers.Users.ChangeRole)
			admin.DELETE("/users/:id", handlers.Users.Delete)
		}
	}

	return engine
}
