package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/khangtran/keygate/internal/config"
	"github.com/khangtran/keygate/internal/server/http/handlers"
	"github.com/khangtran/keygate/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ShopFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade, logger)

	api := engine.Group("/api")
	api.GET("/health", health)
	api.POST("/orders", orderHandler.Create)
	api.POST("/check-status", orderHandler.Status)
	api.POST("/webhook/sepay", webhookHandler.Handle)

	// Admin routes exist only when an operator key hash is configured.
	if cfg.AdminKeyHash != "" {
		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg.AdminKeyHash))
		admin.GET("/orders", handlers.NewAdminHandler(facade).List)
	}

	return engine
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
