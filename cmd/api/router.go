package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"presskit-backend/internal/shared/middleware"
	"presskit-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupPresskitRoutes(v1, c)
		setupPublicPresskitRoutes(v1, c)
		setupTemplateRoutes(v1, c)
		setupSubscriptionRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.UserHandler.SignUp)
		auth.POST("/signin", c.UserHandler.SignIn)
		auth.POST("/signout", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.SignOut)
		auth.POST("/refresh", c.UserHandler.Refresh)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/profile", c.UserHandler.GetProfile)
		users.PUT("/profile", c.UserHandler.UpdateProfile)
		users.DELETE("/profile", c.UserHandler.DeleteProfile)
	}
}

// ========================================
// PRESSKIT ROUTES
// ========================================
func setupPresskitRoutes(v1 *gin.RouterGroup, c *container.Container) {
	presskits := v1.Group("/presskits")
	presskits.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		presskits.POST("", c.PresskitHandler.Create)
		presskits.GET("", c.PresskitHandler.List)
		presskits.GET("/:id", c.PresskitHandler.GetByID)
		presskits.PUT("/:id", c.PresskitHandler.Update)
		presskits.DELETE("/:id", c.PresskitHandler.Delete)
		presskits.POST("/:id/publish", c.PresskitHandler.Publish)
		presskits.POST("/:id/archive", c.PresskitHandler.Archive)
		presskits.GET("/:id/stats", c.PresskitHandler.Stats)
	}
}

// ========================================
// PUBLIC PRESSKIT ROUTES
// ========================================
func setupPublicPresskitRoutes(v1 *gin.RouterGroup, c *container.Container) {
	public := v1.Group("/p")
	{
		public.GET("/:slug", c.PresskitHandler.GetPublic)
		public.POST("/:slug/download", c.PresskitHandler.Download)
	}
}

// ========================================
// TEMPLATE ROUTES
// ========================================
func setupTemplateRoutes(v1 *gin.RouterGroup, c *container.Container) {
	templates := v1.Group("/templates")
	{
		templates.GET("", c.TemplateHandler.List)
		templates.GET("/:id", c.TemplateHandler.GetByID)
	}
}

// ========================================
// SUBSCRIPTION ROUTES
// ========================================
func setupSubscriptionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	subscription := v1.Group("/subscription")
	{
		subscription.GET("/plans", c.SubscriptionHandler.ListPlans)
		subscription.GET("", middleware.AuthMiddleware(c.JWTManager), c.SubscriptionHandler.Current)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		{
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		redisStatus := "ok"
		{
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
