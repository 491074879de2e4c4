package routes

import (
	"net/http"
	"time"

	"digital-menu-api/config"
	"digital-menu-api/handlers"
	"digital-menu-api/logger"
	"digital-menu-api/middleware"
	"digital-menu-api/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the router needs besides the handler dependencies
type Deps struct {
	Handler *handlers.Handler
	Auth    *middleware.Auth
	Logger  *zap.Logger
	Server  config.ServerConfig
}

func SetupRoutes(r *gin.Engine, d Deps) error {
	if err := handlers.RegisterValidators(); err != nil {
		return err
	}
	h := d.Handler

	r.Use(
		middleware.RequestID(),
		logger.Middleware(d.Logger),
		middleware.Metrics(h.Metrics),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     d.Server.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	// ── Operational ────────────────────────────────────────────────
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	r.GET("/state-machine", handlers.GetStateMachineInfo)
	if local, ok := h.Storage.(*storage.Local); ok {
		r.Static("/uploads", local.Dir())
	}

	// ── Session ────────────────────────────────────────────────────
	r.GET("/", d.Auth.OptionalUser(), h.Home)
	if h.Local != nil {
		auth := r.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.Logout)
		}
	}

	// ── Owner area ─────────────────────────────────────────────────
	admin := r.Group("/")
	admin.Use(d.Auth.RequireUser(), middleware.Onboarding(h.Store))
	{
		admin.GET("/onboarding", h.GetOnboarding)
		admin.POST("/onboarding", h.CreateProfile)

		admin.GET("/dashboard", h.GetDashboard)

		admin.GET("/menu-management", h.GetMenuManagement)
		admin.POST("/menu-management/categories", h.AddCategory)
		admin.PUT("/menu-management/categories/:id", h.EditCategory)
		admin.DELETE("/menu-management/categories/:id", h.DeleteCategory)
		admin.POST("/menu-management/dishes", h.AddDish)
		admin.PUT("/menu-management/dishes/:id", h.EditDish)
		admin.DELETE("/menu-management/dishes/:id", h.DeleteDish)

		admin.GET("/restaurant-profile", h.GetProfile)
		admin.PUT("/restaurant-profile", h.UpdateProfile)
	}

	// ── Public menus ───────────────────────────────────────────────
	r.GET("/:slug", h.GetMenu)
	return nil
}
