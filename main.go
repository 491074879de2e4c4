package main

import (
	"context"

	"digital-menu-api/config"
	"digital-menu-api/handlers"
	"digital-menu-api/identity"
	"digital-menu-api/logger"
	"digital-menu-api/metrics"
	"digital-menu-api/middleware"
	"digital-menu-api/routes"
	"digital-menu-api/storage"
	"digital-menu-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.Server.Env, cfg.Log.Level)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	log.Info("starting digital-menu-api", cfg.LogFields()...)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.OpenDB(cfg.DB)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	st := store.New(db)

	objects, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}

	var (
		provider identity.Provider
		local    *identity.Local
	)
	switch cfg.Auth.Mode {
	case "gotrue":
		provider = identity.NewGoTrue(cfg.Auth.GoTrueURL, cfg.Auth.GoTrueAPIKey, cfg.Auth.GoTrueTimeout)
	default:
		local = identity.NewLocal(st, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		provider = local
	}

	m := metrics.New("digital_menu")
	h := &handlers.Handler{
		Store:   st,
		Storage: objects,
		Metrics: m,
		Local:   local,
		Auth:    cfg.Auth,
	}

	r := gin.New()
	err = routes.SetupRoutes(r, routes.Deps{
		Handler: h,
		Auth:    &middleware.Auth{Provider: provider, CookieName: cfg.Auth.CookieName, Metrics: m},
		Logger:  log,
		Server:  cfg.Server,
	})
	if err != nil {
		log.Fatal("failed to set up routes", zap.Error(err))
	}

	log.Info("server listening", zap.String("addr", "http://localhost:"+cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
