package main

import (
	"context"

	"estatehub/internal/admins/handler"
	"estatehub/internal/admins/repository"
	"estatehub/internal/admins/service"
	"estatehub/internal/admins/validator"
	"estatehub/pkg/app"
	"estatehub/pkg/auth"
	"estatehub/pkg/config"
)

const ServiceName = "admin"

func main() {
	cfg := config.Load(ServiceName)
	cfg.RequireSecrets(config.EnvJWTSecret)
	app.InitSentry(cfg, ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		cfg.Log.Fatal("Failed to create token manager", "error", err)
	}
	notifier, closeNotifier, err := app.NewNotifier(cfg, ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to create notifier", "error", err)
	}

	adminService := service.NewAdminService(
		repository.NewMongoAdminRepository(cfg),
		validator.NewAdminValidator(cfg.Log),
		notifier,
		tokens,
		cfg,
	)

	seedCtx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	if err := adminService.Seed(seedCtx, cfg.AdminSeeds); err != nil {
		cancel()
		cfg.Log.Fatal("Failed to seed admin accounts", "error", err)
	}
	cancel()
	cfg.Log.Info("Admin service initialized")

	application := app.NewApplication(cfg)
	application.OnShutdown(closeNotifier)
	application.SetApp(handler.NewAdminHandler(adminService, tokens, cfg.Log))
	application.Run()
}
