package main

import (
	"estatehub/internal/listings/handler"
	"estatehub/internal/listings/repository"
	"estatehub/internal/listings/service"
	"estatehub/internal/listings/validator"
	"estatehub/pkg/app"
	"estatehub/pkg/auth"
	"estatehub/pkg/config"
)

const ServiceName = "listings"

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

	listingService := service.NewListingService(
		repository.NewMongoListingRepository(cfg),
		validator.NewListingValidator(cfg.Log),
		cfg,
	)
	cfg.Log.Info("Listing service initialized")

	application := app.NewApplication(cfg)
	application.SetApp(handler.NewListingHandler(listingService, tokens, cfg.Log))
	application.Run()
}
