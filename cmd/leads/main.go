package main

import (
	careerhandler "estatehub/internal/careers/handler"
	careerrepo "estatehub/internal/careers/repository"
	careerservice "estatehub/internal/careers/service"
	careervalidator "estatehub/internal/careers/validator"
	leadhandler "estatehub/internal/leads/handler"
	leadrepo "estatehub/internal/leads/repository"
	leadservice "estatehub/internal/leads/service"
	leadvalidator "estatehub/internal/leads/validator"
	newsletterhandler "estatehub/internal/newsletter/handler"
	newsletterrepo "estatehub/internal/newsletter/repository"
	newsletterservice "estatehub/internal/newsletter/service"
	newslettervalidator "estatehub/internal/newsletter/validator"
	"estatehub/pkg/app"
	"estatehub/pkg/auth"
	"estatehub/pkg/config"
	"estatehub/pkg/sealer"
)

const ServiceName = "leads"

func main() {
	cfg := config.Load(ServiceName)
	cfg.RequireSecrets(config.EnvJWTSecret, config.EnvNewsletterTokenKey)
	app.InitSentry(cfg, ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		cfg.Log.Fatal("Failed to create token manager", "error", err)
	}
	unsubscribeTokens, err := sealer.New(cfg.NewsletterTokenKey)
	if err != nil {
		cfg.Log.Fatal("Failed to create unsubscribe token sealer", "error", err)
	}
	notifier, closeNotifier, err := app.NewNotifier(cfg, ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to create notifier", "error", err)
	}

	leadService := leadservice.NewLeadService(
		leadrepo.NewMongoLeadRepository(cfg),
		leadvalidator.NewLeadValidator(cfg.Log),
		notifier,
		cfg,
	)
	subscriptionService := newsletterservice.NewSubscriptionService(
		newsletterrepo.NewMongoSubscriptionRepository(cfg),
		newslettervalidator.NewSubscriptionValidator(cfg.Log),
		notifier,
		unsubscribeTokens,
		cfg,
	)
	applicationService := careerservice.NewApplicationService(
		careerrepo.NewMongoApplicationRepository(cfg),
		careervalidator.NewApplicationValidator(cfg.Log),
		notifier,
		cfg,
	)
	cfg.Log.Info("Lead, newsletter and career services initialized")

	application := app.NewApplication(cfg)
	application.OnShutdown(closeNotifier)
	application.SetApp(
		leadhandler.NewLeadHandler(leadService, tokens, cfg.Log),
		newsletterhandler.NewSubscriptionHandler(subscriptionService, tokens, cfg.Log),
		careerhandler.NewApplicationHandler(applicationService, tokens, cfg.Log),
	)
	application.Run()
}
