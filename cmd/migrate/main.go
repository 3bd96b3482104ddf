package main

import (
	"context"
	"time"

	mongoMigration "estatehub/internal/migrations/mongo"
	"estatehub/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg.Log.Info("Starting Mongo migration job")
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		cancel()
		cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)
		cfg.Log.Fatal("Mongo migration job aborted")
	}
	cfg.Log.Info("Migration completed successfully")
}
