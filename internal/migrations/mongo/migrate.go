package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	adminrepo "estatehub/internal/admins/repository"
	careerrepo "estatehub/internal/careers/repository"
	listingrepo "estatehub/internal/listings/repository"
	"estatehub/internal/migrations/mongo/validators"
	newsletterrepo "estatehub/internal/newsletter/repository"
	"estatehub/pkg/logger"
	"estatehub/pkg/model"
)

type CollectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

var (
	createdAtDesc = mongo.IndexModel{Keys: bson.D{{Key: "created_at", Value: -1}}}

	LeadIndexes = []mongo.IndexModel{
		createdAtDesc,
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "phone", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	ProjectIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project_name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("project_name_unique"),
		},
		{Keys: bson.D{{Key: "base_location", Value: 1}}},
		{Keys: bson.D{{Key: "builder_name", Value: 1}}},
		createdAtDesc,
	}

	UserPropertyIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "project_name", Value: 1}}},
		{Keys: bson.D{{Key: "base_location", Value: 1}}},
		createdAtDesc,
	}

	SubscriptionIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
		createdAtDesc,
	}

	ApplicationIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "position", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		createdAtDesc,
	}

	AdminIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
	}
)

// Collections lists every collection the services use, with its indexes and schema.
func Collections() []CollectionDef {
	defs := make([]CollectionDef, 0, len(model.LeadKinds())+5)
	for _, kind := range model.LeadKinds() {
		defs = append(defs, CollectionDef{
			Name:      kind.Collection(),
			Indexes:   LeadIndexes,
			Validator: validators.LeadValidator,
		})
	}

	return append(defs,
		CollectionDef{listingrepo.ProjectsCollection, ProjectIndexes, validators.ProjectValidator},
		CollectionDef{listingrepo.UserPropertiesCollection, UserPropertyIndexes, validators.UserPropertyValidator},
		CollectionDef{newsletterrepo.CollectionName, SubscriptionIndexes, validators.SubscriptionValidator},
		CollectionDef{careerrepo.CollectionName, ApplicationIndexes, validators.ApplicationValidator},
		CollectionDef{adminrepo.CollectionName, AdminIndexes, validators.AdminValidator},
	)
}

// RunMigration is idempotent: existing collections get their validator refreshed and
// missing indexes created.
func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range Collections() {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
		log.Info("Collection ready", "collection", def.Name, "indexes", len(def.Indexes))
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	_, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	return err
}
