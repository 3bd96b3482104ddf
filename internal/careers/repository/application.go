package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	careererrors "estatehub/internal/careers/errors"
	"estatehub/pkg/config"
	"estatehub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "career_applications"

type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	FindByID(ctx context.Context, id string) (*model.Application, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Application, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, filter bson.M) (bool, error)
}

type mongoApplicationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoApplicationRepository(cfg *config.Config) ApplicationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoApplicationRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	app.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	app.UpdatedAt = app.CreatedAt

	result, err := r.collection.InsertOne(ctx, app)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		app.ID = oid.Hex()
	}
	return nil
}

func (r *mongoApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", careererrors.ErrInvalidID, id)
	}

	var app model.Application
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&app); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", careererrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

func (r *mongoApplicationRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer cursor.Close(ctx)

	apps := make([]*model.Application, 0)
	if err = cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("failed to decode applications: %w", err)
	}
	return apps, nil
}

func (r *mongoApplicationRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

func (r *mongoApplicationRepository) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", careererrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", careererrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoApplicationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", careererrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", careererrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoApplicationRepository) Exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	err := r.collection.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
