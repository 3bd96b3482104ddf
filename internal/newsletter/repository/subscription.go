package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	newslettererrors "estatehub/internal/newsletter/errors"
	"estatehub/pkg/config"
	"estatehub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "newsletter_subscriptions"

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error
	FindByEmail(ctx context.Context, email string) (*model.Subscription, error)
	Reactivate(ctx context.Context, sub *model.Subscription) error
	Unsubscribe(ctx context.Context, email string) error
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Subscription, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, filter bson.M) (bool, error)
}

type mongoSubscriptionRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSubscriptionRepository(cfg *config.Config) SubscriptionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSubscriptionRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (r *mongoSubscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	sub.CreatedAt = now()
	sub.UpdatedAt = sub.CreatedAt

	result, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", newslettererrors.ErrDuplicateKey, sub.Email)
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		sub.ID = oid.Hex()
	}
	return nil
}

func (r *mongoSubscriptionRepository) FindByEmail(ctx context.Context, email string) (*model.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var sub model.Subscription
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&sub); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", newslettererrors.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}
	return &sub, nil
}

// Reactivate flips an unsubscribed address back to active and refreshes its name and source.
func (r *mongoSubscriptionRepository) Reactivate(ctx context.Context, sub *model.Subscription) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(sub.ID)
	if err != nil {
		return fmt.Errorf("%w: %s", newslettererrors.ErrInvalidID, sub.ID)
	}

	sub.Status = model.SubscriptionActive
	sub.UnsubscribedAt = nil
	sub.UpdatedAt = now()

	update := bson.M{
		"$set": bson.M{
			"status":     sub.Status,
			"name":       sub.Name,
			"source":     sub.Source,
			"updated_at": sub.UpdatedAt,
		},
		"$unset": bson.M{"unsubscribed_at": ""},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to reactivate subscription: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", newslettererrors.ErrNotFound, sub.ID)
	}
	return nil
}

func (r *mongoSubscriptionRepository) Unsubscribe(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	ts := now()
	update := bson.M{"$set": bson.M{
		"status":          model.SubscriptionUnsubscribed,
		"unsubscribed_at": ts,
		"updated_at":      ts,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", newslettererrors.ErrNotFound, email)
	}
	return nil
}

func (r *mongoSubscriptionRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer cursor.Close(ctx)

	subs := make([]*model.Subscription, 0)
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode subscriptions: %w", err)
	}
	return subs, nil
}

func (r *mongoSubscriptionRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}

func (r *mongoSubscriptionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", newslettererrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", newslettererrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoSubscriptionRepository) Exists(ctx context.Context, filter bson.M) (bool, error) {
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
