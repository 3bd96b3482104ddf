package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	adminerrors "estatehub/internal/admins/errors"
	"estatehub/pkg/config"
	"estatehub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "admins"

type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindByID(ctx context.Context, id string) (*model.Admin, error)
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	SetResetOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error
	// SetPassword stores a new password hash and clears any pending reset code.
	SetPassword(ctx context.Context, id, passwordHash string) error
}

type mongoAdminRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAdminRepository(cfg *config.Config) AdminRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAdminRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (r *mongoAdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	admin.CreatedAt = now()
	admin.UpdatedAt = admin.CreatedAt

	result, err := r.collection.InsertOne(ctx, admin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", adminerrors.ErrDuplicateKey, admin.Email)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		admin.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAdminRepository) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", adminerrors.ErrInvalidID, id)
	}
	return r.findOne(ctx, bson.M{"_id": objectID}, id)
}

func (r *mongoAdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return r.findOne(ctx, bson.M{"email": email}, email)
}

func (r *mongoAdminRepository) findOne(ctx context.Context, filter bson.M, key string) (*model.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var admin model.Admin
	if err := r.collection.FindOne(ctx, filter).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", adminerrors.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return &admin, nil
}

func (r *mongoAdminRepository) SetResetOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error {
	return r.update(ctx, id, bson.M{"$set": bson.M{
		"reset_otp_hash":       otpHash,
		"reset_otp_expires_at": expiresAt.UTC().Truncate(time.Millisecond),
		"updated_at":           now(),
	}})
}

func (r *mongoAdminRepository) SetPassword(ctx context.Context, id, passwordHash string) error {
	return r.update(ctx, id, bson.M{
		"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    now(),
		},
		"$unset": bson.M{"reset_otp_hash": "", "reset_otp_expires_at": ""},
	})
}

func (r *mongoAdminRepository) update(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", adminerrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update admin: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", adminerrors.ErrNotFound, id)
	}
	return nil
}
