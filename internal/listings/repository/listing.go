package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	listingerrors "estatehub/internal/listings/errors"
	"estatehub/pkg/config"
	mongotx "estatehub/pkg/db/mongo"
	"estatehub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ProjectsCollection       = "projects"
	UserPropertiesCollection = "user_properties"
)

func collectionFor(origin model.ListingOrigin) string {
	if origin == model.OriginUser {
		return UserPropertiesCollection
	}
	return ProjectsCollection
}

type ListingRepository interface {
	Create(ctx context.Context, l *model.Listing) error
	FindByID(ctx context.Context, origin model.ListingOrigin, id string) (*model.Listing, error)
	FindAll(ctx context.Context, origin model.ListingOrigin, limit int, offset int64) ([]*model.Listing, error)
	Count(ctx context.Context, origin model.ListingOrigin) (int64, error)
	Update(ctx context.Context, l *model.Listing) error
	Delete(ctx context.Context, origin model.ListingOrigin, id string) error
	ProjectNameTaken(ctx context.Context, name, excludeID string) (bool, error)
	Find(ctx context.Context, origin model.ListingOrigin, filter bson.M) ([]*model.Listing, error)
	Distinct(ctx context.Context, field string) ([]string, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoListingRepository struct {
	cfg       *config.Config
	db        *mongo.Database
	txManager mongotx.TransactionManager
}

func NewMongoListingRepository(cfg *config.Config) ListingRepository {
	return &mongoListingRepository{
		cfg:       cfg,
		db:        cfg.Client.Mongo.Database(cfg.MongoDatabaseName),
		txManager: mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoListingRepository) coll(origin model.ListingOrigin) *mongo.Collection {
	return r.db.Collection(collectionFor(origin))
}

func (r *mongoListingRepository) Create(ctx context.Context, l *model.Listing) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	l.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	l.UpdatedAt = l.CreatedAt

	result, err := r.coll(l.Origin).InsertOne(ctx, l)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", listingerrors.ErrDuplicateKey, l.ProjectName)
		}
		return fmt.Errorf("failed to create listing: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		l.ID = oid.Hex()
	}
	return nil
}

func (r *mongoListingRepository) FindByID(ctx context.Context, origin model.ListingOrigin, id string) (*model.Listing, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", listingerrors.ErrInvalidID, id)
	}

	var l model.Listing
	if err := r.coll(origin).FindOne(ctx, bson.M{"_id": objectID}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", listingerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	l.Origin = origin
	return &l, nil
}

func (r *mongoListingRepository) FindAll(ctx context.Context, origin model.ListingOrigin, limit int, offset int64) ([]*model.Listing, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	return r.find(ctx, origin, bson.M{}, opts)
}

func (r *mongoListingRepository) Count(ctx context.Context, origin model.ListingOrigin) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.coll(origin).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return count, nil
}

func (r *mongoListingRepository) Update(ctx context.Context, l *model.Listing) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(l.ID)
	if err != nil {
		return fmt.Errorf("%w: %s", listingerrors.ErrInvalidID, l.ID)
	}

	l.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"project_name":      l.ProjectName,
			"builder_name":      l.BuilderName,
			"builder_name_raw":  l.BuilderNameRaw,
			"project_type":      l.ProjectType,
			"min_price":         l.MinPrice,
			"max_price":         l.MaxPrice,
			"size_sqft":         l.SizeSqft,
			"bhk":               l.BHK,
			"status_possession": l.StatusPossession,
			"location":          l.Location,
			"base_location":     l.BaseLocation,
			"rera_number":       l.ReraNumber,
			"possession_date":   l.PossessionDate,
			"photos":            l.Photos,
			"owner_name":        l.OwnerName,
			"owner_email":       l.OwnerEmail,
			"owner_phone":       l.OwnerPhone,
			"updated_at":        l.UpdatedAt,
		},
	}

	result, err := r.coll(l.Origin).UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", listingerrors.ErrDuplicateKey, l.ProjectName)
		}
		return fmt.Errorf("failed to update listing: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", listingerrors.ErrNotFound, l.ID)
	}
	return nil
}

func (r *mongoListingRepository) Delete(ctx context.Context, origin model.ListingOrigin, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", listingerrors.ErrInvalidID, id)
	}

	result, err := r.coll(origin).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", listingerrors.ErrNotFound, id)
	}
	return nil
}

// ProjectNameTaken reports whether an admin listing already uses name, compared exactly.
func (r *mongoListingRepository) ProjectNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"project_name": name}
	if excludeID != "" {
		if objectID, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			filter["_id"] = bson.M{"$ne": objectID}
		}
	}

	count, err := r.coll(model.OriginAdmin).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check project name: %w", err)
	}
	return count > 0, nil
}

func (r *mongoListingRepository) Find(ctx context.Context, origin model.ListingOrigin, filter bson.M) ([]*model.Listing, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "project_name", Value: 1}})
	return r.find(ctx, origin, filter, opts)
}

func (r *mongoListingRepository) find(ctx context.Context, origin model.ListingOrigin, filter bson.M, opts *options.FindOptions) ([]*model.Listing, error) {
	cursor, err := r.coll(origin).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := make([]*model.Listing, 0)
	if err = cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}
	for _, l := range listings {
		l.Origin = origin
	}
	return listings, nil
}

// Distinct returns the sorted non-empty values of field across admin listings.
func (r *mongoListingRepository) Distinct(ctx context.Context, field string) ([]string, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	raw, err := r.coll(model.OriginAdmin).Distinct(ctx, field, bson.M{field: bson.M{"$nin": bson.A{"", nil}}})
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct %s: %w", field, err)
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			values = append(values, s)
		}
	}
	sort.Strings(values)
	return values, nil
}

func (r *mongoListingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
