package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	leaderrors "estatehub/internal/leads/errors"
	"estatehub/pkg/config"
	"estatehub/pkg/dedup"
	"estatehub/pkg/model"
	"estatehub/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LeadFilter narrows admin listings. Zero values are ignored.
type LeadFilter struct {
	Query  string
	From   *time.Time
	To     *time.Time
	Status model.LeadStatus
}

type LeadRepository interface {
	Create(ctx context.Context, lead *model.Lead) error
	FindByID(ctx context.Context, kind model.LeadKind, id string) (*model.Lead, error)
	FindAll(ctx context.Context, kind model.LeadKind, filter LeadFilter, limit int, offset int64) ([]*model.Lead, error)
	Count(ctx context.Context, kind model.LeadKind, filter LeadFilter) (int64, error)
	Update(ctx context.Context, lead *model.Lead) error
	UpdateStatus(ctx context.Context, kind model.LeadKind, id string, status model.LeadStatus) error
	Delete(ctx context.Context, kind model.LeadKind, id string) error
	Finder(kind model.LeadKind) dedup.Finder
}

type mongoLeadRepository struct {
	cfg *config.Config
	db  *mongo.Database
}

func NewMongoLeadRepository(cfg *config.Config) LeadRepository {
	return &mongoLeadRepository{
		cfg: cfg,
		db:  cfg.Client.Mongo.Database(cfg.MongoDatabaseName),
	}
}

func (r *mongoLeadRepository) collection(kind model.LeadKind) *mongo.Collection {
	return r.db.Collection(kind.Collection())
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoLeadRepository) Create(ctx context.Context, lead *model.Lead) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	lead.CreatedAt = now
	lead.UpdatedAt = now

	result, err := r.collection(lead.Kind).InsertOne(ctx, lead)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", lead.Kind, err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		lead.ID = oid.Hex()
	}
	return nil
}

func (r *mongoLeadRepository) FindByID(ctx context.Context, kind model.LeadKind, id string) (*model.Lead, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", leaderrors.ErrInvalidID, id)
	}

	var lead model.Lead
	err = r.collection(kind).FindOne(ctx, bson.M{"_id": objectID}).Decode(&lead)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", leaderrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find %s: %w", kind, err)
	}

	lead.Kind = kind
	return &lead, nil
}

func (r *mongoLeadRepository) FindAll(ctx context.Context, kind model.LeadKind, filter LeadFilter, limit int, offset int64) ([]*model.Lead, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection(kind).Find(ctx, BuildListFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", kind, err)
	}
	defer cursor.Close(ctx)

	leads := make([]*model.Lead, 0)
	if err = cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", kind, err)
	}
	for _, l := range leads {
		l.Kind = kind
	}
	return leads, nil
}

func (r *mongoLeadRepository) Count(ctx context.Context, kind model.LeadKind, filter LeadFilter) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection(kind).CountDocuments(ctx, BuildListFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", kind, err)
	}
	return count, nil
}

func (r *mongoLeadRepository) Update(ctx context.Context, lead *model.Lead) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(lead.ID)
	if err != nil {
		return fmt.Errorf("%w: %s", leaderrors.ErrInvalidID, lead.ID)
	}

	lead.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"name":             lead.Name,
			"message":          lead.Message,
			"source":           lead.Source,
			"project_name":     lead.ProjectName,
			"builder_name":     lead.BuilderName,
			"builder_name_raw": lead.BuilderNameRaw,
			"location":         lead.Location,
			"base_location":    lead.BaseLocation,
			"property_type":    lead.PropertyType,
			"budget":           lead.Budget,
			"updated_at":       lead.UpdatedAt,
		},
	}

	result, err := r.collection(lead.Kind).UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", lead.Kind, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", leaderrors.ErrNotFound, lead.ID)
	}
	return nil
}

func (r *mongoLeadRepository) UpdateStatus(ctx context.Context, kind model.LeadKind, id string, status model.LeadStatus) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", leaderrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}}

	result, err := r.collection(kind).UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update %s status: %w", kind, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", leaderrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoLeadRepository) Delete(ctx context.Context, kind model.LeadKind, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", leaderrors.ErrInvalidID, id)
	}

	result, err := r.collection(kind).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", leaderrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoLeadRepository) Finder(kind model.LeadKind) dedup.Finder {
	return &collectionFinder{coll: r.collection(kind), timeout: r.cfg.ReadTimeout}
}

// collectionFinder answers dedup existence queries against one collection.
type collectionFinder struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func (f *collectionFinder) Exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := withTimeout(ctx, f.timeout)
	defer cancel()

	err := f.coll.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// BuildListFilter turns admin list parameters into a Mongo filter. The query is matched
// case-insensitively against name, email and phone.
func BuildListFilter(f LeadFilter) bson.M {
	filter := bson.M{}

	if f.Query != "" {
		pattern := bson.M{"$regex": sanitizer.EscapeRegex(f.Query), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
			bson.M{"phone": pattern},
		}
	}

	if f.From != nil || f.To != nil {
		created := bson.M{}
		if f.From != nil {
			created["$gte"] = *f.From
		}
		if f.To != nil {
			created["$lt"] = *f.To
		}
		filter["created_at"] = created
	}

	if f.Status != "" {
		filter["status"] = f.Status
	}

	return filter
}
