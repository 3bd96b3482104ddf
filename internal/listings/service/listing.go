package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	listingerrors "estatehub/internal/listings/errors"
	"estatehub/internal/listings/repository"
	"estatehub/internal/listings/validator"
	"estatehub/pkg/config"
	apperrors "estatehub/pkg/errors"
	"estatehub/pkg/model"
	"estatehub/pkg/sanitizer"
	"estatehub/pkg/validation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const msgProjectNameTaken = "A property with this project name already exists"

type ListingService interface {
	Create(ctx context.Context, l *model.Listing) error
	GetAll(ctx context.Context, origin model.ListingOrigin, limit int, offset int64) ([]*model.Listing, int64, error)
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	Update(ctx context.Context, origin model.ListingOrigin, id string, updates *model.ListingUpdate) (*model.Listing, error)
	Delete(ctx context.Context, origin model.ListingOrigin, id string) error
	Search(ctx context.Context, q model.ListingQuery) ([]*model.Listing, error)
	Locations(ctx context.Context) ([]string, error)
	Builders(ctx context.Context) ([]string, error)
	ByLocation(ctx context.Context, location string) ([]*model.Listing, error)
	ByBuilder(ctx context.Context, builder string) ([]*model.Listing, error)
}

type listingService struct {
	repo      repository.ListingRepository
	validator *validator.ListingValidator
	cfg       *config.Config
}

func NewListingService(
	repo repository.ListingRepository,
	validator *validator.ListingValidator,
	cfg *config.Config,
) ListingService {
	return &listingService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// Create stores an admin or user listing depending on l.Origin. Admin project names are
// unique; the check and the insert share a transaction.
func (s *listingService) Create(ctx context.Context, l *model.Listing) error {
	s.sanitize(l)

	var err error
	if l.Origin == model.OriginUser {
		err = s.validator.ValidateUserProperty(l)
	} else {
		l.Origin = model.OriginAdmin
		err = s.validator.Validate(l)
	}
	if err != nil {
		s.cfg.Log.Warn("Listing validation failed",
			"origin", l.Origin,
			"project_name", l.ProjectName,
			"error", err,
		)
		return validation.AsAppError(err)
	}

	l.Normalize()

	if l.Origin == model.OriginUser {
		err = s.repo.Create(ctx, l)
	} else {
		err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
			taken, err := s.repo.ProjectNameTaken(sessCtx, l.ProjectName, "")
			if err != nil {
				return apperrors.Internal("Failed to check for existing listings", err)
			}
			if taken {
				return apperrors.Duplicate(msgProjectNameTaken)
			}
			return s.repo.Create(sessCtx, l)
		})
	}
	if err != nil {
		return s.mapWriteError(err, "Failed to create listing", l)
	}

	s.cfg.Log.Info("Listing created successfully",
		"id", l.ID,
		"origin", l.Origin,
		"project_name", l.ProjectName,
		"base_location", l.BaseLocation,
	)
	return nil
}

func (s *listingService) GetAll(ctx context.Context, origin model.ListingOrigin, limit int, offset int64) ([]*model.Listing, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var listings []*model.Listing
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(sharedCtx, origin)
		if err != nil {
			s.cfg.Log.Error("Failed to count listings", "origin", origin, "error", err)
			errCount = apperrors.Internal("Failed to count listings", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		listings, err = s.repo.FindAll(sharedCtx, origin, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all listings",
				"origin", origin,
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve listings", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return listings, count, nil
}

// GetByID looks in admin listings first, then user listings.
func (s *listingService) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}

	for _, origin := range []model.ListingOrigin{model.OriginAdmin, model.OriginUser} {
		l, err := s.repo.FindByID(ctx, origin, id)
		if err == nil {
			return l, nil
		}
		if !errors.Is(err, listingerrors.ErrNotFound) {
			return nil, s.mapReadError(err, "Failed to retrieve listing", id)
		}
	}
	return nil, apperrors.NotFoundWithID("Listing", id)
}

func (s *listingService) Update(ctx context.Context, origin model.ListingOrigin, id string, updates *model.ListingUpdate) (*model.Listing, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}

	s.sanitizeUpdate(updates)
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Listing update validation failed", "id", id, "error", err)
		return nil, validation.AsAppError(err)
	}

	var merged *model.Listing
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByID(sessCtx, origin, id)
		if err != nil {
			return s.mapReadError(err, "Failed to check listing existence", id)
		}

		renamed := updates.ProjectName != nil && *updates.ProjectName != existing.ProjectName
		merged = mergeListingUpdates(existing, updates)
		merged.Normalize()

		if origin == model.OriginAdmin && renamed {
			taken, err := s.repo.ProjectNameTaken(sessCtx, merged.ProjectName, id)
			if err != nil {
				return apperrors.Internal("Failed to check for existing listings", err)
			}
			if taken {
				return apperrors.Duplicate(msgProjectNameTaken)
			}
		}
		return s.repo.Update(sessCtx, merged)
	})
	if err != nil {
		return nil, s.mapWriteError(err, "Failed to update listing", &model.Listing{ID: id, Origin: origin})
	}

	s.cfg.Log.Info("Listing updated successfully", "id", id, "origin", origin)
	return merged, nil
}

func (s *listingService) Delete(ctx context.Context, origin model.ListingOrigin, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Listing ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, origin, id); err != nil {
		return s.mapReadError(err, "Failed to delete listing", id)
	}

	s.cfg.Log.Info("Listing deleted successfully", "id", id, "origin", origin)
	return nil
}

func (s *listingService) Search(ctx context.Context, q model.ListingQuery) ([]*model.Listing, error) {
	filter := repository.BuildSearchFilter(q)

	results, err := s.repo.Find(ctx, model.OriginAdmin, filter)
	if err != nil {
		s.cfg.Log.Error("Failed to search listings", "error", err)
		return nil, apperrors.Internal("Failed to search listings", err)
	}

	if q.IncludeUsers {
		users, err := s.repo.Find(ctx, model.OriginUser, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to search user listings", "error", err)
			return nil, apperrors.Internal("Failed to search listings", err)
		}
		results = mergeByProjectName(results, users)
	}
	return results, nil
}

func (s *listingService) Locations(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "base_location")
}

func (s *listingService) Builders(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "builder_name")
}

func (s *listingService) distinct(ctx context.Context, field string) ([]string, error) {
	values, err := s.repo.Distinct(ctx, field)
	if err != nil {
		s.cfg.Log.Error("Failed to list distinct values", "field", field, "error", err)
		return nil, apperrors.Internal("Failed to retrieve values", err)
	}
	return values, nil
}

func (s *listingService) ByLocation(ctx context.Context, location string) ([]*model.Listing, error) {
	if strings.TrimSpace(location) == "" {
		return nil, apperrors.InvalidInput("Location cannot be empty")
	}
	return s.find(ctx, repository.LocationFilter(location))
}

func (s *listingService) ByBuilder(ctx context.Context, builder string) ([]*model.Listing, error) {
	filter := repository.BuilderFilter(builder)
	if filter == nil {
		return nil, apperrors.InvalidInput("Builder cannot be empty")
	}
	return s.find(ctx, filter)
}

func (s *listingService) find(ctx context.Context, filter bson.M) ([]*model.Listing, error) {
	listings, err := s.repo.Find(ctx, model.OriginAdmin, filter)
	if err != nil {
		s.cfg.Log.Error("Failed to find listings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve listings", err)
	}
	return listings, nil
}

func (s *listingService) mapReadError(err error, msg, id string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, listingerrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Listing", id)
	}
	if errors.Is(err, listingerrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid listing ID format")
	}
	s.cfg.Log.Error(msg, "id", id, "error", err)
	return apperrors.Internal(msg, err)
}

func (s *listingService) mapWriteError(err error, msg string, l *model.Listing) error {
	if errors.Is(err, listingerrors.ErrDuplicateKey) {
		return apperrors.Duplicate(msgProjectNameTaken)
	}
	return s.mapReadError(err, msg, l.ID)
}

func (s *listingService) sanitize(l *model.Listing) {
	for _, f := range []*string{
		&l.ProjectName, &l.BuilderName, &l.ProjectType, &l.MinPrice, &l.MaxPrice, &l.SizeSqft,
		&l.BHK, &l.StatusPossession, &l.Location, &l.ReraNumber, &l.PossessionDate, &l.OwnerName,
	} {
		*f = sanitizer.TrimAndNormalize(*f)
	}
	l.ID = ""
	l.BuilderNameRaw = ""
	l.OwnerEmail = sanitizer.Email(l.OwnerEmail)
	l.OwnerPhone = sanitizer.Phone(l.OwnerPhone)
	l.Photos = sanitizer.SanitizeSlice(l.Photos, strings.TrimSpace)
}

func (s *listingService) sanitizeUpdate(u *model.ListingUpdate) {
	for _, f := range []*string{
		u.ProjectName, u.BuilderName, u.ProjectType, u.MinPrice, u.MaxPrice, u.SizeSqft,
		u.BHK, u.StatusPossession, u.Location, u.ReraNumber, u.PossessionDate, u.OwnerName,
	} {
		if f != nil {
			*f = sanitizer.TrimAndNormalize(*f)
		}
	}
	if u.OwnerEmail != nil {
		*u.OwnerEmail = sanitizer.Email(*u.OwnerEmail)
	}
	if u.OwnerPhone != nil {
		*u.OwnerPhone = sanitizer.Phone(*u.OwnerPhone)
	}
	if u.Photos != nil {
		photos := sanitizer.SanitizeSlice(*u.Photos, strings.TrimSpace)
		u.Photos = &photos
	}
}

func mergeListingUpdates(existing *model.Listing, u *model.ListingUpdate) *model.Listing {
	merged := *existing

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&merged.ProjectName, u.ProjectName)
	set(&merged.ProjectType, u.ProjectType)
	set(&merged.MinPrice, u.MinPrice)
	set(&merged.MaxPrice, u.MaxPrice)
	set(&merged.SizeSqft, u.SizeSqft)
	set(&merged.BHK, u.BHK)
	set(&merged.StatusPossession, u.StatusPossession)
	set(&merged.Location, u.Location)
	set(&merged.ReraNumber, u.ReraNumber)
	set(&merged.PossessionDate, u.PossessionDate)
	set(&merged.OwnerName, u.OwnerName)
	set(&merged.OwnerEmail, u.OwnerEmail)
	set(&merged.OwnerPhone, u.OwnerPhone)

	if u.BuilderName != nil {
		merged.BuilderNameRaw = *u.BuilderName
	}
	if u.Photos != nil {
		merged.Photos = *u.Photos
	}
	return &merged
}

// mergeByProjectName combines two project_name-sorted slices, keeping the order.
func mergeByProjectName(a, b []*model.Listing) []*model.Listing {
	out := make([]*model.Listing, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].ProjectName <= b[j].ProjectName {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
