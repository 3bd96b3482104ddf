package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	listingerrors "estatehub/internal/listings/errors"
	"estatehub/internal/listings/validator"
	"estatehub/pkg/config"
	mongotx "estatehub/pkg/db/mongo"
	apperrors "estatehub/pkg/errors"
	"estatehub/pkg/logger"
	"estatehub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

type mockListingRepository struct {
	createFunc           func(ctx context.Context, l *model.Listing) error
	findByIDFunc         func(ctx context.Context, origin model.ListingOrigin, id string) (*model.Listing, error)
	findAllFunc          func(ctx context.Context, origin model.ListingOrigin, limit int, offset int64) ([]*model.Listing, error)
	countFunc            func(ctx context.Context, origin model.ListingOrigin) (int64, error)
	updateFunc           func(ctx context.Context, l *model.Listing) error
	deleteFunc           func(ctx context.Context, origin model.ListingOrigin, id string) error
	projectNameTakenFunc func(ctx context.Context, name, excludeID string) (bool, error)
	findFunc             func(ctx context.Context, origin model.ListingOrigin, filter bson.M) ([]*model.Listing, error)
	distinctFunc         func(ctx context.Context, field string) ([]string, error)
	transactions         int
}

func (m *mockListingRepository) Create(ctx context.Context, l *model.Listing) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, l)
	}
	l.ID = "507f1f77bcf86cd799439011"
	return nil
}

func (m *mockListingRepository) FindByID(ctx context.Context, origin model.ListingOrigin, id string) (*model.Listing, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, origin, id)
	}
	return nil, fmt.Errorf("%w: %s", listingerrors.ErrNotFound, id)
}

func (m *mockListingRepository) FindAll(ctx context.Context, origin model.ListingOrigin, limit int, offset int64) ([]*model.Listing, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, origin, limit, offset)
	}
	return []*model.Listing{}, nil
}

func (m *mockListingRepository) Count(ctx context.Context, origin model.ListingOrigin) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, origin)
	}
	return 0, nil
}

func (m *mockListingRepository) Update(ctx context.Context, l *model.Listing) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, l)
	}
	return nil
}

func (m *mockListingRepository) Delete(ctx context.Context, origin model.ListingOrigin, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, origin, id)
	}
	return nil
}

func (m *mockListingRepository) ProjectNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	if m.projectNameTakenFunc != nil {
		return m.projectNameTakenFunc(ctx, name, excludeID)
	}
	return false, nil
}

func (m *mockListingRepository) Find(ctx context.Context, origin model.ListingOrigin, filter bson.M) ([]*model.Listing, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, origin, filter)
	}
	return []*model.Listing{}, nil
}

func (m *mockListingRepository) Distinct(ctx context.Context, field string) ([]string, error) {
	if m.distinctFunc != nil {
		return m.distinctFunc(ctx, field)
	}
	return []string{}, nil
}

func (m *mockListingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	m.transactions++
	return fn(nil)
}

func newTestService(repo *mockListingRepository) *listingService {
	log := logger.New(logger.Config{Level: "info", Format: logger.JSON, Service: "test"})
	return &listingService{
		repo:      repo,
		validator: validator.NewListingValidator(log),
		cfg:       &config.Config{Log: log, ReadTimeout: 5 * time.Second},
	}
}

func appError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	return appErr
}

func TestCreate_AdminProjectNameUnique(t *testing.T) {
	existing := map[string]bool{"Skyline Residency": true}
	repo := &mockListingRepository{
		projectNameTakenFunc: func(_ context.Context, name, _ string) (bool, error) {
			return existing[name], nil
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), &model.Listing{ProjectName: "Skyline Residency", BuilderName: "Godrej"})
	appErr := appError(t, err)
	if appErr.StatusCode() != http.StatusConflict {
		t.Errorf("expected 409, got %d", appErr.StatusCode())
	}
	if appErr.Details["duplicate"] != true {
		t.Errorf("expected duplicate flag, got %v", appErr.Details)
	}

	l := &model.Listing{ProjectName: "skyline residency", BuilderName: "godrej properties", Location: "noida ext"}
	if err := svc.Create(context.Background(), l); err != nil {
		t.Fatalf("case-different name must be accepted, got %v", err)
	}
	if l.ID == "" || l.Origin != model.OriginAdmin {
		t.Errorf("unexpected listing %+v", l)
	}
	if l.BuilderName != "Godrej" || l.BuilderNameRaw != "godrej properties" {
		t.Errorf("unexpected builder %q / %q", l.BuilderName, l.BuilderNameRaw)
	}
	if l.BaseLocation != "Noida Extension" {
		t.Errorf("expected Noida Extension, got %q", l.BaseLocation)
	}
	if repo.transactions != 2 {
		t.Errorf("expected both creates to run in a transaction, got %d", repo.transactions)
	}
}

func TestCreate_DuplicateKeyRace(t *testing.T) {
	svc := newTestService(&mockListingRepository{
		createFunc: func(_ context.Context, l *model.Listing) error {
			return fmt.Errorf("%w: %s", listingerrors.ErrDuplicateKey, l.ProjectName)
		},
	})

	err := svc.Create(context.Background(), &model.Listing{ProjectName: "Skyline"})
	if got := appError(t, err).StatusCode(); got != http.StatusConflict {
		t.Errorf("expected 409, got %d", got)
	}
}

func TestCreate_UserProperty(t *testing.T) {
	tests := []struct {
		name    string
		listing model.Listing
		status  int
		message string
	}{
		{
			name:    "missing owner",
			listing: model.Listing{ProjectName: "Flat 4B"},
			status:  http.StatusBadRequest,
			message: "Missing required fields",
		},
		{
			name:    "bad owner phone",
			listing: model.Listing{ProjectName: "Flat 4B", OwnerName: "Jo", OwnerEmail: "jo@x.com", OwnerPhone: "12345"},
			status:  http.StatusBadRequest,
			message: "Invalid phone number format",
		},
		{
			name:    "valid",
			listing: model.Listing{ProjectName: "Flat 4B", OwnerName: "Jo", OwnerEmail: "JO@x.com", OwnerPhone: "+91 98765 43210"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockListingRepository{}
			svc := newTestService(repo)
			l := tt.listing
			l.Origin = model.OriginUser

			err := svc.Create(context.Background(), &l)
			if tt.status == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if l.OwnerEmail != "jo@x.com" || l.OwnerPhone != "9876543210" {
					t.Errorf("expected sanitized owner contact, got %q %q", l.OwnerEmail, l.OwnerPhone)
				}
				if repo.transactions != 0 {
					t.Error("user listings carry no name uniqueness check")
				}
				return
			}
			appErr := appError(t, err)
			if appErr.StatusCode() != tt.status || appErr.Message != tt.message {
				t.Errorf("expected %d %q, got %d %q", tt.status, tt.message, appErr.StatusCode(), appErr.Message)
			}
		})
	}
}

func TestCreate_Photos(t *testing.T) {
	svc := newTestService(&mockListingRepository{})

	l := &model.Listing{ProjectName: "A", Photos: []string{"https://x.com/1.jpg", " ", "", "https://x.com/2.jpg"}}
	if err := svc.Create(context.Background(), l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l.Photos) != 2 {
		t.Errorf("expected empty photos to be dropped, got %v", l.Photos)
	}

	tooMany := &model.Listing{ProjectName: "B", Photos: []string{
		"https://x.com/1.jpg", "https://x.com/2.jpg", "https://x.com/3.jpg", "https://x.com/4.jpg",
	}}
	if got := appError(t, svc.Create(context.Background(), tooMany)).StatusCode(); got != http.StatusBadRequest {
		t.Errorf("expected 400 for four photos, got %d", got)
	}
}

func TestUpdate_RenameOntoExisting(t *testing.T) {
	var updated *model.Listing
	repo := &mockListingRepository{
		findByIDFunc: func(_ context.Context, origin model.ListingOrigin, id string) (*model.Listing, error) {
			return &model.Listing{ID: id, Origin: origin, ProjectName: "Old", BuilderName: "Godrej", BuilderNameRaw: "godrej"}, nil
		},
		projectNameTakenFunc: func(_ context.Context, name, excludeID string) (bool, error) {
			if excludeID != "507f1f77bcf86cd799439011" {
				t.Errorf("expected the listing itself to be excluded, got %q", excludeID)
			}
			return name == "Taken", nil
		},
		updateFunc: func(_ context.Context, l *model.Listing) error {
			updated = l
			return nil
		},
	}
	svc := newTestService(repo)

	taken := "Taken"
	_, err := svc.Update(context.Background(), model.OriginAdmin, "507f1f77bcf86cd799439011", &model.ListingUpdate{ProjectName: &taken})
	if got := appError(t, err).StatusCode(); got != http.StatusConflict {
		t.Errorf("expected 409, got %d", got)
	}
	if updated != nil {
		t.Error("update must not run after a name clash")
	}

	fresh, builder := "Fresh", "homecraft"
	l, err := svc.Update(context.Background(), model.OriginAdmin, "507f1f77bcf86cd799439011", &model.ListingUpdate{ProjectName: &fresh, BuilderName: &builder})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.ProjectName != "Fresh" || l.BuilderName != "ATS Homekraft" {
		t.Errorf("unexpected merge result %+v", l)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(&mockListingRepository{})
	name := "X"
	_, err := svc.Update(context.Background(), model.OriginUser, "507f1f77bcf86cd799439011", &model.ListingUpdate{ProjectName: &name})
	if got := appError(t, err).StatusCode(); got != http.StatusNotFound {
		t.Errorf("expected 404, got %d", got)
	}
}

func TestGetByID_FallsBackToUserListings(t *testing.T) {
	var asked []model.ListingOrigin
	svc := newTestService(&mockListingRepository{
		findByIDFunc: func(_ context.Context, origin model.ListingOrigin, id string) (*model.Listing, error) {
			asked = append(asked, origin)
			if origin == model.OriginUser {
				return &model.Listing{ID: id, Origin: origin}, nil
			}
			return nil, fmt.Errorf("%w: %s", listingerrors.ErrNotFound, id)
		},
	})

	l, err := svc.GetByID(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Origin != model.OriginUser || len(asked) != 2 {
		t.Errorf("expected admin then user lookup, got %v", asked)
	}
}

func TestSearch_IncludeUsersMergesSorted(t *testing.T) {
	svc := newTestService(&mockListingRepository{
		findFunc: func(_ context.Context, origin model.ListingOrigin, _ bson.M) ([]*model.Listing, error) {
			if origin == model.OriginUser {
				return []*model.Listing{{ProjectName: "B"}, {ProjectName: "D"}}, nil
			}
			return []*model.Listing{{ProjectName: "A"}, {ProjectName: "C"}}, nil
		},
	})

	results, err := svc.Search(context.Background(), model.ListingQuery{IncludeUsers: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var names []string
	for _, l := range results {
		names = append(names, l.ProjectName)
	}
	if fmt.Sprint(names) != "[A B C D]" {
		t.Errorf("expected merged order, got %v", names)
	}

	adminOnly, _ := svc.Search(context.Background(), model.ListingQuery{})
	if len(adminOnly) != 2 {
		t.Errorf("expected admin listings only, got %d", len(adminOnly))
	}
}

func TestByLocation_UsesExactBaseLocation(t *testing.T) {
	var got bson.M
	svc := newTestService(&mockListingRepository{
		findFunc: func(_ context.Context, _ model.ListingOrigin, filter bson.M) ([]*model.Listing, error) {
			got = filter
			return nil, nil
		},
	})

	if _, err := svc.ByLocation(context.Background(), "noida extension"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["base_location"] != "Noida Extension" {
		t.Errorf("expected exact Noida Extension filter, got %v", got)
	}

	if _, err := svc.ByLocation(context.Background(), "  "); appError(t, err).StatusCode() != http.StatusBadRequest {
		t.Error("expected 400 for an empty location")
	}
}

func TestLocationsAndBuilders(t *testing.T) {
	var fields []string
	svc := newTestService(&mockListingRepository{
		distinctFunc: func(_ context.Context, field string) ([]string, error) {
			fields = append(fields, field)
			return []string{"a"}, nil
		},
	})

	if _, err := svc.Locations(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Builders(context.Background()); err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(fields) != "[base_location builder_name]" {
		t.Errorf("unexpected distinct fields %v", fields)
	}
}
