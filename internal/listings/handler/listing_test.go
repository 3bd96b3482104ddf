package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"estatehub/pkg/auth"
	apperrors "estatehub/pkg/errors"
	httputil "estatehub/pkg/http"
	"estatehub/pkg/logger"
	"estatehub/pkg/model"
)

type mockListingService struct {
	createFunc     func(ctx context.Context, l *model.Listing) error
	getAllFunc     func(ctx context.Context, origin model.ListingOrigin, limit int, offset int64) ([]*model.Listing, int64, error)
	getByIDFunc    func(ctx context.Context, id string) (*model.Listing, error)
	updateFunc     func(ctx context.Context, origin model.ListingOrigin, id string, updates *model.ListingUpdate) (*model.Listing, error)
	deleteFunc     func(ctx context.Context, origin model.ListingOrigin, id string) error
	searchFunc     func(ctx context.Context, q model.ListingQuery) ([]*model.Listing, error)
	locationsFunc  func(ctx context.Context) ([]string, error)
	buildersFunc   func(ctx context.Context) ([]string, error)
	byLocationFunc func(ctx context.Context, location string) ([]*model.Listing, error)
	byBuilderFunc  func(ctx context.Context, builder string) ([]*model.Listing, error)
}

func (m *mockListingService) Create(ctx context.Context, l *model.Listing) error {
	return m.createFunc(ctx, l)
}

func (m *mockListingService) GetAll(ctx context.Context, origin model.ListingOrigin, limit int, offset int64) ([]*model.Listing, int64, error) {
	return m.getAllFunc(ctx, origin, limit, offset)
}

func (m *mockListingService) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockListingService) Update(ctx context.Context, origin model.ListingOrigin, id string, updates *model.ListingUpdate) (*model.Listing, error) {
	return m.updateFunc(ctx, origin, id, updates)
}

func (m *mockListingService) Delete(ctx context.Context, origin model.ListingOrigin, id string) error {
	return m.deleteFunc(ctx, origin, id)
}

func (m *mockListingService) Search(ctx context.Context, q model.ListingQuery) ([]*model.Listing, error) {
	return m.searchFunc(ctx, q)
}

func (m *mockListingService) Locations(ctx context.Context) ([]string, error) {
	return m.locationsFunc(ctx)
}

func (m *mockListingService) Builders(ctx context.Context) ([]string, error) {
	return m.buildersFunc(ctx)
}

func (m *mockListingService) ByLocation(ctx context.Context, location string) ([]*model.Listing, error) {
	return m.byLocationFunc(ctx, location)
}

func (m *mockListingService) ByBuilder(ctx context.Context, builder string) ([]*model.Listing, error) {
	return m.byBuilderFunc(ctx, builder)
}

func newTestRouter(t *testing.T, svc *mockListingService) (*httprouter.Router, string) {
	t.Helper()
	log := logger.New(logger.Config{Level: "info", Format: logger.JSON, Service: "test"})
	tokens, err := auth.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	token, _, err := tokens.Issue("1", "admin@x.com", auth.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	router := httprouter.New()
	NewListingHandler(svc, tokens, log).RegisterRoutes(router)
	return router, token
}

func TestCreate_AdminAndUser(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		auth    bool
		origin  model.ListingOrigin
		message string
	}{
		{"admin", "/api/admin/properties", true, model.OriginAdmin, msgPropertyAdded},
		{"user", "/api/user-properties", false, model.OriginUser, msgPropertySubmitted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got model.ListingOrigin
			router, token := newTestRouter(t, &mockListingService{
				createFunc: func(_ context.Context, l *model.Listing) error {
					got = l.Origin
					l.ID = "p1"
					return nil
				},
			})

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(`{"project_name":"Skyline","origin":"admin"}`))
			if tt.auth {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusCreated {
				t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
			}
			if got != tt.origin {
				t.Errorf("expected origin %q, got %q", tt.origin, got)
			}
			var resp httputil.SubmittedResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Message != tt.message || resp.ID != "p1" {
				t.Errorf("unexpected response %+v", resp)
			}
		})
	}
}

func TestCreate_DuplicateFlag(t *testing.T) {
	router, token := newTestRouter(t, &mockListingService{
		createFunc: func(context.Context, *model.Listing) error {
			return apperrors.Duplicate("A property with this project name already exists")
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/properties", strings.NewReader(`{"project_name":"Skyline"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var resp httputil.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Details["duplicate"] != true {
		t.Errorf("expected duplicate flag, got %v", resp.Details)
	}
}

func TestSearch_ParsesQuery(t *testing.T) {
	var got model.ListingQuery
	router, _ := newTestRouter(t, &mockListingService{
		searchFunc: func(_ context.Context, q model.ListingQuery) ([]*model.Listing, error) {
			got = q
			return []*model.Listing{}, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/projects/search?location=Noida&bhk=3&builder=ats&status=Ready&projectType=Villa&searchTerm=sky&includeUsers=true", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := model.ListingQuery{
		Location: "Noida", BHK: "3", Builder: "ats", Status: "Ready",
		ProjectType: "Villa", SearchTerm: "sky", IncludeUsers: true,
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestPathLookups(t *testing.T) {
	var location, builder, id string
	router, _ := newTestRouter(t, &mockListingService{
		byLocationFunc: func(_ context.Context, l string) ([]*model.Listing, error) { location = l; return nil, nil },
		byBuilderFunc:  func(_ context.Context, b string) ([]*model.Listing, error) { builder = b; return nil, nil },
		getByIDFunc:    func(_ context.Context, i string) (*model.Listing, error) { id = i; return &model.Listing{ID: i}, nil },
	})

	for _, path := range []string{
		"/api/properties/location/Noida%20Extension",
		"/api/properties/builder/Godrej",
		"/api/properties/id/abc",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}

	if location != "Noida Extension" || builder != "Godrej" || id != "abc" {
		t.Errorf("unexpected path values %q %q %q", location, builder, id)
	}
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	router, _ := newTestRouter(t, &mockListingService{})

	for _, p := range []struct{ method, path string }{
		{http.MethodPost, "/api/admin/properties"},
		{http.MethodGet, "/api/admin/properties"},
		{http.MethodPut, "/api/admin/properties/a"},
		{http.MethodDelete, "/api/admin/properties/a"},
		{http.MethodPut, "/api/admin/user-properties/a"},
		{http.MethodDelete, "/api/admin/user-properties/a"},
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(p.method, p.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", p.method, p.path, rec.Code)
		}
	}
}
