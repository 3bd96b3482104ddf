package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	careererrors "estatehub/internal/careers/errors"
	"estatehub/internal/careers/validator"
	"estatehub/pkg/config"
	apperrors "estatehub/pkg/errors"
	"estatehub/pkg/logger"
	"estatehub/pkg/model"
	"estatehub/pkg/notification"

	"go.mongodb.org/mongo-driver/bson"
)

type mockApplicationRepository struct {
	createFunc       func(ctx context.Context, app *model.Application) error
	findByIDFunc     func(ctx context.Context, id string) (*model.Application, error)
	findAllFunc      func(ctx context.Context, limit int, offset int64) ([]*model.Application, error)
	countFunc        func(ctx context.Context) (int64, error)
	updateStatusFunc func(ctx context.Context, id string, status model.ApplicationStatus) error
	deleteFunc       func(ctx context.Context, id string) error
	existsFunc       func(ctx context.Context, filter bson.M) (bool, error)
}

func (m *mockApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, app)
	}
	app.ID = "507f1f77bcf86cd799439011"
	return nil
}

func (m *mockApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %s", careererrors.ErrNotFound, id)
}

func (m *mockApplicationRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Application, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Application{}, nil
}

func (m *mockApplicationRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockApplicationRepository) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockApplicationRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockApplicationRepository) Exists(ctx context.Context, filter bson.M) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, filter)
	}
	return false, nil
}

type recordingNotifier struct {
	data []map[string]string
}

func (n *recordingNotifier) Notify(_ context.Context, form notification.FormType, data map[string]string) {
	if form == notification.FormCareer {
		n.data = append(n.data, data)
	}
}

func newTestService(repo *mockApplicationRepository, notifier notification.Notifier) *applicationService {
	log := logger.New(logger.Config{Level: "info", Format: logger.JSON, Service: "test"})
	return &applicationService{
		repo:      repo,
		validator: validator.NewApplicationValidator(log),
		notifier:  notifier,
		cfg:       &config.Config{Log: log, ReadTimeout: 5 * time.Second},
		now:       time.Now,
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	return appErr.StatusCode()
}

func validRequest() *model.CareerRequest {
	return &model.CareerRequest{
		Name:      "Jo Lee",
		Email:     "jo@x.com",
		Phone:     "9876543210",
		Position:  "Sales Executive",
		Message:   "Keen to join.",
		ResumeURL: "https://files.example.com/jo.pdf",
	}
}

func TestApply_Success(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newTestService(&mockApplicationRepository{}, notifier)

	app, err := svc.Apply(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Status != model.ApplicationPending {
		t.Errorf("expected pending, got %q", app.Status)
	}
	if app.CoverLetter != "Keen to join." {
		t.Errorf("expected message to fill the cover letter, got %q", app.CoverLetter)
	}
	if len(notifier.data) != 1 || notifier.data[0]["position"] != "Sales Executive" {
		t.Errorf("expected career notification, got %v", notifier.data)
	}
	if notifier.data[0]["resume_url"] == "" {
		t.Error("expected resume url in notification")
	}
}

func TestApply_Dedup(t *testing.T) {
	tests := []struct {
		name      string
		hitOn     string
		wantInMsg string
	}{
		{"same position within 30 days", "career_position_repeat", "Sales Executive"},
		{"any position within 24h", "career_recent", "application recently"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockApplicationRepository{
				existsFunc: func(_ context.Context, filter bson.M) (bool, error) {
					_, narrowed := filter["position"]
					if tt.hitOn == "career_position_repeat" {
						return narrowed, nil
					}
					return !narrowed, nil
				},
			}, notification.Nop{})

			_, err := svc.Apply(context.Background(), validRequest())
			if got := statusOf(t, err); got != http.StatusConflict {
				t.Fatalf("expected 409, got %d", got)
			}
			var appErr *apperrors.AppError
			errors.As(err, &appErr)
			if !strings.Contains(appErr.Message, tt.wantInMsg) {
				t.Errorf("expected message to mention %q, got %q", tt.wantInMsg, appErr.Message)
			}
		})
	}
}

func TestApply_Validation(t *testing.T) {
	req := validRequest()
	req.Position = ""
	svc := newTestService(&mockApplicationRepository{}, notification.Nop{})

	_, err := svc.Apply(context.Background(), req)
	if got := statusOf(t, err); got != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", got)
	}
}

func TestUpdateStatus_AnyValidStatus(t *testing.T) {
	svc := newTestService(&mockApplicationRepository{}, notification.Nop{})

	for _, s := range []model.ApplicationStatus{
		model.ApplicationHired, model.ApplicationPending, model.ApplicationRejected, model.ApplicationShortlisted,
	} {
		if err := svc.UpdateStatus(context.Background(), "507f1f77bcf86cd799439011", s); err != nil {
			t.Errorf("%s: unexpected error: %v", s, err)
		}
	}

	if got := statusOf(t, svc.UpdateStatus(context.Background(), "x", "archived")); got != http.StatusBadRequest {
		t.Errorf("unknown status: expected 400, got %d", got)
	}
}

func TestResumeURL(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		status int
	}{
		{"https", "https://files.example.com/cv.pdf", 0},
		{"http", "http://files.example.com/cv.pdf", 0},
		{"missing", "", http.StatusNotFound},
		{"relative path", "/uploads/cv.pdf", http.StatusNotFound},
		{"other scheme", "javascript:alert(1)", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockApplicationRepository{
				findByIDFunc: func(context.Context, string) (*model.Application, error) {
					return &model.Application{ID: "a", ResumeURL: tt.url}, nil
				},
			}, notification.Nop{})

			got, err := svc.ResumeURL(context.Background(), "a")
			if tt.status == 0 {
				if err != nil || got != tt.url {
					t.Errorf("expected %q, got %q (%v)", tt.url, got, err)
				}
				return
			}
			if s := statusOf(t, err); s != tt.status {
				t.Errorf("expected %d, got %d", tt.status, s)
			}
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&mockApplicationRepository{}, notification.Nop{})
	_, err := svc.GetByID(context.Background(), "507f1f77bcf86cd799439011")
	if got := statusOf(t, err); got != http.StatusNotFound {
		t.Errorf("expected 404, got %d", got)
	}
}
