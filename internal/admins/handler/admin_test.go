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
	"estatehub/pkg/config"
	apperrors "estatehub/pkg/errors"
	httputil "estatehub/pkg/http"
	"estatehub/pkg/logger"
	"estatehub/pkg/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type mockAdminService struct {
	loginFunc           func(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	requestResetOTPFunc func(ctx context.Context, req *model.ResetOTPRequest) error
	resetPasswordFunc   func(ctx context.Context, req *model.ResetPasswordRequest) error
	meFunc              func(ctx context.Context, id string) (*model.Admin, error)
}

func (m *mockAdminService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	return m.loginFunc(ctx, req)
}

func (m *mockAdminService) RequestResetOTP(ctx context.Context, req *model.ResetOTPRequest) error {
	return m.requestResetOTPFunc(ctx, req)
}

func (m *mockAdminService) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error {
	return m.resetPasswordFunc(ctx, req)
}

func (m *mockAdminService) Me(ctx context.Context, id string) (*model.Admin, error) {
	return m.meFunc(ctx, id)
}

func (m *mockAdminService) Seed(context.Context, []config.AdminSeed) error {
	return nil
}

func newTestRouter(t *testing.T, svc *mockAdminService) (*httprouter.Router, *auth.TokenManager) {
	t.Helper()
	log := logger.New(logger.Config{Level: "info", Format: logger.JSON, Service: "test"})
	tokens, err := auth.NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	router := httprouter.New()
	NewAdminHandler(svc, tokens, log).RegisterRoutes(router)
	return router, tokens
}

func TestLogin(t *testing.T) {
	router, _ := newTestRouter(t, &mockAdminService{
		loginFunc: func(_ context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
			if req.Password != "secret-pass" {
				return nil, apperrors.Unauthorized("Invalid email or password")
			}
			return &model.LoginResponse{Token: "tok", Admin: &model.Admin{Email: req.Email}}, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"email":"admin@x.com","password":"secret-pass"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success bool                `json:"success"`
		Data    model.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Token != "tok" {
		t.Errorf("expected token in response, got %+v", resp.Data)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"email":"admin@x.com","password":"nope"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLogin_OmitsSecrets(t *testing.T) {
	router, _ := newTestRouter(t, &mockAdminService{
		loginFunc: func(context.Context, *model.LoginRequest) (*model.LoginResponse, error) {
			return &model.LoginResponse{Token: "tok", Admin: &model.Admin{
				Email: "admin@x.com", PasswordHash: "$2a$10$hash", ResetOTPHash: "$2a$10$otp",
			}}, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"email":"admin@x.com","password":"secret-pass"}`)))
	if strings.Contains(rec.Body.String(), "$2a$10$") {
		t.Errorf("hashes leaked in response: %s", rec.Body.String())
	}
}

func TestRequestResetOTP_GenericMessage(t *testing.T) {
	router, _ := newTestRouter(t, &mockAdminService{
		requestResetOTPFunc: func(context.Context, *model.ResetOTPRequest) error { return nil },
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/request-reset-otp",
		strings.NewReader(`{"email":"anyone@x.com"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp httputil.SubmittedResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != msgResetCodeSent {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestResetPassword(t *testing.T) {
	router, _ := newTestRouter(t, &mockAdminService{
		resetPasswordFunc: func(_ context.Context, req *model.ResetPasswordRequest) error {
			if req.OTP != "123456" {
				return apperrors.InvalidInput("Invalid or expired OTP")
			}
			return nil
		},
	})

	tests := []struct {
		body string
		want int
	}{
		{`{"email":"a@x.com","otp":"123456","new_password":"new-password"}`, http.StatusOK},
		{`{"email":"a@x.com","otp":"000000","new_password":"new-password"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/reset-password", strings.NewReader(tt.body)))
		if rec.Code != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.body, tt.want, rec.Code)
		}
	}
}

func TestMe(t *testing.T) {
	var gotID string
	router, tokens := newTestRouter(t, &mockAdminService{
		meFunc: func(_ context.Context, id string) (*model.Admin, error) {
			gotID = id
			return &model.Admin{ID: id, Email: "admin@x.com"}, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token, _, err := tokens.Issue("507f1f77bcf86cd799439011", "admin@x.com", auth.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "507f1f77bcf86cd799439011" {
		t.Errorf("expected bearer subject, got %q", gotID)
	}
}
