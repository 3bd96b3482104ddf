package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"estatehub/pkg/auth"
	"estatehub/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.JSON, Output: io.Discard, Service: "test"})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	})
}

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	h := Recovery(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"success":false`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestRequestLogging_AssignsRequestID(t *testing.T) {
	var seen string
	h := RequestLogging(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || w.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("request id not propagated: ctx=%q header=%q", seen, w.Header().Get(RequestIDHeader))
	}

	const incoming = "0b5a3c6e-7a65-4c56-9f0e-1d2c3b4a5f60"
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, incoming)
	h.ServeHTTP(httptest.NewRecorder(), r)
	if seen != incoming {
		t.Errorf("incoming request id not reused, got %q", seen)
	}
}

func TestContentTypeValidation(t *testing.T) {
	h := ContentTypeValidation(testLogger())(okHandler())

	tests := []struct {
		name        string
		method      string
		body        string
		contentType string
		want        int
	}{
		{"json post", http.MethodPost, `{}`, "application/json; charset=utf-8", http.StatusCreated},
		{"form post", http.MethodPost, `a=b`, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"get without header", http.MethodGet, "", "", http.StatusCreated},
		{"empty patch", http.MethodPatch, "", "", http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, "/", strings.NewReader(tt.body))
			if tt.body == "" {
				r.ContentLength = 0
			}
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, nil, testLogger())
	defer rl.Stop()

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return base }

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("third request inside the window should be limited")
	}
	if !rl.Allow("5.6.7.8") {
		t.Fatal("other clients are counted separately")
	}
	if !rl.Allow("") {
		t.Fatal("empty key is never limited")
	}

	rl.now = func() time.Time { return base.Add(61 * time.Second) }
	if !rl.Allow("1.2.3.4") {
		t.Fatal("window should have slid")
	}
}

func TestRateLimit_SkipsReads(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, nil, testLogger())
	defer rl.Stop()
	h := RateLimit(rl)(okHandler())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects/search", nil))
		if w.Code != http.StatusCreated {
			t.Fatalf("GET %d limited", i)
		}
	}

	post := func() int {
		r := httptest.NewRequest(http.MethodPost, "/api/inquiry", strings.NewReader(`{}`))
		r.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}
	if post() != http.StatusCreated || post() != http.StatusTooManyRequests {
		t.Fatal("second POST from the same client should be limited")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.168.1.9:4040"
	if got := ClientIP(r); got != "192.168.1.9" {
		t.Errorf("got %q", got)
	}
	r.Header.Set("X-Forwarded-For", " 203.0.113.7 , 10.0.0.1")
	if got := ClientIP(r); got != "203.0.113.7" {
		t.Errorf("got %q", got)
	}
}

func TestIdempotency_ReplaysSuccess(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	calls := 0
	h := Idempotency(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"first"}`))
	}))

	send := func(path string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		r.Header.Set(IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	first := send("/api/inquiry")
	second := send("/api/inquiry")
	if calls != 1 {
		t.Fatalf("handler called %d times", calls)
	}
	if second.Code != http.StatusCreated || second.Body.String() != first.Body.String() {
		t.Errorf("replay mismatch: %d %s", second.Code, second.Body.String())
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Error("replay header missing")
	}

	send("/api/builder-inquiry")
	if calls != 2 {
		t.Error("same key on another path must not replay")
	}
}

func TestInMemoryIdempotencyStore_Expires(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Millisecond)
	defer store.Stop()

	store.Set(context.Background(), "k", &CachedResponse{StatusCode: 201})
	time.Sleep(5 * time.Millisecond)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatal("expired entry returned")
	}
}

func TestRequestTimeout(t *testing.T) {
	h := RequestTimeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestMaxRequestSize(t *testing.T) {
	var readErr error
	h := MaxRequestSize(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	if readErr == nil {
		t.Fatal("expected oversized body to fail")
	}
}

type fakeTokenParser struct {
	parseFunc func(token string) (*auth.Claims, error)
}

func (f *fakeTokenParser) Parse(token string) (*auth.Claims, error) {
	return f.parseFunc(token)
}

func TestRequireAdmin(t *testing.T) {
	parser := &fakeTokenParser{parseFunc: func(token string) (*auth.Claims, error) {
		switch token {
		case "good":
			return &auth.Claims{Email: "ops@example.com", Role: auth.RoleAdmin}, nil
		case "viewer":
			return &auth.Claims{Email: "v@example.com", Role: "viewer"}, nil
		default:
			return nil, auth.ErrInvalidToken
		}
	}}

	var gotEmail string
	guarded := RequireAdmin(parser, testLogger())(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		claims, _ := auth.ClaimsFromContext(r.Context())
		gotEmail = claims.Email
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"Basic abc", http.StatusUnauthorized},
		{"Bearer bad", http.StatusUnauthorized},
		{"Bearer viewer", http.StatusForbidden},
		{"bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		w := httptest.NewRecorder()
		guarded(w, r, nil)
		if w.Code != tt.want {
			t.Errorf("%q: status = %d, want %d", tt.header, w.Code, tt.want)
		}
	}
	if gotEmail != "ops@example.com" {
		t.Errorf("claims not on context, got %q", gotEmail)
	}
}

func TestCORS(t *testing.T) {
	h := CORS(DefaultCORSConfig([]string{"https://estatehub.example"}))(okHandler())

	r := httptest.NewRequest(http.MethodOptions, "/api/inquiry", nil)
	r.Header.Set("Origin", "https://estatehub.example")
	r.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "https://estatehub.example" {
		t.Fatalf("preflight failed: %d %v", w.Code, w.Header())
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin should not be allowed")
	}
}
