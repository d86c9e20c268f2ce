package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
)

type fakeValidator struct {
	enabled bool
	claims  *domain.Claims
}

func (f fakeValidator) Enabled() bool { return f.enabled }

func (f fakeValidator) ValidateToken(token string) (*domain.Claims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return f.claims, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	validator := fakeValidator{enabled: true, claims: &domain.Claims{Scope: domain.ScopeAnalyst}}

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{name: "open path", path: "/healthcheck", want: http.StatusNoContent},
		{name: "token path", path: "/v1/token", want: http.StatusNoContent},
		{name: "missing header", path: "/v1/datasets/current", want: http.StatusUnauthorized},
		{name: "not bearer", path: "/v1/datasets/current", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "invalid token", path: "/v1/datasets/current", header: "Bearer bad", want: http.StatusUnauthorized},
		{name: "valid token", path: "/v1/datasets/current", header: "Bearer good", want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(validator)(okHandler()).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/analysis/report", nil)
	rec := httptest.NewRecorder()

	AuthMiddleware(fakeValidator{})(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name      string
		validator fakeValidator
		header    string
		want      int
	}{
		{name: "admin", validator: fakeValidator{enabled: true, claims: &domain.Claims{Scope: domain.ScopeAdmin}}, header: "Bearer good", want: http.StatusNoContent},
		{name: "analyst", validator: fakeValidator{enabled: true, claims: &domain.Claims{Scope: domain.ScopeAnalyst}}, header: "Bearer good", want: http.StatusForbidden},
		{name: "auth disabled", validator: fakeValidator{}, want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/cron/report_retention/run", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler := AuthMiddleware(tt.validator)(AdminOnly(tt.validator)(okHandler()))
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"https://app.example"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/analysis/report", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/analysis/report", nil)
	req.Header.Set("Origin", "https://other.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("boom") })
	rec := httptest.NewRecorder()

	LoggingMiddleware()(LogPanicMiddleware()(panicking)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
