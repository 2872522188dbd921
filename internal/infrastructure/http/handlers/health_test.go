package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		deps       map[string]Pinger
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no dependencies",
			deps:       nil,
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name: "redis up",
			deps: map[string]Pinger{
				"redis": PingFunc(func(context.Context) error { return nil }),
			},
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name: "mongo down",
			deps: map[string]Pinger{
				"mongodb": PingFunc(func(context.Context) error { return errors.New("no reachable servers") }),
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
			rec := httptest.NewRecorder()

			if err := NewReadinessHandler(tt.deps).Readiness(e.NewContext(req, rec)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}

			var body readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tt.wantBody {
				t.Fatalf("expected status %q, got %q", tt.wantBody, body.Status)
			}
		})
	}
}
