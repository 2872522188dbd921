package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/ports"
)

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "+919999999999", body["phoneNumber"])
		assert.Equal(t, "secret1", body["password"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"data":{"tokens":{"accessToken":"at","refreshToken":"rt"},"user":{"name":"Asha","roleName":"Collector"}}}`)
	}))
	defer srv.Close()

	res, err := New(srv.URL+"/api/", time.Second).Login(context.Background(), "+919999999999", "secret1")
	require.NoError(t, err)
	assert.Equal(t, ports.AuthResult{AccessToken: "at", RefreshToken: "rt", UserName: "Asha", RoleName: "Collector"}, res)
}

func TestClient_LoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"success":false,"message":"Invalid credentials"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Login(context.Background(), "+919999999999", "bad")

	var ue *domain.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusUnauthorized, ue.Status)
	assert.Equal(t, "Invalid credentials", ue.Message)
}

func TestClient_RefreshRejectedWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/refresh", r.URL.Path)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Refresh(context.Background(), "rt")

	var ue *domain.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Empty(t, ue.Message)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	var observed []int
	c := New(addr, time.Second, WithObserver(func(_ string, status int, _ time.Duration) {
		observed = append(observed, status)
	}))

	_, err := c.Login(context.Background(), "+919999999999", "secret1")
	assert.True(t, errors.Is(err, domain.ErrNetwork))
	assert.Equal(t, []int{0}, observed)
}

func TestClient_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))
		assert.Equal(t, "/loans/12", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"jwt expired"}`)
	}))
	defer srv.Close()

	resp, err := New(srv.URL, time.Second).Do(context.Background(), ports.ResourceRequest{
		Method:      http.MethodGet,
		Path:        "/loans/12",
		Query:       url.Values{"page": {"1"}},
		AccessToken: "at",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Equal(t, "application/json", resp.ContentType)
	assert.JSONEq(t, `{"message":"jwt expired"}`, string(resp.Body))
}

func TestClient_DoRejectsOversizedAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":"0123456789abcdef"}`)
	}))
	defer srv.Close()

	req := ports.ResourceRequest{Method: http.MethodGet, Path: "/loans", AccessToken: "at"}

	_, err := New(srv.URL, time.Second, WithMaxBody(16)).Do(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNetwork))

	resp, err := New(srv.URL, time.Second, WithMaxBody(64)).Do(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":"0123456789abcdef"}`, string(resp.Body))
}

func TestClient_CreateTenant(t *testing.T) {
	var got ports.TenantInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tenants", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	in := ports.TenantInput{Name: "Acme", PhoneNumber: "+919999999999", IsActive: true, AdminName: "Ravi"}
	require.NoError(t, New(srv.URL, time.Second).CreateTenant(context.Background(), in))
	assert.Equal(t, in, got)
}
