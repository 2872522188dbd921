package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
	"github.com/elffinance/microfin-gateway/internal/core/ports"
	"github.com/elffinance/microfin-gateway/internal/core/session"
)

// ResourceService calls upstream resources on behalf of a device, refreshing
// the access token at most once per call.
type ResourceService struct {
	client   ports.ResourceClient
	sessions *SessionService
	now      func() time.Time
	log      zerolog.Logger

	onRefresh func(trigger string, ok bool)
}

// Refresh triggers reported to the observer.
const (
	RefreshExpired      = "expired"
	RefreshUnauthorized = "unauthorized"
)

func NewResourceService(client ports.ResourceClient, sessions *SessionService, log zerolog.Logger) *ResourceService {
	return &ResourceService{client: client, sessions: sessions, now: time.Now, log: log}
}

// ObserveRefresh registers fn to be told about every refresh Do performs.
func (s *ResourceService) ObserveRefresh(fn func(trigger string, ok bool)) {
	s.onRefresh = fn
}

// Do forwards req with the device's bearer token. An expired token is
// refreshed up front; a 401 answer triggers one refresh and one retry.
func (s *ResourceService) Do(ctx context.Context, dev *session.Device, req ports.ResourceRequest) (*ports.ResourceResponse, error) {
	cur := dev.Store.Snapshot()
	if !cur.IsAuthenticated {
		return nil, domain.ErrUnauthenticated
	}

	refreshed := false
	if accessTokenExpired(cur.AccessToken, s.now()) {
		if err := s.refresh(ctx, dev, RefreshExpired); err != nil {
			return nil, err
		}
		refreshed = true
	}

	resp, err := s.send(ctx, dev, req)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusUnauthorized || refreshed {
		return resp, nil
	}

	s.log.Debug().Str("device", dev.ID).Str("path", req.Path).Msg("upstream rejected access token, refreshing")
	if err := s.refresh(ctx, dev, RefreshUnauthorized); err != nil {
		return nil, err
	}
	return s.send(ctx, dev, req)
}

// FetchData GETs path and returns the data member of the upstream envelope.
func (s *ResourceService) FetchData(ctx context.Context, dev *session.Device, path string) (json.RawMessage, error) {
	resp, err := s.Do(ctx, dev, ports.ResourceRequest{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, err
	}
	data, err := envelopeData(resp)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	return data, nil
}

func (s *ResourceService) refresh(ctx context.Context, dev *session.Device, trigger string) error {
	err := s.sessions.RefreshSession(ctx, dev)
	if s.onRefresh != nil {
		s.onRefresh(trigger, err == nil)
	}
	return err
}

func (s *ResourceService) send(ctx context.Context, dev *session.Device, req ports.ResourceRequest) (*ports.ResourceResponse, error) {
	req.AccessToken = dev.Store.Snapshot().AccessToken
	return s.client.Do(ctx, req)
}

// envelope is the upstream's {success, data} / {message} body.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func envelopeData(resp *ports.ResourceResponse) (json.RawMessage, error) {
	var env envelope
	decodeErr := json.Unmarshal(resp.Body, &env)

	if resp.Status < 200 || resp.Status >= 300 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.Status)
		}
		return nil, &domain.UpstreamError{Status: resp.Status, Message: msg}
	}
	if decodeErr != nil {
		return nil, &domain.UpstreamError{Status: resp.Status, Message: "malformed upstream response"}
	}
	return env.Data, nil
}

// UpstreamMessage extracts the upstream's message from a non-2xx response,
// falling back to fallback.
func UpstreamMessage(resp *ports.ResourceResponse, fallback string) string {
	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return fallback
}
