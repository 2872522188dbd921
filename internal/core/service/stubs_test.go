package service

import (
	"context"
	"sync"

	"github.com/elffinance/microfin-gateway/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs shared by the service tests
// ---------------------------------------------------------------------------

type stubAuthClient struct {
	loginFn      func(ctx context.Context, phone, password string) (ports.AuthResult, error)
	refreshFn    func(ctx context.Context, token string) (ports.AuthResult, error)
	loginCalls   int
	refreshCalls int
}

func (c *stubAuthClient) Login(ctx context.Context, phone, password string) (ports.AuthResult, error) {
	c.loginCalls++
	if c.loginFn == nil {
		return ports.AuthResult{}, nil
	}
	return c.loginFn(ctx, phone, password)
}

func (c *stubAuthClient) Refresh(ctx context.Context, token string) (ports.AuthResult, error) {
	c.refreshCalls++
	if c.refreshFn == nil {
		return ports.AuthResult{}, nil
	}
	return c.refreshFn(ctx, token)
}

type stubTokens struct {
	tokens  map[string]string
	loadErr error
	saveErr error
	deleted []string
}

func newStubTokens() *stubTokens {
	return &stubTokens{tokens: make(map[string]string)}
}

func (s *stubTokens) Load(_ context.Context, deviceID string) (string, error) {
	if s.loadErr != nil {
		return "", s.loadErr
	}
	return s.tokens[deviceID], nil
}

func (s *stubTokens) Save(_ context.Context, deviceID, token string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.tokens[deviceID] = token
	return nil
}

func (s *stubTokens) Delete(_ context.Context, deviceID string) error {
	delete(s.tokens, deviceID)
	s.deleted = append(s.deleted, deviceID)
	return nil
}

type stubResourceClient struct {
	mu    sync.Mutex
	doFn  func(ctx context.Context, req ports.ResourceRequest) (*ports.ResourceResponse, error)
	calls []ports.ResourceRequest
}

func (c *stubResourceClient) Do(ctx context.Context, req ports.ResourceRequest) (*ports.ResourceResponse, error) {
	c.mu.Lock()
	c.calls = append(c.calls, req)
	c.mu.Unlock()
	return c.doFn(ctx, req)
}
