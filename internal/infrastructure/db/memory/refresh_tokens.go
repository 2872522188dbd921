// Package memory is the in-process refresh token store used in development
// and tests. Tokens do not survive a restart.
package memory

import (
	"context"
	"sync"
)

type RefreshTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{tokens: make(map[string]string)}
}

func (r *RefreshTokenRepository) Load(_ context.Context, deviceID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tokens[deviceID], nil
}

func (r *RefreshTokenRepository) Save(_ context.Context, deviceID, token string) error {
	r.mu.Lock()
	r.tokens[deviceID] = token
	r.mu.Unlock()
	return nil
}

func (r *RefreshTokenRepository) Delete(_ context.Context, deviceID string) error {
	r.mu.Lock()
	delete(r.tokens, deviceID)
	r.mu.Unlock()
	return nil
}
