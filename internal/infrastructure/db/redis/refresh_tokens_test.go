package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/elffinance/microfin-gateway/internal/infrastructure/tokenseal"
)

// fakeRedis implements the handful of commands the repository issues.
type fakeRedis struct {
	redis.Cmdable
	data map[string]string
	ttl  map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string), ttl: make(map[string]time.Duration)}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if v, ok := f.data[key]; ok {
		cmd.SetVal(v)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)
	f.data[key] = value.(string)
	f.ttl[key] = expiration
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "del")
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func TestRefreshTokenRepository_RoundTrip(t *testing.T) {
	fake := newFakeRedis()
	box, err := tokenseal.NewSecretBox("seal-key")
	if err != nil {
		t.Fatalf("sealer: %v", err)
	}
	repo := NewRefreshTokenRepository(fake, box, time.Hour)
	ctx := context.Background()

	if tok, err := repo.Load(ctx, "dev-1"); err != nil || tok != "" {
		t.Fatalf("expected empty load, got %q %v", tok, err)
	}

	if err := repo.Save(ctx, "dev-1", "rt-1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	stored := fake.data["refreshToken:dev-1"]
	if stored == "" || stored == "rt-1" {
		t.Fatalf("expected sealed value under refreshToken:dev-1, got %q", stored)
	}
	if fake.ttl["refreshToken:dev-1"] != time.Hour {
		t.Fatalf("expected ttl applied")
	}

	if err := repo.Save(ctx, "dev-1", "rt-2"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if tok, err := repo.Load(ctx, "dev-1"); err != nil || tok != "rt-2" {
		t.Fatalf("expected latest token, got %q %v", tok, err)
	}
	if len(fake.data) != 1 {
		t.Fatalf("expected one token per device, got %d keys", len(fake.data))
	}

	if err := repo.Delete(ctx, "dev-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if tok, _ := repo.Load(ctx, "dev-1"); tok != "" {
		t.Fatalf("expected token gone")
	}
}

func TestRefreshTokenRepository_UnreadableValue(t *testing.T) {
	fake := newFakeRedis()
	fake.data["refreshToken:dev-1"] = "tampered"
	box, _ := tokenseal.NewSecretBox("seal-key")

	if _, err := NewRefreshTokenRepository(fake, box, 0).Load(context.Background(), "dev-1"); err == nil {
		t.Fatalf("expected error for tampered value")
	}
}
