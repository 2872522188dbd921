package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const defaultSweepInterval = 5 * time.Minute

// Janitor periodically evicts idle devices from a Registry.
type Janitor struct {
	registry *Registry
	maxIdle  time.Duration
	interval time.Duration
	log      zerolog.Logger
}

// NewJanitor creates a Janitor. If interval <= 0, defaultSweepInterval is used.
func NewJanitor(registry *Registry, maxIdle, interval time.Duration, log zerolog.Logger) *Janitor {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Janitor{registry: registry, maxIdle: maxIdle, interval: interval, log: log}
}

// Start launches the sweep loop. It stops when ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) {
	go j.run(ctx)
}

func (j *Janitor) run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := j.registry.Sweep(j.maxIdle); n > 0 {
				j.log.Debug().
					Int("evicted", n).
					Int("remaining", j.registry.Len()).
					Msg("idle devices evicted")
			}
		}
	}
}
