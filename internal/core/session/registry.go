package session

import (
	"sync"
	"time"

	"github.com/elffinance/microfin-gateway/internal/core/domain"
)

// Device pairs a device's Store with its one-shot bootstrap state.
type Device struct {
	ID    string
	Store *Store

	bootMu   sync.Mutex
	state    domain.BootState
	lastSeen time.Time
}

// Bootstrap runs boot the first time it is called and records its terminal
// state. Concurrent callers block until that single run finishes; later
// callers get the recorded state without running boot again. ran is true
// only for the call that executed boot.
func (d *Device) Bootstrap(boot func() domain.BootState) (state domain.BootState, ran bool) {
	d.bootMu.Lock()
	defer d.bootMu.Unlock()

	if d.state.Terminal() {
		return d.state, false
	}
	d.state = boot()
	return d.state, true
}

// State returns the bootstrap state without running it.
func (d *Device) State() domain.BootState {
	d.bootMu.Lock()
	defer d.bootMu.Unlock()

	return d.state
}

// Registry owns one Device per device ID.
type Registry struct {
	mu      sync.Mutex
	devices map[string]*Device
	now     func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		devices: make(map[string]*Device),
		now:     time.Now,
	}
}

// Device returns the device for id, creating an empty one on first use.
func (r *Registry) Device(id string) *Device {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[id]
	if !ok {
		d = &Device{ID: id, Store: NewStore(), state: domain.BootBootstrapping}
		r.devices[id] = d
	}
	d.lastSeen = r.now()
	return d
}

// Len reports how many devices are tracked.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.devices)
}

// Sweep drops devices not seen for longer than maxIdle and returns how many
// were removed. Their persisted refresh tokens are untouched, so a returning
// device bootstraps again from durable storage.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	removed := 0
	for id, d := range r.devices {
		if d.lastSeen.Before(cutoff) {
			delete(r.devices, id)
			removed++
		}
	}
	return removed
}
