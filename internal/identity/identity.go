// Package identity keeps a stable per-device user id.
package identity

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// DeviceIDKey is the settings key holding the device id.
const DeviceIDKey = "wanderlist_device_id"

const (
	suffixLen = 9
	base36    = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// KeyValueStore persists small string settings.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Provider returns the device id, generating and persisting it on first use.
type Provider struct {
	store  KeyValueStore
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex
	id string
}

// NewProvider creates a provider backed by store.
func NewProvider(store KeyValueStore, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{store: store, logger: logger, now: time.Now}
}

// GetOrCreate returns the persisted device id or creates one.
func (p *Provider) GetOrCreate(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.id != "" {
		return p.id, nil
	}

	id, ok, err := p.store.Get(ctx, DeviceIDKey)
	if err != nil {
		return "", fmt.Errorf("reading device id: %w", err)
	}
	if ok && strings.TrimSpace(id) != "" {
		p.id = id
		return id, nil
	}

	id = NewDeviceID(p.now())
	if err := p.store.Set(ctx, DeviceIDKey, id); err != nil {
		return "", fmt.Errorf("saving device id: %w", err)
	}
	p.logger.Info("generated device id", "user_id", id)
	p.id = id
	return id, nil
}

// NewDeviceID formats a device id as user-<unix millis>-<9 base36 chars>.
func NewDeviceID(now time.Time) string {
	var b strings.Builder
	for range suffixLen {
		b.WriteByte(base36[rand.IntN(len(base36))])
	}
	return fmt.Sprintf("user-%d-%s", now.UnixMilli(), b.String())
}
