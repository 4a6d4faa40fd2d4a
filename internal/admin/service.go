package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopcore-dev/shopcore/internal/live"
	"github.com/shopcore-dev/shopcore/internal/store"
)

// Broadcaster pushes storefront events to connected clients.
type Broadcaster interface {
	Broadcast(event string, payload any)
}

// Service owns the store-wide order-accepting flag. The flag is kept in
// memory behind a mutex and persisted through the settings store; when it
// flips, connected storefronts hear about it over the live channel.
type Service struct {
	settings store.SettingsStore
	live     Broadcaster

	mu        sync.RWMutex
	accepting bool
}

// NewService loads the persisted flag. A store that has never been written
// defaults to accepting orders.
func NewService(ctx context.Context, settings store.SettingsStore, broadcaster Broadcaster) (*Service, error) {
	accepting, err := settings.OrderAccepting(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		accepting = true
	case err != nil:
		return nil, fmt.Errorf("load order-accepting flag: %w", err)
	}

	return &Service{
		settings:  settings,
		live:      broadcaster,
		accepting: accepting,
	}, nil
}

// Accepting reports whether the store currently accepts new orders.
func (s *Service) Accepting() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accepting
}

// SetAccepting persists the flag and broadcasts the change. The in-memory
// value only flips after the store write succeeds.
func (s *Service) SetAccepting(ctx context.Context, accepting bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.settings.SetOrderAccepting(ctx, accepting); err != nil {
		return fmt.Errorf("persist order-accepting flag: %w", err)
	}
	s.accepting = accepting

	s.live.Broadcast(live.EventOrderStatusUpdate, map[string]bool{"acceptingOrders": accepting})
	slog.Info("Order accepting flag changed", "accepting", accepting)
	return nil
}
