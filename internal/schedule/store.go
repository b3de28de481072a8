// Package schedule is the in-memory source of truth for shifts, swap
// requests and notifications.
package schedule

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-swap-service/internal/domain"
	"github.com/spec-kit/shift-swap-service/internal/events"
)

// Store holds schedule state. All mutations are applied under a single
// write lock; queries return copies.
type Store struct {
	mu            sync.RWMutex
	shifts        []domain.Shift
	swaps         []domain.ShiftSwapRequest
	notifications []domain.Notification

	newID      domain.IDGenerator
	now        func() time.Time
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(gen domain.IDGenerator) Option {
	return func(s *Store) { s.newID = gen }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithDispatcher publishes domain events after each mutation.
func WithDispatcher(d events.Dispatcher) Option {
	return func(s *Store) { s.dispatcher = d }
}

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithShifts preloads shifts, keeping their identifiers.
func WithShifts(shifts []domain.Shift) Option {
	return func(s *Store) { s.shifts = append(s.shifts, shifts...) }
}

// NewStore constructs an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		newID:  domain.NewID,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) publish(ctx context.Context, typ events.EventType, entityID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        s.newID(),
		Type:      typ,
		EntityID:  entityID,
		Timestamp: s.now(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(typ)), zap.Error(err))
	}
}
