package records

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Insert validates a record, wraps it in a stored envelope and persists
// it under the variant's collection. The server-assigned id is returned.
func (s *Service) Insert(ctx context.Context, rec Record) (uuid.UUID, error) {
	if err := rec.Validate(); err != nil {
		return uuid.Nil, err
	}
	collection, ok := CollectionFor(rec.Variant())
	if !ok {
		return uuid.Nil, fmt.Errorf("unknown record variant: %s", rec.Variant())
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode payload: %w", err)
	}
	stored := &StoredRecord{RecordedAt: rec.RecordedAt(), Payload: payload}
	if err := s.store.Insert(ctx, collection, stored); err != nil {
		return uuid.Nil, err
	}
	return stored.ID, nil
}

// ListRecent returns up to limit records of a variant, newest first by
// recorded timestamp with insertion-order tie-break. The limit is bounded
// to [1, 500] with 50 substituted for non-positive values.
func (s *Service) ListRecent(ctx context.Context, kind Kind, limit int, since *time.Time) ([]*StoredRecord, error) {
	collection, ok := CollectionFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown record variant: %s", kind)
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.store.ListRecent(ctx, collection, ListOptions{Limit: limit, Since: since})
}

// RecentGlucoseReadings serves analytics callers that need more readings
// than the list endpoints expose. The limit is passed through unbounded,
// guarded only against non-positive values.
func (s *Service) RecentGlucoseReadings(ctx context.Context, limit int, since *time.Time) ([]*StoredRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	collection, _ := CollectionFor(KindGlucoseReading)
	return s.store.ListRecent(ctx, collection, ListOptions{Limit: limit, Since: since})
}

// Collections reports every registered collection identifier.
func (s *Service) Collections() []string {
	return Collections()
}
