package records

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StoredRecord is the envelope a record lives in once persisted. Payload
// holds the validated variant document; RecordedAt mirrors its timestamp
// and is nil for variants without one.
type StoredRecord struct {
	ID         uuid.UUID
	CreatedAt  time.Time
	RecordedAt *time.Time
	Payload    json.RawMessage
}

// MarshalJSON flattens the envelope: the payload fields plus the
// server-assigned id and created_at.
func (r *StoredRecord) MarshalJSON() ([]byte, error) {
	fields := map[string]interface{}{}
	if len(r.Payload) > 0 {
		if err := json.Unmarshal(r.Payload, &fields); err != nil {
			return nil, err
		}
	}
	fields["id"] = r.ID.String()
	fields["created_at"] = r.CreatedAt.UTC()
	return json.Marshal(fields)
}

// ListOptions narrows a listing. Limit must already be bounded by the
// caller; Since, when set, keeps only records with recorded_at >= Since.
type ListOptions struct {
	Limit int
	Since *time.Time
}

// Store persists record envelopes per collection. ListRecent returns
// newest first by recorded_at with ties broken by insertion order, and an
// empty non-nil slice when nothing matches.
type Store interface {
	Insert(ctx context.Context, collection string, rec *StoredRecord) error
	ListRecent(ctx context.Context, collection string, opts ListOptions) ([]*StoredRecord, error)
}
