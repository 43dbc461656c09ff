package insights

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/glycolog/glycolog/internal/domain/records"
	"github.com/glycolog/glycolog/pkg/listquery"
)

const (
	// DefaultDays is the trailing window used when the caller does not
	// pick one and no configured default overrides it.
	DefaultDays = 14
	// MaxReadings caps how many readings a single summary considers.
	MaxReadings = 1000
	// RecentCount is how many of the newest readings the digest echoes.
	RecentCount = 10
	// The in-range band in mg/dL, both bounds inclusive.
	RangeLowMgdl  = 70
	RangeHighMgdl = 180
)

// Summary is the glucose digest for a trailing window. The stat fields
// are nil when the window holds no readings.
type Summary struct {
	Days           int                     `json:"days"`
	CountReadings  int                     `json:"count_readings"`
	AvgMgdl        *float64                `json:"avg_mgdl"`
	MinMgdl        *float64                `json:"min_mgdl"`
	MaxMgdl        *float64                `json:"max_mgdl"`
	TimeInRangePct *float64                `json:"time_in_range_pct"`
	RecentReadings []*records.StoredRecord `json:"recent_readings"`
}

// ReadingSource yields stored glucose documents newest first.
type ReadingSource interface {
	RecentGlucoseReadings(ctx context.Context, limit int, since *time.Time) ([]*records.StoredRecord, error)
}

type Service struct {
	source      ReadingSource
	defaultDays int
}

func NewService(source ReadingSource, defaultDays int) *Service {
	if defaultDays <= 0 {
		defaultDays = DefaultDays
	}
	return &Service{source: source, defaultDays: defaultDays}
}

// Summarize computes the digest over the trailing window. days is
// bounded to [1, 90]; zero or negative means the configured default.
func (s *Service) Summarize(ctx context.Context, days int) (*Summary, error) {
	days = listquery.ClampDays(days, s.defaultDays)
	since := time.Now().UTC().AddDate(0, 0, -days)

	readings, err := s.source.RecentGlucoseReadings(ctx, MaxReadings, &since)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Days:           days,
		CountReadings:  len(readings),
		RecentReadings: recentOf(readings),
	}
	if len(readings) == 0 {
		return summary, nil
	}

	var sum float64
	mn, mx := math.Inf(1), math.Inf(-1)
	inRange := 0
	for _, r := range readings {
		v := readingValue(r)
		sum += v
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
		if v >= RangeLowMgdl && v <= RangeHighMgdl {
			inRange++
		}
	}

	avg := round1(sum / float64(len(readings)))
	tir := round1(float64(inRange) / float64(len(readings)) * 100)
	summary.AvgMgdl = &avg
	summary.MinMgdl = &mn
	summary.MaxMgdl = &mx
	summary.TimeInRangePct = &tir
	return summary, nil
}

// readingValue extracts value_mgdl from a stored payload. A payload that
// does not decode counts as zero rather than failing the whole digest.
func readingValue(r *records.StoredRecord) float64 {
	var doc struct {
		ValueMgdl float64 `json:"value_mgdl"`
	}
	if err := json.Unmarshal(r.Payload, &doc); err != nil {
		return 0
	}
	return doc.ValueMgdl
}

func recentOf(readings []*records.StoredRecord) []*records.StoredRecord {
	if len(readings) > RecentCount {
		readings = readings[:RecentCount]
	}
	out := make([]*records.StoredRecord, len(readings))
	copy(out, readings)
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
