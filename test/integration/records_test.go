package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/glycolog/glycolog/internal/domain/insights"
	"github.com/glycolog/glycolog/internal/domain/records"
)

func newRecordService() *records.Service {
	return records.NewService(records.NewRecordRepoPG(globalDB.Pool))
}

func TestInsertAndListGlucose(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	truncateRecords(t, ctx)
	svc := newRecordService()

	base := time.Now().UTC().Truncate(time.Second)
	var ids []uuid.UUID
	for i, v := range []float64{100, 140, 120} {
		id, err := svc.Insert(ctx, &records.GlucoseReading{
			Timestamp: base.Add(time.Duration(i-2) * time.Hour),
			ValueMgdl: v,
		})
		if err != nil {
			t.Fatalf("insert reading %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	items, err := svc.ListRecent(ctx, records.KindGlucoseReading, 10, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	// Newest timestamp last inserted (i=2, base)
	if items[0].ID != ids[2] {
		t.Error("expected newest reading first")
	}
	for i := 1; i < len(items); i++ {
		if items[i].RecordedAt.After(*items[i-1].RecordedAt) {
			t.Errorf("items out of order at %d", i)
		}
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(items[0].Payload, &payload); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if payload["value_mgdl"] != 120.0 {
		t.Errorf("payload value_mgdl = %v, want 120", payload["value_mgdl"])
	}
}

func TestListRecent_TieBreak(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	truncateRecords(t, ctx)
	svc := newRecordService()

	ts := time.Now().UTC().Truncate(time.Second)
	first, err := svc.Insert(ctx, &records.GlucoseReading{Timestamp: ts, ValueMgdl: 100})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	second, err := svc.Insert(ctx, &records.GlucoseReading{Timestamp: ts, ValueMgdl: 140})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	items, err := svc.ListRecent(ctx, records.KindGlucoseReading, 10, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != second || items[1].ID != first {
		t.Error("equal timestamps should list the later insertion first")
	}
}

func TestListRecent_SinceFilter(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	truncateRecords(t, ctx)
	svc := newRecordService()

	now := time.Now().UTC()
	if _, err := svc.Insert(ctx, &records.GlucoseReading{Timestamp: now.AddDate(0, 0, -10), ValueMgdl: 100}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := svc.Insert(ctx, &records.GlucoseReading{Timestamp: now.Add(-time.Hour), ValueMgdl: 140}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	since := now.AddDate(0, 0, -1)
	items, err := svc.ListRecent(ctx, records.KindGlucoseReading, 10, &since)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item inside window, got %d", len(items))
	}
}

func TestReminders_InsertionOrder(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	truncateRecords(t, ctx)
	svc := newRecordService()

	for _, label := range []string{"first", "second", "third"} {
		if _, err := svc.Insert(ctx, &records.Reminder{Label: label, TimeLocal: "08:00", Type: "glucose"}); err != nil {
			t.Fatalf("insert reminder %s: %v", label, err)
		}
	}

	items, err := svc.ListRecent(ctx, records.KindReminder, 10, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 reminders, got %d", len(items))
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(items[0].Payload, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload["label"] != "third" {
		t.Errorf("expected most recent insertion first, got %v", payload["label"])
	}
	if items[0].RecordedAt != nil {
		t.Error("reminders should have no recorded_at")
	}
}

func TestCollectionsIsolated(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	truncateRecords(t, ctx)
	svc := newRecordService()

	now := time.Now().UTC()
	if _, err := svc.Insert(ctx, &records.GlucoseReading{Timestamp: now, ValueMgdl: 120}); err != nil {
		t.Fatalf("insert glucose: %v", err)
	}
	if _, err := svc.Insert(ctx, &records.Meal{Timestamp: now, Name: "Oats"}); err != nil {
		t.Fatalf("insert meal: %v", err)
	}

	meals, err := svc.ListRecent(ctx, records.KindMeal, 10, nil)
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) != 1 {
		t.Fatalf("expected 1 meal, got %d", len(meals))
	}
	glucose, err := svc.ListRecent(ctx, records.KindGlucoseReading, 10, nil)
	if err != nil {
		t.Fatalf("list glucose: %v", err)
	}
	if len(glucose) != 1 {
		t.Fatalf("expected 1 reading, got %d", len(glucose))
	}
}

func TestSummaryOverRealStore(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	truncateRecords(t, ctx)
	svc := newRecordService()

	now := time.Now().UTC()
	for i, v := range []float64{90, 160, 200} {
		if _, err := svc.Insert(ctx, &records.GlucoseReading{
			Timestamp: now.Add(-time.Duration(i+1) * time.Hour),
			ValueMgdl: v,
		}); err != nil {
			t.Fatalf("insert reading: %v", err)
		}
	}

	insightSvc := insights.NewService(svc, insights.DefaultDays)
	s, err := insightSvc.Summarize(ctx, 14)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if s.CountReadings != 3 {
		t.Fatalf("count_readings = %d, want 3", s.CountReadings)
	}
	if *s.AvgMgdl != 150.0 {
		t.Errorf("avg_mgdl = %g, want 150.0", *s.AvgMgdl)
	}
	if *s.MinMgdl != 90 || *s.MaxMgdl != 200 {
		t.Errorf("min/max = %g/%g, want 90/200", *s.MinMgdl, *s.MaxMgdl)
	}
	if *s.TimeInRangePct != 66.7 {
		t.Errorf("time_in_range_pct = %g, want 66.7", *s.TimeInRangePct)
	}
	if len(s.RecentReadings) != 3 {
		t.Errorf("recent_readings = %d, want 3", len(s.RecentReadings))
	}
}
