package records

import (
	"fmt"
	"time"
)

// Record is a validated health record variant. Validate may fill in
// documented defaults, so implementations use pointer receivers.
type Record interface {
	Variant() Kind
	RecordedAt() *time.Time
	Validate() error
}

var validGlucoseModes = map[string]bool{
	"manual": true, "cgm": true,
}

var validMealContexts = map[string]bool{
	"pre": true, "post": true, "none": true,
}

var validMedicationTypes = map[string]bool{
	"oral": true, "insulin": true, "mixed": true,
}

var validActivityKinds = map[string]bool{
	"walk": true, "run": true, "cycle": true, "gym": true, "other": true,
}

var validReminderTypes = map[string]bool{
	"glucose": true, "meal": true, "medication": true, "activity": true,
}

// GlucoseReading is a single blood glucose measurement in mg/dL.
type GlucoseReading struct {
	Timestamp   time.Time `json:"timestamp"`
	ValueMgdl   float64   `json:"value_mgdl"`
	Mode        string    `json:"mode"`
	Note        *string   `json:"note,omitempty"`
	MealContext *string   `json:"meal_context,omitempty"`
}

func (g *GlucoseReading) Variant() Kind          { return KindGlucoseReading }
func (g *GlucoseReading) RecordedAt() *time.Time { return &g.Timestamp }

func (g *GlucoseReading) Validate() error {
	if g.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	if g.ValueMgdl < 20 || g.ValueMgdl > 600 {
		return fmt.Errorf("value_mgdl must be between 20 and 600, got %g", g.ValueMgdl)
	}
	if g.Mode == "" {
		g.Mode = "manual"
	}
	if !validGlucoseModes[g.Mode] {
		return fmt.Errorf("invalid mode: %s", g.Mode)
	}
	if g.MealContext != nil && !validMealContexts[*g.MealContext] {
		return fmt.Errorf("invalid meal_context: %s", *g.MealContext)
	}
	return nil
}

// Meal is a logged meal with optional macronutrient estimates.
type Meal struct {
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name"`
	CarbsG    *float64  `json:"carbs_g,omitempty"`
	ProteinG  *float64  `json:"protein_g,omitempty"`
	FatG      *float64  `json:"fat_g,omitempty"`
	Calories  *float64  `json:"calories,omitempty"`
	Note      *string   `json:"note,omitempty"`
}

func (m *Meal) Variant() Kind          { return KindMeal }
func (m *Meal) RecordedAt() *time.Time { return &m.Timestamp }

func (m *Meal) Validate() error {
	if m.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	for field, v := range map[string]*float64{
		"carbs_g": m.CarbsG, "protein_g": m.ProteinG, "fat_g": m.FatG, "calories": m.Calories,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must not be negative, got %g", field, *v)
		}
	}
	return nil
}

// MedicationLog records a single dose of an oral medication or insulin.
type MedicationLog struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Brand     *string   `json:"brand,omitempty"`
	DoseUnits *float64  `json:"dose_units,omitempty"`
	Frequency *string   `json:"frequency,omitempty"`
	Note      *string   `json:"note,omitempty"`
}

func (m *MedicationLog) Variant() Kind          { return KindMedicationLog }
func (m *MedicationLog) RecordedAt() *time.Time { return &m.Timestamp }

func (m *MedicationLog) Validate() error {
	if m.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	if m.Type == "" {
		return fmt.Errorf("type is required")
	}
	if !validMedicationTypes[m.Type] {
		return fmt.Errorf("invalid type: %s", m.Type)
	}
	if m.DoseUnits != nil && *m.DoseUnits < 0 {
		return fmt.Errorf("dose_units must not be negative, got %g", *m.DoseUnits)
	}
	return nil
}

// Activity is a physical activity session.
type Activity struct {
	Timestamp   time.Time `json:"timestamp"`
	Kind        string    `json:"kind"`
	DurationMin float64   `json:"duration_min"`
	Calories    *float64  `json:"calories,omitempty"`
	Note        *string   `json:"note,omitempty"`
}

func (a *Activity) Variant() Kind          { return KindActivity }
func (a *Activity) RecordedAt() *time.Time { return &a.Timestamp }

func (a *Activity) Validate() error {
	if a.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	if a.Kind == "" {
		a.Kind = "walk"
	}
	if !validActivityKinds[a.Kind] {
		return fmt.Errorf("invalid kind: %s", a.Kind)
	}
	if a.DurationMin < 0 {
		return fmt.Errorf("duration_min must not be negative, got %g", a.DurationMin)
	}
	if a.Calories != nil && *a.Calories < 0 {
		return fmt.Errorf("calories must not be negative, got %g", *a.Calories)
	}
	return nil
}

// Reminder is a recurring local-time prompt. It carries no timestamp, so
// listings fall back to insertion order.
type Reminder struct {
	Label     string `json:"label"`
	TimeLocal string `json:"time_local"`
	Type      string `json:"type"`
	Enabled   *bool  `json:"enabled"`
}

func (r *Reminder) Variant() Kind          { return KindReminder }
func (r *Reminder) RecordedAt() *time.Time { return nil }

func (r *Reminder) Validate() error {
	if r.Label == "" {
		return fmt.Errorf("label is required")
	}
	if _, err := time.Parse("15:04", r.TimeLocal); err != nil {
		return fmt.Errorf("time_local must be HH:MM 24h format, got %q", r.TimeLocal)
	}
	if r.Type == "" {
		return fmt.Errorf("type is required")
	}
	if !validReminderTypes[r.Type] {
		return fmt.Errorf("invalid type: %s", r.Type)
	}
	if r.Enabled == nil {
		enabled := true
		r.Enabled = &enabled
	}
	return nil
}
