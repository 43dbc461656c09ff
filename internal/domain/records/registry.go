package records

// Kind identifies one of the closed set of record variants.
type Kind string

const (
	KindGlucoseReading Kind = "GlucoseReading"
	KindMeal           Kind = "Meal"
	KindMedicationLog  Kind = "MedicationLog"
	KindActivity       Kind = "Activity"
	KindReminder       Kind = "Reminder"
)

// collections maps every variant to its collection identifier. The table
// is fixed at compile time; adding a variant means adding a row here.
var collections = map[Kind]string{
	KindGlucoseReading: "glucosereading",
	KindMeal:           "meal",
	KindMedicationLog:  "medicationlog",
	KindActivity:       "activity",
	KindReminder:       "reminder",
}

// collectionOrder fixes the order Collections reports, matching the order
// the variants are declared in.
var collectionOrder = []Kind{
	KindGlucoseReading,
	KindMeal,
	KindMedicationLog,
	KindActivity,
	KindReminder,
}

// CollectionFor returns the collection identifier for a variant. The
// second return is false for a Kind outside the registry.
func CollectionFor(k Kind) (string, bool) {
	name, ok := collections[k]
	return name, ok
}

// Collections returns every registered collection identifier in
// declaration order.
func Collections() []string {
	out := make([]string, 0, len(collectionOrder))
	for _, k := range collectionOrder {
		out = append(out, collections[k])
	}
	return out
}
