package domain

// EventType is a small closed category label attached to an Event.
type EventType struct {
	ID   int
	Name string
}

// DefaultEventTypeLabel is shown when an event references a type id that is
// missing from the registry. An orphaned reference is a display fallback,
// never an error.
const DefaultEventTypeLabel = "Etkinlik"

// SeedEventTypes is the fixed set written to an empty registry on first read.
func SeedEventTypes() []EventType {
	return []EventType{
		{ID: 1, Name: "Ek İş"},
		{ID: 2, Name: "Still Standing"},
	}
}
