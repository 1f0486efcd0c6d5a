package domain

type SortOrder string

const (
	SortAscending  SortOrder = "ascending"
	SortDescending SortOrder = "descending"
)

// ParseSortOrder validates a wire value for the sort order enum.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortAscending, SortDescending:
		return SortOrder(s), nil
	}
	return "", ErrInvalidSortOrder
}

// Settings is the singleton site display configuration.
type Settings struct {
	HomepageSortOrder SortOrder
	HideOldEvents     bool
}

// DefaultSettings is used when the settings document is absent.
func DefaultSettings() Settings {
	return Settings{
		HomepageSortOrder: SortDescending,
		HideOldEvents:     false,
	}
}

// Normalize replaces invalid or empty fields with their defaults,
// field by field. Stored documents may predate the enum and must never
// surface an undefined sort order to the view.
func (s Settings) Normalize() Settings {
	if _, err := ParseSortOrder(string(s.HomepageSortOrder)); err != nil {
		s.HomepageSortOrder = DefaultSettings().HomepageSortOrder
	}
	return s
}
