package repository

import "strings"

// SearchFilter describes a parsed search term. Exactly one of the two modes
// is active: a location search (ByLocation true, City and State set) or a
// name search (ByLocation false, Name set).
type SearchFilter struct {
	Name       string
	City       string
	State      string
	ByLocation bool
}

// ParseSearchTerm turns a raw search string into a SearchFilter. A term
// containing a comma is treated as a "city, state" pair: the split happens on
// the first comma only, both halves are trimmed, and any further commas stay
// inside the state portion. Location matches are exact and case sensitive.
// A term without a comma becomes a case-insensitive substring match against
// the name field.
func ParseSearchTerm(raw string) SearchFilter {
	if strings.Contains(raw, ",") {
		parts := strings.SplitN(raw, ",", 2)
		return SearchFilter{
			City:       strings.TrimSpace(parts[0]),
			State:      strings.TrimSpace(parts[1]),
			ByLocation: true,
		}
	}
	return SearchFilter{Name: strings.TrimSpace(raw)}
}
