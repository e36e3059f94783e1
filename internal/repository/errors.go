// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrConflict signals that a booking cannot proceed because
// the requested time falls outside an artist's stated availability,
// which handlers translate into a distinct "conflict" response rather
// than a generic server error.
package repository

import (
	"errors"
	"strings"
)

// ErrConflict is returned when a proposed show time fails the artist
// availability check. Handlers should translate this into an HTTP 409
// response with an explanatory message.
var ErrConflict = errors.New("conflict")

// CheckAvailability applies the booking rule for an artist's free-text
// availability. An empty availability admits any time; otherwise the start
// time string must occur verbatim within the text, and a miss yields
// ErrConflict.
func CheckAvailability(availability, startTime string) error {
	if availability != "" && !strings.Contains(availability, startTime) {
		return ErrConflict
	}
	return nil
}
