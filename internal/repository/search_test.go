package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSearchTermName(t *testing.T) {
	f := ParseSearchTerm("  roo ")
	assert.False(t, f.ByLocation)
	assert.Equal(t, "roo", f.Name)
	assert.Empty(t, f.City)
	assert.Empty(t, f.State)
}

func TestParseSearchTermLocation(t *testing.T) {
	f := ParseSearchTerm("Music,  CA")
	assert.True(t, f.ByLocation)
	assert.Equal(t, "Music", f.City)
	assert.Equal(t, "CA", f.State)
}

func TestParseSearchTermSplitsOnFirstCommaOnly(t *testing.T) {
	f := ParseSearchTerm("San Francisco, CA, USA")
	assert.True(t, f.ByLocation)
	assert.Equal(t, "San Francisco", f.City)
	// Everything after the first comma belongs to the state portion.
	assert.Equal(t, "CA, USA", f.State)
}

func TestParseSearchTermEmptyHalves(t *testing.T) {
	f := ParseSearchTerm(",")
	assert.True(t, f.ByLocation)
	assert.Empty(t, f.City)
	assert.Empty(t, f.State)
}

func TestCheckAvailabilityEmptyAllowsAnyTime(t *testing.T) {
	assert.NoError(t, CheckAvailability("", "2030-01-02 20:00:00"))
}

func TestCheckAvailabilitySubstringMatch(t *testing.T) {
	avail := "open slots: 2030-01-02 20:00:00 and 2030-02-14 21:00:00"
	assert.NoError(t, CheckAvailability(avail, "2030-01-02 20:00:00"))
	assert.ErrorIs(t, CheckAvailability(avail, "2030-03-01 20:00:00"), ErrConflict)
}
