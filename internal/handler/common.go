package handler // handler defines http handlers

import (
	"strconv" // strconv converts path params to numeric types
	"time"    // time is used for parsing and formatting timestamps

	"github.com/labstack/echo/v4" // echo defines request context types
)

// dbTimeLayout is the timestamp form used by the database and carried on
// every show-time string exchanged with the repositories.
const dbTimeLayout = "2006-01-02 15:04:05"

// Display presets for the all-shows listing. "full" spells out the weekday
// and month; "medium" abbreviates both and drops the "at".
const (
	fullTimeLayout   = "Monday January, 2, 2006 at 3:04PM"
	mediumTimeLayout = "Mon Jan, 02, 2006 3:04PM"
)

// formatShowTime renders a stored timestamp using the named preset. Unknown
// presets fall back to medium, and a value that fails to parse is returned
// verbatim rather than dropped.
func formatShowTime(value, preset string) string {
	t, err := time.Parse(dbTimeLayout, value)
	if err != nil {
		return value
	}
	if preset == "full" {
		return t.Format(fullTimeLayout)
	}
	return t.Format(mediumTimeLayout)
}

// parseStartTime normalizes a submitted show time into the DB layout. Both
// RFC3339 and the DB layout itself are accepted. RFC3339 values carry an
// offset, and stored strings are always UTC, so the instant is converted
// before formatting.
func parseStartTime(raw string) (string, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format(dbTimeLayout), nil
	}
	t, err := time.Parse(dbTimeLayout, raw)
	if err != nil {
		return "", err
	}
	return t.Format(dbTimeLayout), nil
}

// isPast reports whether a stored start time lies strictly before the
// current moment. The clock is read at the call, not snapshotted by the
// caller, so each show in a listing is classified against its own "now".
// Unparseable values classify as not past.
func isPast(startTime string) bool {
	t, err := time.Parse(dbTimeLayout, startTime)
	if err != nil {
		return false
	}
	return t.Before(time.Now())
}

// pathID parses the :id path parameter of the current request.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
