// Package biztime holds the business timezone. Storage and transport use UTC;
// the business timezone only decides where a calendar day starts for
// date-only inputs.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is used when the server config leaves the timezone empty.
const DefaultTimezone = "America/Mexico_City"

// DateLayout is the calendar-date form accepted in query strings.
const DateLayout = "2006-01-02"

var (
	mu          sync.RWMutex
	bizLocation *time.Location
)

// Init sets the business timezone. Calling it again replaces the location.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}
	mu.Lock()
	bizLocation = loc
	mu.Unlock()
	return nil
}

// Location returns the business timezone, falling back to UTC before Init.
func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	if bizLocation == nil {
		return time.UTC
	}
	return bizLocation
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns midnight of t's business day, in UTC.
func StartOfDayUTC(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, Location()).UTC()
}

// ParseTimestamp accepts RFC3339 (with or without fractional seconds) or a
// bare YYYY-MM-DD, which is read as business-timezone midnight. The second
// return value reports whether the input was date-only.
func ParseTimestamp(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), false, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, Location())
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid timestamp %q: expected RFC3339 or YYYY-MM-DD", s)
	}
	return t.UTC(), true, nil
}
