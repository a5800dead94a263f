// Package prayer holds the canonical daily prayer schedule and the lateness
// rule applied to prayer records.
package prayer

import (
	"time"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
)

// LatenessTolerance is how long after the canonical time a prayer may still
// be logged as on time.
const LatenessTolerance = 15 * time.Minute

// Canonical schedule, hour/minute in local (company) time.
var schedule = map[string]struct{ hour, minute int }{
	model.PrayerSubuh:   {4, 45},
	model.PrayerDzuhur:  {12, 0},
	model.PrayerAshar:   {15, 15},
	model.PrayerMaghrib: {18, 0},
	model.PrayerIsya:    {19, 15},
}

// TimeFor returns the canonical time of the named prayer on the day of ref,
// in ref's location. The second return is false for unknown prayer names.
func TimeFor(name string, ref time.Time) (time.Time, bool) {
	at, ok := schedule[name]
	if !ok {
		return time.Time{}, false
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), at.hour, at.minute, 0, 0, ref.Location()), true
}

// IsLate reports whether loggedAt falls more than the tolerance after the
// canonical time of the named prayer. Unknown prayers are never late.
func IsLate(name string, loggedAt time.Time) bool {
	canonical, ok := TimeFor(name, loggedAt)
	if !ok {
		return false
	}
	return loggedAt.Sub(canonical) > LatenessTolerance
}
