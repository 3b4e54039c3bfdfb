package goals

import "time"

// DayLayout is the format of day keys in the goal history.
const DayLayout = "2006-01-02"

// legacyDayLayout accepts older histories that stored unpadded keys.
const legacyDayLayout = "2006-1-2"

// DayKey returns the history key for t's local calendar day.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDayKey parses a history key in either the current or the legacy
// unpadded layout. The result is midnight in loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, bool) {
	for _, layout := range []string{DayLayout, legacyDayLayout} {
		if t, err := time.ParseInLocation(layout, key, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b.
func daysBetween(a, b time.Time) int {
	a, b = startOfDay(a), startOfDay(b.In(a.Location()))
	// Round to absorb DST shifts.
	return int((b.Sub(a).Hours() + 12) / 24)
}
