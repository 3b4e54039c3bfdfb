package goals

import (
	"slices"
	"time"
)

// Shield economy limits.
const (
	StartingShields = 1
	PassiveCap      = 3
	MaxShields      = 5
	EarnPeriod      = 7 * 24 * time.Hour
)

// Shields tracks streak-protection shields.
type Shields struct {
	Count        int        `json:"count"`
	LastUsedAt   *time.Time `json:"lastUsedAt"`
	LastEarnedAt *time.Time `json:"lastEarnedAt"`
	TotalUsed    int        `json:"totalUsed"`
	// ProtectedDays are the missed days a shield has already covered.
	ProtectedDays []string `json:"protectedDays"`
}

// NewShields returns the starting shield state.
func NewShields() Shields {
	return Shields{Count: StartingShields, ProtectedDays: []string{}}
}

// Clone returns a deep copy of s.
func (s Shields) Clone() Shields {
	out := s
	if s.LastUsedAt != nil {
		t := *s.LastUsedAt
		out.LastUsedAt = &t
	}
	if s.LastEarnedAt != nil {
		t := *s.LastEarnedAt
		out.LastEarnedAt = &t
	}
	out.ProtectedDays = append([]string{}, s.ProtectedDays...)
	return out
}

// Normalize clamps the count into range and drops malformed protected days.
func (s *Shields) Normalize(loc *time.Location) {
	s.Count = min(max(s.Count, 0), MaxShields)
	s.TotalUsed = max(s.TotalUsed, 0)
	days := []string{}
	for _, d := range s.ProtectedDays {
		if t, ok := ParseDayKey(d, loc); ok && !slices.Contains(days, DayKey(t)) {
			days = append(days, DayKey(t))
		}
	}
	s.ProtectedDays = days
}

// Accrue grants one shield per full EarnPeriod elapsed since the last
// award, without exceeding PassiveCap. The first call only starts the
// clock. Returns the number of shields gained.
func (s *Shields) Accrue(now time.Time) int {
	if s.LastEarnedAt == nil {
		t := now
		s.LastEarnedAt = &t
		return 0
	}
	periods := int(now.Sub(*s.LastEarnedAt) / EarnPeriod)
	if periods <= 0 {
		return 0
	}
	next := s.LastEarnedAt.Add(time.Duration(periods) * EarnPeriod)
	s.LastEarnedAt = &next

	if s.Count >= PassiveCap {
		return 0
	}
	gained := min(periods, PassiveCap-s.Count)
	s.Count += gained
	return gained
}

// Use spends one shield. Returns false if none are left.
func (s *Shields) Use(now time.Time) bool {
	if s.Count <= 0 {
		return false
	}
	s.Count--
	s.TotalUsed++
	t := now
	s.LastUsedAt = &t
	return true
}

// Add grants n reward shields, up to MaxShields, and returns the new count.
func (s *Shields) Add(n int) int {
	s.Count = min(s.Count+max(n, 0), MaxShields)
	return s.Count
}

// StreakStatus is the state of a streak with respect to shield protection.
type StreakStatus string

const (
	StreakNone        StreakStatus = "none"        // no prior activity
	StreakSafe        StreakStatus = "safe"        // active today or yesterday
	StreakProtected   StreakStatus = "protected"   // the missed day is already covered
	StreakProtectable StreakStatus = "protectable" // one missed day and a shield available
	StreakBroken      StreakStatus = "broken"
)

// Check classifies the streak given the last active day. Only a gap of
// exactly one missed day can be protected; longer gaps are broken.
func (s Shields) Check(lastActive *time.Time, today time.Time) StreakStatus {
	if lastActive == nil {
		return StreakNone
	}
	switch gap := daysBetween(*lastActive, today); {
	case gap <= 1:
		return StreakSafe
	case gap == 2:
		missed := DayKey(startOfDay(today).AddDate(0, 0, -1))
		if slices.Contains(s.ProtectedDays, missed) {
			return StreakProtected
		}
		if s.Count > 0 {
			return StreakProtectable
		}
		return StreakBroken
	default:
		return StreakBroken
	}
}

// Protect spends a shield to cover the single missed day between
// lastActive and today. It does nothing unless Check reports
// StreakProtectable, so a gap is never charged twice.
func (s *Shields) Protect(lastActive time.Time, today time.Time) bool {
	if s.Check(&lastActive, today) != StreakProtectable {
		return false
	}
	if !s.Use(today) {
		return false
	}
	s.ProtectedDays = append(s.ProtectedDays, DayKey(startOfDay(today).AddDate(0, 0, -1)))
	return true
}

// Prune forgets protected days older than keepDays before now.
func (s *Shields) Prune(now time.Time, keepDays int) {
	cutoff := startOfDay(now).AddDate(0, 0, -keepDays)
	s.ProtectedDays = slices.DeleteFunc(s.ProtectedDays, func(d string) bool {
		t, ok := ParseDayKey(d, now.Location())
		return !ok || t.Before(cutoff)
	})
}
