package progress

// Base points per difficulty or mode key.
var basePoints = map[string]int{
	"easy":    10,
	"medium":  15,
	"hard":    20,
	"acronym": 12,
	"oneword": 12,
}

// DefaultBasePoints applies to keys not in the table.
const DefaultBasePoints = 10

// MaxStreakBonus caps the streak bonus added to a correct answer.
const MaxStreakBonus = 10

// Points returns the award for a correct answer. key is the quiz
// difficulty, or the mode for modes without one; streak is the streak
// before this answer.
func Points(key string, streak int) int {
	base, ok := basePoints[key]
	if !ok {
		base = DefaultBasePoints
	}
	return base + min(max(streak, 0), MaxStreakBonus)
}
