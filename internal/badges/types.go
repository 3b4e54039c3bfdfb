package badges

// Category groups badges for display.
type Category string

const (
	CategoryMastery   Category = "mastery"
	CategoryStreak    Category = "streak"
	CategoryPoints    Category = "points"
	CategoryQuestions Category = "questions"
	CategoryAccuracy  Category = "accuracy"
	CategorySpecial   Category = "special"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{CategoryMastery, CategoryStreak, CategoryPoints, CategoryQuestions, CategoryAccuracy, CategorySpecial}
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryMastery:
		return "Mastery"
	case CategoryStreak:
		return "Streak"
	case CategoryPoints:
		return "Points"
	case CategoryQuestions:
		return "Questions"
	case CategoryAccuracy:
		return "Accuracy"
	case CategorySpecial:
		return "Special"
	default:
		return string(c)
	}
}

// Facts is the read-only view of learner progress that badge rules test.
type Facts struct {
	CorrectAnswers int
	TotalAnswered  int
	MaxStreak      int
	TotalPoints    int
	MasteredItems  int
	Referrals      int
	ModesPlayed    int
}

// Accuracy returns the fraction of correct answers, 0 with no answers.
func (f Facts) Accuracy() float64 {
	if f.TotalAnswered == 0 {
		return 0
	}
	return float64(f.CorrectAnswers) / float64(f.TotalAnswered)
}

// Badge is an achievement with a pure eligibility rule.
type Badge struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Category    Category
	Rule        func(Facts) bool
}
