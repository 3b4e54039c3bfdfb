package badges

import "fmt"

// AllModes is the number of distinct quiz modes.
const AllModes = 5

var registry = buildRegistry()

func buildRegistry() []Badge {
	b := []Badge{{
		ID: "first_word", Name: "First Steps", Description: "Answer your first question correctly",
		Icon: "🎯", Category: CategoryMastery,
		Rule: func(f Facts) bool { return f.CorrectAnswers >= 1 },
	}}

	mastery := []struct {
		n          int
		name, icon string
	}{
		{10, "Word Collector", "📖"},
		{50, "Vocabulary Builder", "📚"},
		{100, "Word Wizard", "🧙"},
		{250, "Lexicon Legend", "👑"},
		{500, "Vocabulary Virtuoso", "💎"},
	}
	for _, m := range mastery {
		n := m.n
		b = append(b, Badge{
			ID: fmt.Sprintf("word_master_%d", n), Name: m.name, Description: fmt.Sprintf("Master %d words", n),
			Icon: m.icon, Category: CategoryMastery,
			Rule: func(f Facts) bool { return f.MasteredItems >= n },
		})
	}

	streaks := []struct {
		n          int
		name, icon string
	}{
		{5, "On Fire", "🔥"},
		{10, "Hot Streak", "🌟"},
		{20, "Unstoppable", "⚡"},
		{50, "Phenomenal", "💫"},
	}
	for _, s := range streaks {
		n := s.n
		b = append(b, Badge{
			ID: fmt.Sprintf("streak_%d", n), Name: s.name, Description: fmt.Sprintf("Get %d correct answers in a row", n),
			Icon: s.icon, Category: CategoryStreak,
			Rule: func(f Facts) bool { return f.MaxStreak >= n },
		})
	}

	points := []struct {
		n          int
		name, icon string
	}{
		{100, "Century", "💯"},
		{500, "Half Thousand", "🎊"},
		{1000, "Millennium", "🏆"},
		{2500, "Elite Scorer", "🥇"},
		{5000, "Grand Master", "👑"},
	}
	for _, p := range points {
		n := p.n
		b = append(b, Badge{
			ID: fmt.Sprintf("points_%d", n), Name: p.name, Description: fmt.Sprintf("Earn %d points", n),
			Icon: p.icon, Category: CategoryPoints,
			Rule: func(f Facts) bool { return f.TotalPoints >= n },
		})
	}

	questions := []struct {
		n          int
		name, icon string
	}{
		{50, "Curious Mind", "🤔"},
		{100, "Dedicated Learner", "📝"},
		{250, "Quiz Master", "🎓"},
		{500, "Knowledge Seeker", "🔍"},
		{1000, "Eternal Student", "📚"},
	}
	for _, q := range questions {
		n := q.n
		b = append(b, Badge{
			ID: fmt.Sprintf("questions_%d", n), Name: q.name, Description: fmt.Sprintf("Answer %d questions", n),
			Icon: q.icon, Category: CategoryQuestions,
			Rule: func(f Facts) bool { return f.TotalAnswered >= n },
		})
	}

	accuracy := []struct {
		pct, minAnswered int
		name, icon       string
	}{
		{50, 20, "Good Start", "✅"},
		{75, 50, "Sharp Mind", "🎯"},
		{90, 100, "Perfection", "⭐"},
	}
	for _, a := range accuracy {
		pct, minAnswered := a.pct, a.minAnswered
		b = append(b, Badge{
			ID:          fmt.Sprintf("accuracy_%d", pct),
			Name:        a.name,
			Description: fmt.Sprintf("Maintain %d%% accuracy (min %d questions)", pct, minAnswered),
			Icon:        a.icon, Category: CategoryAccuracy,
			Rule: func(f Facts) bool {
				return f.TotalAnswered >= minAnswered && f.CorrectAnswers*100 >= pct*f.TotalAnswered
			},
		})
	}

	return append(b,
		Badge{
			ID: "referral", Name: "Social Butterfly", Description: "Refer a friend",
			Icon: "🦋", Category: CategorySpecial,
			Rule: func(f Facts) bool { return f.Referrals >= 1 },
		},
		Badge{
			ID: "all_modes", Name: "Jack of All Trades", Description: "Try all quiz modes",
			Icon: "🎭", Category: CategorySpecial,
			Rule: func(f Facts) bool { return f.ModesPlayed >= AllModes },
		},
	)
}

// All returns every badge in display order.
func All() []Badge {
	return append([]Badge(nil), registry...)
}

// Lookup returns the badge with id.
func Lookup(id string) (Badge, bool) {
	for _, b := range registry {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// Earned evaluates every rule and returns the ids of all satisfied badges.
// The result is always the full set, never a delta.
func Earned(f Facts) []string {
	ids := []string{}
	for _, b := range registry {
		if b.Rule(f) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// NewlyEarned returns badges in current that are not in previous.
func NewlyEarned(current, previous []string) []Badge {
	known := make(map[string]bool, len(previous))
	for _, id := range previous {
		known[id] = true
	}
	var out []Badge
	for _, id := range current {
		if known[id] {
			continue
		}
		if b, ok := Lookup(id); ok {
			out = append(out, b)
		}
	}
	return out
}
