package session

import "github.com/abhisek/wordiz/internal/catalog"

// PlanCategory is the reason an item was picked for practice.
type PlanCategory string

const (
	CategoryDue        PlanCategory = "due"
	CategoryStruggling PlanCategory = "struggling"
	CategoryFill       PlanCategory = "fill"
)

// PlanSlot is one selected item.
type PlanSlot struct {
	Item     catalog.Item
	Category PlanCategory
}

// Plan is the shuffled practice set for a quiz.
type Plan struct {
	Slots []PlanSlot
}

// Items returns the planned items in order.
func (p *Plan) Items() []catalog.Item {
	items := make([]catalog.Item, len(p.Slots))
	for i, s := range p.Slots {
		items[i] = s.Item
	}
	return items
}

// Count returns how many slots have category c.
func (p *Plan) Count(c PlanCategory) int {
	n := 0
	for _, s := range p.Slots {
		if s.Category == c {
			n++
		}
	}
	return n
}

// Share of the practice set reserved for due and struggling items.
const (
	DueShare        = 0.5
	StrugglingShare = 0.3
)

// DefaultQuizSize is the number of questions in a quiz.
const DefaultQuizSize = 10
