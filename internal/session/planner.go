package session

import (
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/abhisek/wordiz/internal/catalog"
	"github.com/abhisek/wordiz/internal/spacedrep"
)

// RecordSource looks up review records by item key.
type RecordSource interface {
	Record(itemID string) *spacedrep.ReviewRecord
}

// Planner builds a practice set from a pool of items.
type Planner interface {
	BuildPlan(items []catalog.Item, count int, now time.Time) *Plan
}

// DefaultPlanner blends due, struggling and random items.
type DefaultPlanner struct {
	Records RecordSource
	Rand    *rand.Rand
}

// NewPlanner creates a DefaultPlanner.
func NewPlanner(records RecordSource, rng *rand.Rand) *DefaultPlanner {
	return &DefaultPlanner{Records: records, Rand: rng}
}

// BuildPlan selects up to count distinct items:
//  1. the ceil(count*DueShare) items with the highest due score,
//  2. the ceil(count*StrugglingShare) struggling items with the largest deficit,
//  3. random remaining items to fill the set.
//
// The result is shuffled. It is shorter than count only when items has
// fewer distinct keys than count.
func (p *DefaultPlanner) BuildPlan(items []catalog.Item, count int, now time.Time) *Plan {
	plan := &Plan{}
	if count <= 0 || len(items) == 0 {
		return plan
	}

	type candidate struct {
		item   catalog.Item
		record *spacedrep.ReviewRecord
		score  float64
	}
	var candidates []candidate
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.Key()] {
			continue
		}
		seen[item.Key()] = true
		rec := p.Records.Record(item.Key())
		candidates = append(candidates, candidate{item: item, record: rec, score: spacedrep.DueScore(rec, now)})
	}

	selected := make(map[string]bool, count)
	add := func(c candidate, cat PlanCategory) {
		if len(plan.Slots) >= count || selected[c.item.Key()] {
			return
		}
		selected[c.item.Key()] = true
		plan.Slots = append(plan.Slots, PlanSlot{Item: c.item, Category: cat})
	}

	// Due: highest score first, catalog order on ties.
	due := append([]candidate(nil), candidates...)
	sort.SliceStable(due, func(i, j int) bool { return due[i].score > due[j].score })
	for _, c := range due[:min(share(count, DueShare), len(due))] {
		add(c, CategoryDue)
	}

	// Struggling: largest incorrect-correct deficit first.
	var struggling []candidate
	for _, c := range candidates {
		if c.record != nil && c.record.IsStruggling() {
			struggling = append(struggling, c)
		}
	}
	sort.SliceStable(struggling, func(i, j int) bool {
		return struggling[i].record.Deficit() > struggling[j].record.Deficit()
	})
	for _, c := range struggling[:min(share(count, StrugglingShare), len(struggling))] {
		add(c, CategoryStruggling)
	}

	// Fill: uniform random draw without replacement.
	var rest []candidate
	for _, c := range candidates {
		if !selected[c.item.Key()] {
			rest = append(rest, c)
		}
	}
	p.Rand.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	for _, c := range rest {
		add(c, CategoryFill)
	}

	p.Rand.Shuffle(len(plan.Slots), func(i, j int) {
		plan.Slots[i], plan.Slots[j] = plan.Slots[j], plan.Slots[i]
	})
	return plan
}

func share(count int, fraction float64) int {
	return int(math.Ceil(float64(count) * fraction))
}

// SelectPracticeSet is a convenience wrapper around DefaultPlanner.
func SelectPracticeSet(items []catalog.Item, count int, records RecordSource, now time.Time, rng *rand.Rand) []catalog.Item {
	return NewPlanner(records, rng).BuildPlan(items, count, now).Items()
}
