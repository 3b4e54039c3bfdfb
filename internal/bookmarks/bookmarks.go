package bookmarks

import (
	"slices"
	"sort"
	"time"

	"github.com/abhisek/wordiz/internal/catalog"
)

// Bookmark is an item the learner saved for later practice.
type Bookmark struct {
	ID           string      `json:"id"`
	Item         catalog.Ref `json:"wordData"`
	Mode         string      `json:"mode"`
	AddedAt      time.Time   `json:"addedAt"`
	ReviewCount  int         `json:"reviewCount"`
	LastReviewed *time.Time  `json:"lastReviewed"`
	Notes        string      `json:"notes"`
}

// List is the learner's bookmarks in insertion order.
type List []Bookmark

// Clone returns a deep copy of l.
func (l List) Clone() List {
	out := make(List, len(l))
	for i, b := range l {
		if b.LastReviewed != nil {
			t := *b.LastReviewed
			b.LastReviewed = &t
		}
		out[i] = b
	}
	return out
}

// Normalize drops bookmarks without an id and duplicate ids, keeping the
// first occurrence.
func (l List) Normalize() List {
	out := make(List, 0, len(l))
	seen := make(map[string]bool, len(l))
	for _, b := range l {
		if b.ID == "" {
			b.ID = b.Item.Key
		}
		if b.ID == "" || seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, b)
	}
	return out
}

func (l List) index(id string) int {
	return slices.IndexFunc(l, func(b Bookmark) bool { return b.ID == id })
}

// Contains reports whether id is bookmarked.
func (l List) Contains(id string) bool {
	return l.index(id) >= 0
}

// Get returns the bookmark with id.
func (l List) Get(id string) (Bookmark, bool) {
	if i := l.index(id); i >= 0 {
		return l[i], true
	}
	return Bookmark{}, false
}

// Add bookmarks ref. Returns false if it is already bookmarked.
func (l *List) Add(ref catalog.Ref, mode string, now time.Time) bool {
	if ref.Key == "" || l.Contains(ref.Key) {
		return false
	}
	if mode == "" {
		mode = string(catalog.KindVocab)
	}
	*l = append(*l, Bookmark{ID: ref.Key, Item: ref, Mode: mode, AddedAt: now})
	return true
}

// Remove deletes the bookmark with id. Returns false if it was absent.
func (l *List) Remove(id string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	*l = slices.Delete(*l, i, i+1)
	return true
}

// Toggle adds ref if absent, otherwise removes it. Returns whether ref is
// bookmarked afterwards.
func (l *List) Toggle(ref catalog.Ref, mode string, now time.Time) bool {
	if l.Remove(ref.Key) {
		return false
	}
	return l.Add(ref, mode, now)
}

// MarkReviewed counts a practice pass over the bookmark.
func (l List) MarkReviewed(id string, now time.Time) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	t := now
	l[i].ReviewCount++
	l[i].LastReviewed = &t
	return true
}

// SetNotes replaces the bookmark's notes.
func (l List) SetNotes(id, notes string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l[i].Notes = notes
	return true
}

// ForPractice returns up to limit bookmarked items, least reviewed first.
func (l List) ForPractice(limit int) []catalog.Ref {
	sorted := slices.Clone(l)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ReviewCount < sorted[j].ReviewCount
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	refs := make([]catalog.Ref, len(sorted))
	for i, b := range sorted {
		refs[i] = b.Item
	}
	return refs
}

// Merge appends bookmarks from other whose ids are not already present and
// returns how many were added.
func (l *List) Merge(other List) int {
	added := 0
	for _, b := range other.Normalize() {
		if l.Contains(b.ID) {
			continue
		}
		*l = append(*l, b)
		added++
	}
	return added
}
