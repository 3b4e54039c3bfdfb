package history

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MaxEntries is the number of quizzes kept.
const MaxEntries = 50

// Entry summarizes one finished quiz.
type Entry struct {
	ID               string    `json:"id"`
	Date             time.Time `json:"date"`
	Mode             string    `json:"mode"`
	Difficulty       string    `json:"difficulty,omitempty"`
	QuestionsTotal   int       `json:"questionsTotal"`
	QuestionsCorrect int       `json:"questionsCorrect"`
	Score            int       `json:"score"`
	Accuracy         int       `json:"accuracy"`
	TimeSpent        int       `json:"timeSpent"` // seconds
	Words            []string  `json:"words"`
}

// Quiz is the input for a new history entry.
type Quiz struct {
	Mode             string
	Difficulty       string
	QuestionsTotal   int
	QuestionsCorrect int
	Score            int
	TimeSpent        time.Duration
	Words            []string
}

// NewEntry builds an entry for a finished quiz at now.
func NewEntry(q Quiz, now time.Time) Entry {
	words := append([]string{}, q.Words...)
	return Entry{
		ID:               uuid.New().String(),
		Date:             now,
		Mode:             q.Mode,
		Difficulty:       q.Difficulty,
		QuestionsTotal:   q.QuestionsTotal,
		QuestionsCorrect: q.QuestionsCorrect,
		Score:            q.Score,
		Accuracy:         percent(q.QuestionsCorrect, q.QuestionsTotal),
		TimeSpent:        int(q.TimeSpent / time.Second),
		Words:            words,
	}
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// List is the quiz history, newest first.
type List []Entry

// Clone returns a deep copy of l.
func (l List) Clone() List {
	out := make(List, len(l))
	for i, e := range l {
		e.Words = append([]string{}, e.Words...)
		out[i] = e
	}
	return out
}

// Add prepends e and drops entries beyond MaxEntries.
func (l *List) Add(e Entry) {
	*l = append(List{e}, *l...)
	l.Trim(MaxEntries)
}

// Trim keeps only the n newest entries and returns how many were dropped.
func (l *List) Trim(n int) int {
	if len(*l) <= n {
		return 0
	}
	dropped := len(*l) - n
	*l = (*l)[:n]
	return dropped
}

// Recent returns up to n newest entries.
func (l List) Recent(n int) List {
	if len(l) > n {
		return l[:n]
	}
	return l
}

// Find returns the entry with id.
func (l List) Find(id string) (Entry, bool) {
	for _, e := range l {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Tally aggregates a group of quizzes.
type Tally struct {
	Quizzes int `json:"quizzes"`
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// DayTally aggregates the quizzes of one day.
type DayTally struct {
	Date      time.Time
	Quizzes   int
	Questions int
	Correct   int
	Score     int
}

// Summary aggregates the whole history.
type Summary struct {
	TotalQuizzes    int
	TotalQuestions  int
	TotalCorrect    int
	TotalScore      int
	AverageAccuracy int
	ByMode          map[string]Tally
	ByDifficulty    map[string]Tally
	Last7Days       []DayTally
}

// Summarize computes totals, per-mode and per-difficulty tallies, and the
// last seven days ending at now's day, oldest first.
func (l List) Summarize(now time.Time) Summary {
	s := Summary{
		TotalQuizzes: len(l),
		ByMode:       make(map[string]Tally),
		ByDifficulty: make(map[string]Tally),
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	s.Last7Days = make([]DayTally, 7)
	for i := range s.Last7Days {
		s.Last7Days[i].Date = today.AddDate(0, 0, i-6)
	}

	for _, e := range l {
		s.TotalQuestions += e.QuestionsTotal
		s.TotalCorrect += e.QuestionsCorrect
		s.TotalScore += e.Score

		s.ByMode[e.Mode] = addTally(s.ByMode[e.Mode], e)
		if e.Difficulty != "" {
			s.ByDifficulty[e.Difficulty] = addTally(s.ByDifficulty[e.Difficulty], e)
		}

		ey, em, ed := e.Date.In(now.Location()).Date()
		day := time.Date(ey, em, ed, 0, 0, 0, 0, now.Location())
		for i := range s.Last7Days {
			if s.Last7Days[i].Date.Equal(day) {
				dt := &s.Last7Days[i]
				dt.Quizzes++
				dt.Questions += e.QuestionsTotal
				dt.Correct += e.QuestionsCorrect
				dt.Score += e.Score
			}
		}
	}
	s.AverageAccuracy = percent(s.TotalCorrect, s.TotalQuestions)
	return s
}

func addTally(t Tally, e Entry) Tally {
	t.Quizzes++
	t.Correct += e.QuestionsCorrect
	t.Total += e.QuestionsTotal
	return t
}
