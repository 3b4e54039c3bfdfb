package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

func TestNewEntry(t *testing.T) {
	e := NewEntry(Quiz{
		Mode: "vocab", Difficulty: "easy",
		QuestionsTotal: 3, QuestionsCorrect: 2, Score: 21,
		TimeSpent: 95 * time.Second, Words: []string{"a", "b", "c"},
	}, now)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, 67, e.Accuracy)
	assert.Equal(t, 95, e.TimeSpent)
	assert.True(t, e.Date.Equal(now))

	empty := NewEntry(Quiz{Mode: "acronym"}, now)
	assert.Equal(t, 0, empty.Accuracy)
	assert.NotEqual(t, e.ID, empty.ID)
}

func TestAdd_NewestFirstAndCapped(t *testing.T) {
	var l List
	for i := range MaxEntries + 5 {
		l.Add(Entry{ID: fmt.Sprint(i)})
	}
	require.Len(t, l, MaxEntries)
	assert.Equal(t, fmt.Sprint(MaxEntries+4), l[0].ID)
	assert.Equal(t, "5", l[MaxEntries-1].ID)

	_, ok := l.Find("4")
	assert.False(t, ok)
	_, ok = l.Find("10")
	assert.True(t, ok)
}

func TestTrim(t *testing.T) {
	l := make(List, 30)
	assert.Equal(t, 10, l.Trim(20))
	assert.Len(t, l, 20)
	assert.Equal(t, 0, l.Trim(20))
	assert.Len(t, l.Recent(5), 5)
}

func TestSummarize(t *testing.T) {
	l := List{
		{Date: now, Mode: "vocab", Difficulty: "easy", QuestionsTotal: 10, QuestionsCorrect: 8, Score: 100},
		{Date: now.AddDate(0, 0, -1), Mode: "vocab", Difficulty: "hard", QuestionsTotal: 10, QuestionsCorrect: 5, Score: 110},
		{Date: now.AddDate(0, 0, -1), Mode: "acronym", QuestionsTotal: 5, QuestionsCorrect: 5, Score: 70},
		{Date: now.AddDate(0, 0, -20), Mode: "oneword", QuestionsTotal: 5, QuestionsCorrect: 0},
	}
	s := l.Summarize(now)

	assert.Equal(t, 4, s.TotalQuizzes)
	assert.Equal(t, 30, s.TotalQuestions)
	assert.Equal(t, 18, s.TotalCorrect)
	assert.Equal(t, 280, s.TotalScore)
	assert.Equal(t, 60, s.AverageAccuracy)
	assert.Equal(t, Tally{Quizzes: 2, Correct: 13, Total: 20}, s.ByMode["vocab"])
	assert.Equal(t, Tally{Quizzes: 1, Correct: 5, Total: 10}, s.ByDifficulty["hard"])
	assert.NotContains(t, s.ByDifficulty, "")

	require.Len(t, s.Last7Days, 7)
	assert.Equal(t, 1, s.Last7Days[6].Quizzes)
	assert.Equal(t, 2, s.Last7Days[5].Quizzes)
	assert.Equal(t, 15, s.Last7Days[5].Questions)
	assert.Equal(t, 0, s.Last7Days[0].Quizzes)
}

func TestSummarize_Empty(t *testing.T) {
	s := List(nil).Summarize(now)
	assert.Equal(t, 0, s.AverageAccuracy)
	assert.Empty(t, s.ByMode)
}
