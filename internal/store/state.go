package store

import (
	"time"

	"github.com/abhisek/wordiz/internal/bookmarks"
	"github.com/abhisek/wordiz/internal/goals"
	"github.com/abhisek/wordiz/internal/history"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/spacedrep"
)

// CurrentVersion is the schema version written by this package.
const CurrentVersion = 2

// StorageKey is the backend key holding the state document.
const StorageKey = "VOCABPRO_STATE_V1"

// Settings are the learner's preferences. They are persisted only; the
// core does not act on them.
type Settings struct {
	SoundEnabled             bool   `json:"soundEnabled"`
	SpeechEnabled            bool   `json:"speechEnabled"`
	DarkMode                 bool   `json:"darkMode"`
	DailyGoalPreset          string `json:"dailyGoalPreset"`
	ShowWordOfDay            bool   `json:"showWordOfDay"`
	ShowDailyGoals           bool   `json:"showDailyGoals"`
	AutoPlayPronunciation    bool   `json:"autoPlayPronunciation"`
	HapticFeedback           bool   `json:"hapticFeedback"`
	NotificationsEnabled     bool   `json:"notificationsEnabled"`
	KeyboardShortcutsEnabled bool   `json:"keyboardShortcutsEnabled"`
	FontSize                 string `json:"fontSize"`
}

// DefaultSettings returns the settings of a new learner.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:             true,
		SpeechEnabled:            true,
		DarkMode:                 true,
		DailyGoalPreset:          string(goals.DefaultPreset),
		ShowWordOfDay:            true,
		ShowDailyGoals:           true,
		AutoPlayPronunciation:    false,
		HapticFeedback:           true,
		NotificationsEnabled:     false,
		KeyboardShortcutsEnabled: true,
		FontSize:                 "medium",
	}
}

// AppState is the learner's whole persisted state. It is the unit of
// load, save, export, import and reset.
type AppState struct {
	Version       int                               `json:"version"`
	CreatedAt     time.Time                         `json:"createdAt"`
	UpdatedAt     time.Time                         `json:"updatedAt"`
	Settings      Settings                          `json:"settings"`
	ReviewRecords map[string]spacedrep.ReviewRecord `json:"reviewRecords"`
	ProgressStats progress.Stats                    `json:"progressStats"`
	DailyGoals    goals.State                       `json:"dailyGoals"`
	Bookmarks     bookmarks.List                    `json:"bookmarks"`
	StreakShields goals.Shields                     `json:"streakShields"`
	QuizHistory   history.List                      `json:"quizHistory"`
}

// DefaultState returns a fully populated state for a new learner.
func DefaultState(now time.Time) AppState {
	return AppState{
		Version:       CurrentVersion,
		CreatedAt:     now,
		UpdatedAt:     now,
		Settings:      DefaultSettings(),
		ReviewRecords: map[string]spacedrep.ReviewRecord{},
		ProgressStats: progress.NewStats(),
		DailyGoals:    goals.NewState(),
		Bookmarks:     bookmarks.List{},
		StreakShields: goals.NewShields(),
		QuizHistory:   history.List{},
	}
}

// Clone returns a deep copy of s.
func (s AppState) Clone() AppState {
	out := s
	out.ReviewRecords = make(map[string]spacedrep.ReviewRecord, len(s.ReviewRecords))
	for id, r := range s.ReviewRecords {
		out.ReviewRecords[id] = r.Clone()
	}
	out.ProgressStats = s.ProgressStats.Clone()
	out.DailyGoals = s.DailyGoals.Clone()
	out.Bookmarks = s.Bookmarks.Clone()
	out.StreakShields = s.StreakShields.Clone()
	out.QuizHistory = s.QuizHistory.Clone()
	return out
}

// normalize repairs derived fields and invariants after decoding.
func (s *AppState) normalize(loc *time.Location) {
	s.Version = CurrentVersion
	s.ReviewRecords = spacedrep.Normalize(s.ReviewRecords)
	s.ProgressStats.Refresh()
	s.DailyGoals.Normalize(loc)
	s.StreakShields.Normalize(loc)
	s.Bookmarks = s.Bookmarks.Normalize()
	if s.QuizHistory == nil {
		s.QuizHistory = history.List{}
	}
	s.QuizHistory.Trim(history.MaxEntries)
	if s.Settings.DailyGoalPreset == "" {
		s.Settings.DailyGoalPreset = string(s.DailyGoals.GoalPreset)
	}
}
