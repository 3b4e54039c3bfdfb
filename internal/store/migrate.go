package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"strconv"
	"time"
)

// LegacyKeys are the per-feature keys written before the unified state
// document. They are migrated on first load and removed afterwards.
var LegacyKeys = []string{
	"vocabProSettings",
	"vocabProSRS",
	"vocabProBookmarks",
	"vocabProDailyGoals",
	"vocabProQuizHistory",
	"vocabProOnboarding",
	"vocabProStreakProtection",
	"vocabProUsers",
	"vocabProCurrentUser",
	"vocabProWOTD",
	"vocabProSoundEnabled",
	"pendingReferral",
}

// decode turns a parsed document of any known version into a valid state.
// Unknown keys are ignored. A section that fails to decode falls back to
// its default and the rest of the document is kept.
func decode(doc map[string]any, now time.Time, loc *time.Location, logger *slog.Logger) AppState {
	if v, _ := doc["version"].(float64); v < CurrentVersion {
		doc = upgradeV1(doc)
	}

	def := DefaultState(now)
	merged := deepMerge(toMap(def), doc)

	st := def
	st.CreatedAt = section(merged, "createdAt", def.CreatedAt, logger)
	st.UpdatedAt = section(merged, "updatedAt", def.UpdatedAt, logger)
	st.Settings = section(merged, "settings", def.Settings, logger)
	st.ReviewRecords = entries(merged, "reviewRecords", def.ReviewRecords, logger)
	st.ProgressStats = section(merged, "progressStats", def.ProgressStats, logger)
	st.DailyGoals = section(merged, "dailyGoals", def.DailyGoals, logger)
	st.Bookmarks = section(merged, "bookmarks", def.Bookmarks, logger)
	st.StreakShields = section(merged, "streakShields", def.StreakShields, logger)
	st.QuizHistory = section(merged, "quizHistory", def.QuizHistory, logger)
	st.normalize(loc)
	return st
}

// section decodes merged[key] into a fresh T, or returns fallback.
func section[T any](merged map[string]any, key string, fallback T, logger *slog.Logger) T {
	v, ok := merged[key]
	if !ok || v == nil {
		return fallback
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		logger.Warn("discarding unreadable state section", "section", key, "error", err)
		return fallback
	}
	return out
}

// entries decodes a keyed section value by value so one bad entry does
// not discard its siblings.
func entries[T any](merged map[string]any, key string, fallback map[string]T, logger *slog.Logger) map[string]T {
	m, ok := merged[key].(map[string]any)
	if !ok {
		return fallback
	}
	out := make(map[string]T, len(m))
	for id, v := range m {
		data, err := json.Marshal(v)
		if err != nil {
			continue
		}
		var e T
		if err := json.Unmarshal(data, &e); err != nil {
			logger.Warn("discarding unreadable state entry", "section", key, "id", id, "error", err)
			continue
		}
		out[id] = e
	}
	return out
}

// deepMerge overlays src onto dst. Nested objects merge key by key; any
// other value in src replaces the one in dst. A null in src never
// replaces a non-null value.
func deepMerge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	maps.Copy(out, dst)
	for k, sv := range src {
		switch v := sv.(type) {
		case nil:
			if _, ok := out[k]; !ok {
				out[k] = nil
			}
		case map[string]any:
			if dv, ok := out[k].(map[string]any); ok {
				out[k] = deepMerge(dv, v)
			} else {
				out[k] = v
			}
		default:
			out[k] = v
		}
	}
	return out
}

// toMap converts a value to its generic JSON object form.
func toMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return map[string]any{}
	}
	return m
}

// upgradeV1 rewrites a version 1 document into the version 2 layout. Only
// renamed or reshaped fields are touched; the merge with defaults fills
// the rest.
func upgradeV1(doc map[string]any) map[string]any {
	out := maps.Clone(doc)
	if out == nil {
		out = map[string]any{}
	}

	rename(out, "srs", "reviewRecords")
	if records, ok := out["reviewRecords"].(map[string]any); ok {
		for _, r := range records {
			rec, ok := r.(map[string]any)
			if !ok {
				continue
			}
			rename(rec, "wordId", "itemId")
			rename(rec, "nextReviewDate", "nextReviewAt")
			rename(rec, "lastReviewDate", "lastReviewedAt")
			delete(rec, "quality")
		}
	}

	rename(out, "stats", "progressStats")
	if stats, ok := out["progressStats"].(map[string]any); ok {
		rename(stats, "lastPlayedDate", "lastPlayedAt")
	}

	if sp, ok := out["streakProtection"].(map[string]any); ok {
		if _, exists := out["streakShields"]; !exists {
			shields := map[string]any{}
			for from, to := range map[string]string{
				"shields":    "count",
				"lastUsed":   "lastUsedAt",
				"lastEarned": "lastEarnedAt",
				"totalUsed":  "totalUsed",
			} {
				if v, ok := sp[from]; ok {
					shields[to] = v
				}
			}
			out["streakShields"] = shields
		}
	}
	delete(out, "streakProtection")

	if quizzes, ok := out["quizHistory"].([]any); ok {
		for _, q := range quizzes {
			entry, ok := q.(map[string]any)
			if !ok {
				continue
			}
			if id, ok := entry["id"].(float64); ok {
				entry["id"] = strconv.FormatFloat(id, 'f', -1, 64)
			}
		}
	}

	for _, k := range []string{"onboarding", "users", "currentUser", "wordOfTheDay", "pendingReferral"} {
		delete(out, k)
	}
	out["version"] = float64(CurrentVersion)
	return out
}

func rename(m map[string]any, from, to string) {
	v, ok := m[from]
	if !ok {
		return
	}
	if _, exists := m[to]; !exists {
		m[to] = v
	}
	delete(m, from)
}

// readLegacy assembles a version 1 document from the legacy keys. found
// is false when no legacy key exists.
func readLegacy(ctx context.Context, b Backend, logger *slog.Logger) (doc map[string]any, found bool) {
	doc = map[string]any{}
	settings := map[string]any{}
	var users []any
	var current map[string]any

	for _, key := range LegacyKeys {
		raw, err := b.Get(ctx, key)
		if err != nil {
			continue
		}
		found = true

		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			logger.Debug("skipping unreadable legacy key", "key", key, "error", err)
			continue
		}

		switch key {
		case "vocabProSettings":
			if m, ok := v.(map[string]any); ok {
				maps.Copy(settings, m)
			}
		case "vocabProSoundEnabled":
			if on, ok := v.(bool); ok {
				settings["soundEnabled"] = on
			}
		case "vocabProSRS":
			doc["srs"] = v
		case "vocabProBookmarks":
			doc["bookmarks"] = v
		case "vocabProDailyGoals":
			doc["dailyGoals"] = v
		case "vocabProQuizHistory":
			doc["quizHistory"] = v
		case "vocabProStreakProtection":
			doc["streakProtection"] = v
		case "vocabProUsers":
			users, _ = v.([]any)
		case "vocabProCurrentUser":
			current, _ = v.(map[string]any)
		}
	}

	if len(settings) > 0 {
		doc["settings"] = settings
	}
	if stats := currentUserStats(users, current); stats != nil {
		doc["stats"] = stats
	}
	return doc, found
}

// currentUserStats returns the stats of the user matching current by email.
func currentUserStats(users []any, current map[string]any) map[string]any {
	email, _ := current["email"].(string)
	if email == "" {
		return nil
	}
	for _, u := range users {
		user, ok := u.(map[string]any)
		if !ok || user["email"] != email {
			continue
		}
		stats, _ := user["stats"].(map[string]any)
		return stats
	}
	return nil
}
