package spacedrep

// Normalize repairs records loaded from storage: it fills missing ids and
// ease factors, clamps ease into range, clears negative counters, keeps the
// correct/incorrect totals consistent and trims history.
func Normalize(records map[string]ReviewRecord) map[string]ReviewRecord {
	out := make(map[string]ReviewRecord, len(records))
	for id, r := range records {
		if id == "" {
			continue
		}
		r = r.Clone()
		r.ItemID = id
		if r.EaseFactor == 0 {
			r.EaseFactor = DefaultEase
		}
		r.EaseFactor = clampEase(r.EaseFactor)
		r.Interval = max(r.Interval, 0)
		r.Repetitions = max(r.Repetitions, 0)
		r.CorrectCount = max(r.CorrectCount, 0)
		r.IncorrectCount = max(r.IncorrectCount, 0)
		r.TotalReviews = r.CorrectCount + r.IncorrectCount
		if len(r.History) > MaxHistory {
			r.History = r.History[len(r.History)-MaxHistory:]
		}
		out[id] = r
	}
	return out
}
