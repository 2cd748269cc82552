package planner

import "study-planner/internal/model"

// CategoryStats aggregates the history of one category.
type CategoryStats struct {
	TotalMinutes   int     `json:"totalMinutes"`
	SessionCount   int     `json:"sessionCount"`
	CompletedCount int     `json:"completedCount"`
	CompletionRate float64 `json:"completionRate"` // 0..100
}

// PatternSummary is what schedule generation biases itself on. A category
// with no history has no entry at all; callers treat absence as "no data".
type PatternSummary struct {
	CategoryPerformance map[string]CategoryStats `json:"categoryPerformance"`
	TimePreferences     map[int]int              `json:"timePreferences"` // hour of day -> sessions started then
	ModePreference      map[string]int           `json:"modePreference"`
	TotalSessions       int                      `json:"totalSessions"`
}

// AnalyzePatterns reduces a session history to aggregate signals. It is a
// total function: empty input yields empty maps and zero counts, never an error.
func AnalyzePatterns(sessions []model.StudySession) PatternSummary {
	summary := PatternSummary{
		CategoryPerformance: make(map[string]CategoryStats),
		TimePreferences:     make(map[int]int),
		ModePreference: map[string]int{
			model.ModePomodoro:  0,
			model.ModeStopwatch: 0,
		},
		TotalSessions: len(sessions),
	}

	for _, session := range sessions {
		name := "Unknown"
		if session.Category != nil {
			name = session.Category.Name
		}

		stats := summary.CategoryPerformance[name]
		stats.TotalMinutes += session.ActualDuration
		stats.SessionCount++
		if session.Completed {
			stats.CompletedCount++
		}
		stats.CompletionRate = float64(stats.CompletedCount) / float64(stats.SessionCount) * 100
		summary.CategoryPerformance[name] = stats

		summary.TimePreferences[session.StartTime.Hour()]++
		summary.ModePreference[session.Mode]++
	}

	return summary
}
