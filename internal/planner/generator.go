package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"study-planner/internal/model"
)

// historyWindow caps how many past sessions pattern analysis looks at.
const historyWindow = 100

var ErrNoCategories = errors.New("no categories found, create some subjects first")

// Preferences control how many days a schedule covers and how much study
// time each day carries. Zero values fall back to the defaults.
type Preferences struct {
	DaysToSchedule   int  `json:"daysToSchedule"`
	DailyGoalMinutes int  `json:"dailyGoalMinutes"`
	SkipWeekends     bool `json:"skipWeekends"`
}

func (p Preferences) withDefaults() Preferences {
	if p.DaysToSchedule <= 0 {
		p.DaysToSchedule = 7
	}
	if p.DailyGoalMinutes <= 0 {
		p.DailyGoalMinutes = 120
	}
	return p
}

// FromUser maps a user's stored preferences onto generation preferences.
func FromUser(user *model.User) Preferences {
	return Preferences{
		DaysToSchedule:   user.Preferences.DaysToSchedule,
		DailyGoalMinutes: user.Preferences.DailyGoalMinutes,
		SkipWeekends:     user.Preferences.SkipWeekends,
	}
}

// Generator turns session history into a fresh, active schedule.
type Generator struct {
	categories CategorySource
	sessions   SessionSource
	schedules  ScheduleStore

	now func() time.Time
}

func NewGenerator(categories CategorySource, sessions SessionSource, schedules ScheduleStore) *Generator {
	return &Generator{
		categories: categories,
		sessions:   sessions,
		schedules:  schedules,
		now:        time.Now,
	}
}

// Generate builds and persists a new active schedule for the user. It does
// not deactivate a previous schedule; supersession is the replanner's job.
func (g *Generator) Generate(ctx context.Context, userID uint, prefs Preferences) (*model.Schedule, error) {
	schedule, err := g.generate(ctx, userID, prefs)
	if err != nil {
		return nil, fmt.Errorf("schedule generation failed: %w", err)
	}
	return schedule, nil
}

func (g *Generator) generate(ctx context.Context, userID uint, prefs Preferences) (*model.Schedule, error) {
	prefs = prefs.withDefaults()

	sessions, err := g.sessions.ListRecent(ctx, userID, historyWindow)
	if err != nil {
		return nil, err
	}

	categories, err := g.categories.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	summary := AnalyzePatterns(sessions)
	now := g.now()
	items := buildItems(categories, summary, prefs, now)

	total := 0
	for _, item := range items {
		total += item.Duration
	}

	schedule := &model.Schedule{
		UserID:              userID,
		Items:               items,
		GeneratedAt:         now,
		ValidFrom:           now,
		ValidUntil:          now.AddDate(0, 0, prefs.DaysToSchedule),
		IsActive:            true,
		TotalPlannedMinutes: total,
	}

	if err := g.schedules.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// buildItems lays out one item per category per scheduled day. Daily goal
// minutes are split with integer division; the remainder is dropped.
func buildItems(categories []model.Category, summary PatternSummary, prefs Preferences, now time.Time) []model.ScheduleItem {
	preferredMode := model.ModeStopwatch
	if summary.ModePreference[model.ModePomodoro] >= summary.ModePreference[model.ModeStopwatch] {
		preferredMode = model.ModePomodoro
	}

	minutesPerCategory := prefs.DailyGoalMinutes / len(categories)

	var items []model.ScheduleItem
	for day := 0; day < prefs.DaysToSchedule; day++ {
		date := now.AddDate(0, 0, day)
		if prefs.SkipWeekends {
			if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
		}

		for i, category := range categories {
			// With no recorded history every category gets its own slot,
			// staggered two hours apart from 9 AM.
			hour := bestStudyHour(summary.TimePreferences, 9+i*2)
			start := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())

			items = append(items, model.ScheduleItem{
				CategoryID:  category.ID,
				Title:       "Study Session",
				Description: fmt.Sprintf("Focused study time for %s", category.Name),
				StartTime:   start,
				EndTime:     start.Add(time.Duration(minutesPerCategory) * time.Minute),
				Duration:    minutesPerCategory,
				Mode:        preferredMode,
				Priority:    categoryPriority(category, summary),
				Status:      model.StatusScheduled,
			})
		}
	}
	return items
}

// bestStudyHour picks the hour with the most recorded sessions, scanning low
// to high so ties land on the earliest hour.
func bestStudyHour(timePreferences map[int]int, fallback int) int {
	if len(timePreferences) == 0 {
		return fallback
	}
	best, max := fallback, 0
	for hour := 0; hour < 24; hour++ {
		if count := timePreferences[hour]; count > max {
			max = count
			best = hour
		}
	}
	return best
}

// categoryPriority boosts categories the user struggles to finish.
func categoryPriority(category model.Category, summary PatternSummary) string {
	stats, ok := summary.CategoryPerformance[category.Name]
	if !ok {
		return model.PriorityMedium
	}
	switch {
	case stats.CompletionRate < 50:
		return model.PriorityHigh
	case stats.CompletionRate > 80:
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}
