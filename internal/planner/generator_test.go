package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"study-planner/internal/model"
)

func newTestGenerator(categories []model.Category, sessions []model.StudySession, now time.Time) (*Generator, *fakeScheduleStore) {
	store := newFakeScheduleStore()
	g := NewGenerator(
		&fakeCategories{categories: categories},
		&fakeSessions{sessions: sessions},
		store,
	)
	g.now = func() time.Time { return now }
	return g, store
}

func TestGenerateNoCategories(t *testing.T) {
	g, _ := newTestGenerator(nil, nil, time.Now())

	_, err := g.Generate(context.Background(), 1, Preferences{})
	if !errors.Is(err, ErrNoCategories) {
		t.Fatalf("err = %v, want ErrNoCategories", err)
	}
}

func TestGenerateEmptyHistoryDefaults(t *testing.T) {
	// Monday, no history: each category gets its fallback slot two hours apart.
	now := time.Date(2026, 1, 5, 7, 30, 0, 0, time.UTC)
	categories := []model.Category{
		{ID: 1, Name: "Math"},
		{ID: 2, Name: "Physics"},
	}
	g, store := newTestGenerator(categories, nil, now)

	schedule, err := g.Generate(context.Background(), 1, Preferences{DaysToSchedule: 1, DailyGoalMinutes: 100})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(schedule.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(schedule.Items))
	}
	for i, item := range schedule.Items {
		if item.Duration != 50 {
			t.Errorf("item %d duration = %d, want 50", i, item.Duration)
		}
		if item.Mode != model.ModePomodoro {
			t.Errorf("item %d mode = %s, want pomodoro on no history", i, item.Mode)
		}
		if item.Priority != model.PriorityMedium {
			t.Errorf("item %d priority = %s, want medium", i, item.Priority)
		}
		if item.Status != model.StatusScheduled {
			t.Errorf("item %d status = %s, want scheduled", i, item.Status)
		}
	}
	if h := schedule.Items[0].StartTime.Hour(); h != 9 {
		t.Errorf("first item starts at hour %d, want 9", h)
	}
	if h := schedule.Items[1].StartTime.Hour(); h != 11 {
		t.Errorf("second item starts at hour %d, want 11", h)
	}
	if schedule.TotalPlannedMinutes != 100 {
		t.Errorf("TotalPlannedMinutes = %d, want 100", schedule.TotalPlannedMinutes)
	}
	if !schedule.IsActive {
		t.Error("generated schedule should be active")
	}
	if got := schedule.ValidUntil.Sub(schedule.ValidFrom); got != 24*time.Hour {
		t.Errorf("validity window = %v, want 24h", got)
	}
	if store.byID[schedule.ID] == nil {
		t.Error("schedule was not persisted")
	}
}

func TestGenerateFloorDivision(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	categories := []model.Category{
		{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"},
		{ID: 4, Name: "D"}, {ID: 5, Name: "E"}, {ID: 6, Name: "F"},
		{ID: 7, Name: "G"},
	}
	g, _ := newTestGenerator(categories, nil, now)

	schedule, err := g.Generate(context.Background(), 1, Preferences{DaysToSchedule: 1, DailyGoalMinutes: 120})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, item := range schedule.Items {
		if item.Duration != 17 {
			t.Fatalf("duration = %d, want 17 (120/7 floored)", item.Duration)
		}
	}
	if schedule.TotalPlannedMinutes != 7*17 {
		t.Errorf("TotalPlannedMinutes = %d, want %d", schedule.TotalPlannedMinutes, 7*17)
	}
}

func TestGenerateSkipWeekends(t *testing.T) {
	// Friday; a 7-day window covers one weekend.
	now := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	g, _ := newTestGenerator([]model.Category{{ID: 1, Name: "Math"}}, nil, now)

	schedule, err := g.Generate(context.Background(), 1, Preferences{DaysToSchedule: 7, DailyGoalMinutes: 60, SkipWeekends: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(schedule.Items) != 5 {
		t.Fatalf("got %d items, want 5 weekdays", len(schedule.Items))
	}
	for _, item := range schedule.Items {
		if wd := item.StartTime.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("item scheduled on %s", wd)
		}
	}
}

func TestGeneratePreferredHourFromHistory(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	sessions := []model.StudySession{
		session("Math", 20, 25, true, model.ModeStopwatch),
		session("Math", 20, 25, true, model.ModeStopwatch),
		session("Math", 14, 25, true, model.ModeStopwatch),
	}
	g, _ := newTestGenerator([]model.Category{{ID: 1, Name: "Math"}}, sessions, now)

	schedule, err := g.Generate(context.Background(), 1, Preferences{DaysToSchedule: 1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if h := schedule.Items[0].StartTime.Hour(); h != 20 {
		t.Errorf("start hour = %d, want the historically busiest hour 20", h)
	}
	if schedule.Items[0].Mode != model.ModeStopwatch {
		t.Errorf("mode = %s, want stopwatch majority", schedule.Items[0].Mode)
	}
}

func TestBestStudyHourTieBreaksEarliest(t *testing.T) {
	prefs := map[int]int{21: 2, 7: 2, 15: 1}
	if got := bestStudyHour(prefs, 9); got != 7 {
		t.Errorf("bestStudyHour = %d, want earliest tied hour 7", got)
	}
}

func TestCategoryPriorityThresholds(t *testing.T) {
	summary := PatternSummary{CategoryPerformance: map[string]CategoryStats{
		"Struggling": {CompletionRate: 45},
		"Cruising":   {CompletionRate: 85},
		"Steady":     {CompletionRate: 65},
	}}

	cases := []struct {
		name string
		want string
	}{
		{"Struggling", model.PriorityHigh},
		{"Cruising", model.PriorityLow},
		{"Steady", model.PriorityMedium},
		{"Brand New", model.PriorityMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := categoryPriority(model.Category{Name: tc.name}, summary); got != tc.want {
				t.Errorf("priority = %s, want %s", got, tc.want)
			}
		})
	}
}
