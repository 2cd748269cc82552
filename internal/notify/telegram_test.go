package notify

import (
	"strings"
	"testing"
	"time"

	"study-planner/internal/model"
)

func TestBuildAgendaFiltersAndSorts(t *testing.T) {
	now := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	today9 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	today14 := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	schedule := &model.Schedule{Items: []model.ScheduleItem{
		{CategoryID: 2, StartTime: today14, EndTime: today14.Add(time.Hour), Duration: 60, Mode: model.ModeStopwatch, Priority: model.PriorityLow},
		{CategoryID: 1, StartTime: today9, EndTime: today9.Add(time.Hour), Duration: 60, Mode: model.ModePomodoro, Priority: model.PriorityHigh},
		{CategoryID: 1, StartTime: tomorrow, EndTime: tomorrow.Add(time.Hour), Duration: 60, Mode: model.ModePomodoro, Priority: model.PriorityMedium},
	}}
	names := map[uint]string{1: "Math", 2: "Physics"}

	text := buildAgenda(schedule, names, now)
	if text == "" {
		t.Fatal("agenda should not be empty")
	}
	if strings.Count(text, "min") != 2 {
		t.Errorf("agenda should list exactly today's 2 items:\n%s", text)
	}
	if strings.Index(text, "Math") > strings.Index(text, "Physics") {
		t.Errorf("items not sorted by start time:\n%s", text)
	}
	if !strings.Contains(text, "09:00") || !strings.Contains(text, "14:00") {
		t.Errorf("missing times:\n%s", text)
	}
}

func TestBuildAgendaEmptyDay(t *testing.T) {
	now := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	schedule := &model.Schedule{Items: []model.ScheduleItem{
		{CategoryID: 1, StartTime: tomorrow, EndTime: tomorrow.Add(time.Hour)},
	}}

	if text := buildAgenda(schedule, nil, now); text != "" {
		t.Errorf("agenda for an empty day should be empty, got:\n%s", text)
	}
}

func TestFormatItemEscapesName(t *testing.T) {
	now := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	item := model.ScheduleItem{
		StartTime: now.Add(2 * time.Hour),
		EndTime:   now.Add(3 * time.Hour),
		Duration:  60,
		Mode:      model.ModePomodoro,
		Priority:  model.PriorityMedium,
	}

	line := formatItem(item, "Math <b>hax</b>", now)
	if strings.Contains(line, "<b>hax</b>") {
		t.Errorf("category name not escaped: %s", line)
	}
}
