package planner

import (
	"context"

	"study-planner/internal/model"
)

// Contracts the engine needs from its neighbours. The gorm repositories in
// internal/repository satisfy the storage ones.

type CategorySource interface {
	ListActive(ctx context.Context, userID uint) ([]model.Category, error)
}

type SessionSource interface {
	ListRecent(ctx context.Context, userID uint, limit int) ([]model.StudySession, error)
}

type ScheduleStore interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	// FindActive returns nil without error when the user has no active schedule.
	FindActive(ctx context.Context, userID uint) (*model.Schedule, error)
	Save(ctx context.Context, schedule *model.Schedule) error
	// SetActive is the only writer of the active flag.
	SetActive(ctx context.Context, scheduleID uint, active bool) error
	ActiveSchedules(ctx context.Context) ([]model.Schedule, error)
	SaveItem(ctx context.Context, item *model.ScheduleItem) error
}

type UserSource interface {
	FindByID(ctx context.Context, userID uint) (*model.User, error)
}

// SyncResult reports how much of a schedule made it to the external service.
type SyncResult struct {
	CalendarEventsSynced int `json:"calendarEventsSynced"`
	TasksSynced          int `json:"tasksSynced"`
	TotalItems           int `json:"totalItems"`
}

// SyncAdapter pushes schedules to the external calendar/task service.
// Individual item failures are reflected in the counts, not returned as
// errors; only credential-level failures abort.
type SyncAdapter interface {
	SyncSchedule(ctx context.Context, user *model.User, schedule *model.Schedule) (SyncResult, error)
	DeleteEvents(ctx context.Context, user *model.User, eventIDs []string) (deleted, failed int)
}

// Notifier announces plan changes to the user, best effort.
type Notifier interface {
	SchedulePushed(user *model.User, schedule *model.Schedule, replanned bool)
}
