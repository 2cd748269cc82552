package planner

import (
	"context"
	"fmt"

	"study-planner/internal/model"
)

type fakeCategories struct {
	categories []model.Category
	err        error
}

func (f *fakeCategories) ListActive(ctx context.Context, userID uint) ([]model.Category, error) {
	return f.categories, f.err
}

type fakeSessions struct {
	sessions []model.StudySession
	err      error
}

func (f *fakeSessions) ListRecent(ctx context.Context, userID uint, limit int) ([]model.StudySession, error) {
	if limit < len(f.sessions) {
		return f.sessions[:limit], f.err
	}
	return f.sessions, f.err
}

type fakeScheduleStore struct {
	byID      map[uint]*model.Schedule
	nextID    uint
	createErr error
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{byID: make(map[uint]*model.Schedule), nextID: 1}
}

func (f *fakeScheduleStore) Create(ctx context.Context, schedule *model.Schedule) error {
	if f.createErr != nil {
		return f.createErr
	}
	schedule.ID = f.nextID
	f.nextID++
	copied := *schedule
	f.byID[schedule.ID] = &copied
	return nil
}

func (f *fakeScheduleStore) FindActive(ctx context.Context, userID uint) (*model.Schedule, error) {
	for _, s := range f.byID {
		if s.UserID == userID && s.IsActive {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleStore) Save(ctx context.Context, schedule *model.Schedule) error {
	copied := *schedule
	f.byID[schedule.ID] = &copied
	return nil
}

func (f *fakeScheduleStore) SetActive(ctx context.Context, scheduleID uint, active bool) error {
	s, ok := f.byID[scheduleID]
	if !ok {
		return fmt.Errorf("schedule %d not found", scheduleID)
	}
	s.IsActive = active
	return nil
}

func (f *fakeScheduleStore) ActiveSchedules(ctx context.Context) ([]model.Schedule, error) {
	var out []model.Schedule
	for _, s := range f.byID {
		if s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScheduleStore) SaveItem(ctx context.Context, item *model.ScheduleItem) error {
	s, ok := f.byID[item.ScheduleID]
	if !ok {
		return fmt.Errorf("schedule %d not found", item.ScheduleID)
	}
	for i := range s.Items {
		if s.Items[i].ID == item.ID {
			s.Items[i] = *item
			return nil
		}
	}
	s.Items = append(s.Items, *item)
	return nil
}

type fakeUsers struct {
	users map[uint]*model.User
}

func (f *fakeUsers) FindByID(ctx context.Context, userID uint) (*model.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %d not found", userID)
	}
	copied := *u
	return &copied, nil
}

type fakeSyncAdapter struct {
	syncErr      error
	syncedWith   []*model.Schedule
	deletedIDs   []string
	deleteFailed int
}

func (f *fakeSyncAdapter) SyncSchedule(ctx context.Context, user *model.User, schedule *model.Schedule) (SyncResult, error) {
	if f.syncErr != nil {
		return SyncResult{TotalItems: len(schedule.Items)}, f.syncErr
	}
	f.syncedWith = append(f.syncedWith, schedule)
	return SyncResult{
		CalendarEventsSynced: len(schedule.Items),
		TasksSynced:          len(schedule.Items),
		TotalItems:           len(schedule.Items),
	}, nil
}

func (f *fakeSyncAdapter) DeleteEvents(ctx context.Context, user *model.User, eventIDs []string) (int, int) {
	f.deletedIDs = append(f.deletedIDs, eventIDs...)
	return len(eventIDs) - f.deleteFailed, f.deleteFailed
}

type recordingNotifier struct {
	pushes []bool // replanned flag per call
}

func (r *recordingNotifier) SchedulePushed(user *model.User, schedule *model.Schedule, replanned bool) {
	r.pushes = append(r.pushes, replanned)
}
