package planner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"study-planner/internal/model"
)

func newTestReplanner(t *testing.T, store *fakeScheduleStore, sync SyncAdapter, notify Notifier, user *model.User) *Replanner {
	t.Helper()
	g := NewGenerator(
		&fakeCategories{categories: []model.Category{{ID: 1, Name: "Math"}}},
		&fakeSessions{},
		store,
	)
	g.now = func() time.Time { return time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC) }
	users := &fakeUsers{users: map[uint]*model.User{user.ID: user}}
	return NewReplanner(users, store, g, sync, notify)
}

func seedActiveSchedule(store *fakeScheduleStore, userID uint, eventIDs ...string) *model.Schedule {
	schedule := &model.Schedule{UserID: userID, IsActive: true}
	for i, id := range eventIDs {
		eventID := id
		schedule.Items = append(schedule.Items, model.ScheduleItem{
			ID:            uint(i + 1),
			CategoryID:    1,
			Status:        model.StatusScheduled,
			GoogleEventID: &eventID,
		})
	}
	store.Create(context.Background(), schedule)
	return schedule
}

func TestReplanWithoutActiveSchedule(t *testing.T) {
	store := newFakeScheduleStore()
	user := &model.User{ID: 7}
	r := newTestReplanner(t, store, nil, nil, user)

	schedule, err := r.Replan(context.Background(), 7, "fresh start")
	if err != nil {
		t.Fatalf("Replan: %v", err)
	}
	if schedule.ReplannedFrom != nil {
		t.Errorf("ReplannedFrom = %v, want nil when nothing was superseded", *schedule.ReplannedFrom)
	}
	if !schedule.IsActive {
		t.Error("new schedule should be active")
	}
}

func TestReplanSupersedesActiveSchedule(t *testing.T) {
	store := newFakeScheduleStore()
	user := &model.User{ID: 7}
	old := seedActiveSchedule(store, 7)
	r := newTestReplanner(t, store, nil, nil, user)

	replacement, err := r.Replan(context.Background(), 7, "missed sessions")
	if err != nil {
		t.Fatalf("Replan: %v", err)
	}

	if store.byID[old.ID].IsActive {
		t.Error("old schedule still active")
	}
	persisted := store.byID[replacement.ID]
	if !persisted.IsActive {
		t.Error("replacement not active")
	}
	if persisted.ReplannedFrom == nil || *persisted.ReplannedFrom != old.ID {
		t.Errorf("ReplannedFrom = %v, want %d", persisted.ReplannedFrom, old.ID)
	}
	if persisted.ReplannedReason != "missed sessions" {
		t.Errorf("ReplannedReason = %q", persisted.ReplannedReason)
	}
}

func TestReplanRestoresOldScheduleOnGenerationFailure(t *testing.T) {
	store := newFakeScheduleStore()
	user := &model.User{ID: 7}
	old := seedActiveSchedule(store, 7)
	store.createErr = errors.New("disk full")
	r := newTestReplanner(t, store, nil, nil, user)

	_, err := r.Replan(context.Background(), 7, "whatever")
	if err == nil {
		t.Fatal("expected error")
	}
	if !store.byID[old.ID].IsActive {
		t.Error("old schedule should have been reactivated after failed generation")
	}
}

func TestReplanSyncFailurePropagatesButKeepsSchedule(t *testing.T) {
	store := newFakeScheduleStore()
	user := &model.User{ID: 7, GoogleConnected: true}
	seedActiveSchedule(store, 7, "evt-1", "evt-2")
	sync := &fakeSyncAdapter{syncErr: errors.New("token revoked")}
	r := newTestReplanner(t, store, sync, nil, user)

	_, err := r.Replan(context.Background(), 7, "missed sessions")
	if err == nil {
		t.Fatal("expected sync error to propagate")
	}
	if !strings.Contains(err.Error(), "replanning failed") {
		t.Errorf("err = %v, want replanning failed wrapper", err)
	}

	// The replacement stays persisted and active even though sync failed.
	active, _ := store.FindActive(context.Background(), 7)
	if active == nil {
		t.Fatal("no active schedule left")
	}
	if active.ReplannedFrom == nil {
		t.Error("active schedule should be the replacement")
	}
}

func TestReplanDeletesOldEvents(t *testing.T) {
	store := newFakeScheduleStore()
	user := &model.User{ID: 7, GoogleConnected: true}
	seedActiveSchedule(store, 7, "evt-1", "evt-2")
	sync := &fakeSyncAdapter{}
	notify := &recordingNotifier{}
	r := newTestReplanner(t, store, sync, notify, user)

	if _, err := r.Replan(context.Background(), 7, "missed sessions"); err != nil {
		t.Fatalf("Replan: %v", err)
	}

	if len(sync.deletedIDs) != 2 || sync.deletedIDs[0] != "evt-1" || sync.deletedIDs[1] != "evt-2" {
		t.Errorf("deleted event IDs = %v, want [evt-1 evt-2]", sync.deletedIDs)
	}
	if len(sync.syncedWith) != 1 {
		t.Fatalf("SyncSchedule called %d times, want 1", len(sync.syncedWith))
	}
	if len(notify.pushes) != 1 || !notify.pushes[0] {
		t.Errorf("notifier pushes = %v, want one replanned push", notify.pushes)
	}
}

func TestReplanSkipsSyncWhenNotConnected(t *testing.T) {
	store := newFakeScheduleStore()
	user := &model.User{ID: 7, GoogleConnected: false}
	seedActiveSchedule(store, 7, "evt-1")
	sync := &fakeSyncAdapter{syncErr: errors.New("should not be called")}
	r := newTestReplanner(t, store, sync, nil, user)

	if _, err := r.Replan(context.Background(), 7, "missed sessions"); err != nil {
		t.Fatalf("Replan: %v", err)
	}
	if len(sync.deletedIDs) != 0 {
		t.Errorf("DeleteEvents called for a disconnected user: %v", sync.deletedIDs)
	}
}

func TestSweepMissedMarksOverdueItems(t *testing.T) {
	store := newFakeScheduleStore()
	user := &model.User{ID: 7}
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

	schedule := &model.Schedule{UserID: 7, IsActive: true, Items: []model.ScheduleItem{
		{ID: 1, CategoryID: 1, Status: model.StatusScheduled, EndTime: now.Add(-time.Hour)},
		{ID: 2, CategoryID: 1, Status: model.StatusScheduled, EndTime: now.Add(time.Hour)},
		{ID: 3, CategoryID: 1, Status: model.StatusCompleted, EndTime: now.Add(-2 * time.Hour)},
	}}
	store.Create(context.Background(), schedule)
	for i := range schedule.Items {
		schedule.Items[i].ScheduleID = schedule.ID
		store.SaveItem(context.Background(), &schedule.Items[i])
	}

	r := newTestReplanner(t, store, nil, nil, user)
	if err := r.SweepMissed(context.Background(), now); err != nil {
		t.Fatalf("SweepMissed: %v", err)
	}

	items := store.byID[schedule.ID].Items
	if items[0].Status != model.StatusMissed {
		t.Errorf("overdue item status = %s, want missed", items[0].Status)
	}
	if items[1].Status != model.StatusScheduled {
		t.Errorf("future item status = %s, want scheduled", items[1].Status)
	}
	if items[2].Status != model.StatusCompleted {
		t.Errorf("completed item status = %s, want untouched", items[2].Status)
	}
	// One missed item is below the replan threshold.
	if store.byID[schedule.ID].IsActive == false {
		t.Error("schedule was replanned below the missed threshold")
	}
}

func TestSweepMissedReplansAtThreshold(t *testing.T) {
	store := newFakeScheduleStore()
	user := &model.User{ID: 7}
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

	schedule := &model.Schedule{UserID: 7, IsActive: true}
	store.Create(context.Background(), schedule)
	for i := 1; i <= 3; i++ {
		store.SaveItem(context.Background(), &model.ScheduleItem{
			ID: uint(i), ScheduleID: schedule.ID, CategoryID: 1,
			Status: model.StatusScheduled, EndTime: now.Add(-time.Hour),
		})
	}

	r := newTestReplanner(t, store, nil, nil, user)
	if err := r.SweepMissed(context.Background(), now); err != nil {
		t.Fatalf("SweepMissed: %v", err)
	}

	if store.byID[schedule.ID].IsActive {
		t.Error("schedule with 3 missed items should have been superseded")
	}
	active, _ := store.FindActive(context.Background(), 7)
	if active == nil {
		t.Fatal("no replacement schedule")
	}
	if active.ReplannedReason != "missed sessions" {
		t.Errorf("ReplannedReason = %q, want missed sessions", active.ReplannedReason)
	}
}
