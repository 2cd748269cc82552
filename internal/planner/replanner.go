package planner

import (
	"context"
	"fmt"
	"log"
	"time"

	"study-planner/internal/model"
)

// An active schedule with this many missed items gets replanned by the sweep.
const missedReplanThreshold = 3

// Replanner supersedes a user's current plan with a freshly generated one,
// recording lineage and keeping the external calendar in step. It is also the
// entry point for plain generation, so both paths share the per-user lease.
type Replanner struct {
	users     UserSource
	schedules ScheduleStore
	generator *Generator
	sync      SyncAdapter // nil when no external service is configured
	notify    Notifier    // nil when notifications are disabled
	locks     *userLocks
}

func NewReplanner(users UserSource, schedules ScheduleStore, generator *Generator, sync SyncAdapter, notify Notifier) *Replanner {
	return &Replanner{
		users:     users,
		schedules: schedules,
		generator: generator,
		sync:      sync,
		notify:    notify,
		locks:     newUserLocks(),
	}
}

// Generate runs the generator under the same per-user lease replanning uses.
func (r *Replanner) Generate(ctx context.Context, userID uint, prefs Preferences) (*model.Schedule, error) {
	release := r.locks.acquire(userID)
	defer release()

	schedule, err := r.generator.Generate(ctx, userID, prefs)
	if err != nil {
		return nil, err
	}
	r.announce(ctx, userID, schedule, false)
	return schedule, nil
}

// Replan supersedes the user's active schedule. With no active schedule it
// degenerates to plain generation using the user's stored preferences.
func (r *Replanner) Replan(ctx context.Context, userID uint, reason string) (*model.Schedule, error) {
	release := r.locks.acquire(userID)
	defer release()

	schedule, err := r.replan(ctx, userID, reason)
	if err != nil {
		return nil, fmt.Errorf("replanning failed: %w", err)
	}
	return schedule, nil
}

func (r *Replanner) replan(ctx context.Context, userID uint, reason string) (*model.Schedule, error) {
	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	current, err := r.schedules.FindActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		schedule, err := r.generator.Generate(ctx, userID, FromUser(user))
		if err != nil {
			return nil, err
		}
		r.notifyPushed(user, schedule, false)
		return schedule, nil
	}

	if err := r.schedules.SetActive(ctx, current.ID, false); err != nil {
		return nil, err
	}

	replacement, err := r.generator.Generate(ctx, userID, FromUser(user))
	if err != nil {
		// Compensate so the user is not left without an active plan.
		if restoreErr := r.schedules.SetActive(ctx, current.ID, true); restoreErr != nil {
			return nil, fmt.Errorf("%w (restore previous schedule: %v)", err, restoreErr)
		}
		return nil, err
	}

	replacement.ReplannedFrom = &current.ID
	replacement.ReplannedReason = reason
	if err := r.schedules.Save(ctx, replacement); err != nil {
		return nil, err
	}

	if r.sync != nil && user.GoogleConnected {
		var oldEventIDs []string
		for _, item := range current.Items {
			if item.GoogleEventID != nil && *item.GoogleEventID != "" {
				oldEventIDs = append(oldEventIDs, *item.GoogleEventID)
			}
		}
		if len(oldEventIDs) > 0 {
			// Best effort: stale events left behind are annoying, not fatal.
			deleted, failed := r.sync.DeleteEvents(ctx, user, oldEventIDs)
			log.Printf("[info] removed %d stale calendar events for user %d (%d failed)", deleted, userID, failed)
		}
		if _, err := r.sync.SyncSchedule(ctx, user, replacement); err != nil {
			// The replacement stays persisted and active, just unsynced.
			return nil, err
		}
	}

	r.notifyPushed(user, replacement, true)
	return replacement, nil
}

// SweepMissed marks overdue scheduled items as missed and replans users whose
// active plan drifted too far from reality.
func (r *Replanner) SweepMissed(ctx context.Context, now time.Time) error {
	schedules, err := r.schedules.ActiveSchedules(ctx)
	if err != nil {
		return err
	}

	for i := range schedules {
		schedule := &schedules[i]
		missed := 0
		for j := range schedule.Items {
			item := &schedule.Items[j]
			if item.Status == model.StatusScheduled && item.EndTime.Before(now) {
				item.Status = model.StatusMissed
				if err := r.schedules.SaveItem(ctx, item); err != nil {
					return err
				}
			}
			if item.Status == model.StatusMissed {
				missed++
			}
		}
		if missed >= missedReplanThreshold {
			if _, err := r.Replan(ctx, schedule.UserID, "missed sessions"); err != nil {
				log.Printf("auto replan for user %d: %v", schedule.UserID, err)
			}
		}
	}
	return nil
}

func (r *Replanner) announce(ctx context.Context, userID uint, schedule *model.Schedule, replanned bool) {
	if r.notify == nil {
		return
	}
	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		return
	}
	r.notifyPushed(user, schedule, replanned)
}

func (r *Replanner) notifyPushed(user *model.User, schedule *model.Schedule, replanned bool) {
	if r.notify != nil {
		r.notify.SchedulePushed(user, schedule, replanned)
	}
}
