package google

import (
	"context"
	"fmt"

	"study-planner/internal/model"
	"study-planner/internal/planner"
)

// SyncSchedule pushes every schedule item to Calendar and Tasks, annotating
// items with the returned external IDs as it goes. Per-item failures show up
// only in the counts; a credential-level failure aborts the push.
func (c *Client) SyncSchedule(ctx context.Context, user *model.User, schedule *model.Schedule) (planner.SyncResult, error) {
	result := planner.SyncResult{TotalItems: len(schedule.Items)}

	taskListID, err := c.GetOrCreateTaskList(ctx, user)
	if err != nil {
		return result, fmt.Errorf("google sync failed: %w", err)
	}

	eventResults, err := c.CreateEvents(ctx, user, schedule.Items)
	if err != nil {
		return result, fmt.Errorf("google sync failed: %w", err)
	}
	taskResults, err := c.CreateTasks(ctx, user, taskListID, schedule.Items)
	if err != nil {
		return result, fmt.Errorf("google sync failed: %w", err)
	}

	for i := range schedule.Items {
		item := &schedule.Items[i]
		annotated := false
		if eventResults[i].Success {
			eventID := eventResults[i].EventID
			item.GoogleEventID = &eventID
			result.CalendarEventsSynced++
			annotated = true
		}
		if taskResults[i].Success {
			taskID := taskResults[i].TaskID
			item.GoogleTaskID = &taskID
			result.TasksSynced++
			annotated = true
		}
		if annotated {
			if err := c.items.SaveItem(ctx, item); err != nil {
				return result, fmt.Errorf("google sync failed: %w", err)
			}
		}
	}
	return result, nil
}
