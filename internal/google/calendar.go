package google

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"study-planner/internal/model"
)

// EventResult reports one item's fate during a bulk calendar push.
type EventResult struct {
	Success bool
	EventID string
	Err     string
}

// CreateEvents pushes items to the user's primary calendar as an unordered
// concurrent batch, one result per item in input order. A single item's
// failure is recorded, not returned; only a credential failure aborts.
func (c *Client) CreateEvents(ctx context.Context, user *model.User, items []model.ScheduleItem) ([]EventResult, error) {
	if err := c.auth.EnsureValidToken(ctx, user, c.users); err != nil {
		return nil, err
	}

	results := make([]EventResult, len(items))
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.createEvent(ctx, user, &items[i])
		}(i)
	}
	wg.Wait()
	return results, nil
}

func (c *Client) createEvent(ctx context.Context, user *model.User, item *model.ScheduleItem) EventResult {
	category, err := c.categories.FindByID(ctx, item.CategoryID)
	if err != nil {
		return EventResult{Err: "category not found"}
	}

	event := map[string]interface{}{
		"summary":     category.Name + ": " + item.Title,
		"description": item.Description,
		"start": map[string]string{
			"dateTime": item.StartTime.Format(time.RFC3339),
			"timeZone": user.Timezone,
		},
		"end": map[string]string{
			"dateTime": item.EndTime.Format(time.RFC3339),
			"timeZone": user.Timezone,
		},
		"colorId": colorID(category.Color),
		"reminders": map[string]interface{}{
			"useDefault": false,
			"overrides": []map[string]interface{}{
				{"method": "popup", "minutes": 15},
			},
		},
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, user, http.MethodPost, c.calendarURL, event, &created); err != nil {
		return EventResult{Err: err.Error()}
	}
	return EventResult{Success: true, EventID: created.ID}
}

// DeleteEvents removes events as an unordered concurrent batch. Failures are
// counted, never retried.
func (c *Client) DeleteEvents(ctx context.Context, user *model.User, eventIDs []string) (deleted, failed int) {
	if err := c.auth.EnsureValidToken(ctx, user, c.users); err != nil {
		return 0, len(eventIDs)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, id := range eventIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			err := c.doJSON(ctx, user, http.MethodDelete, c.calendarURL+"/"+url.PathEscape(id), nil, nil)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
			} else {
				deleted++
			}
		}(id)
	}
	wg.Wait()
	return deleted, failed
}

// colorID maps the planner's category colors to Google Calendar color IDs.
func colorID(hexColor string) string {
	colors := map[string]string{
		"#4f46e5": "9",
		"#ef4444": "11",
		"#10b981": "10",
		"#f59e0b": "6",
		"#8b5cf6": "1",
		"#06b6d4": "7",
		"#ec4899": "4",
		"#6b7280": "8",
	}
	if id, ok := colors[strings.ToLower(hexColor)]; ok {
		return id
	}
	return "9" // default to blue
}
