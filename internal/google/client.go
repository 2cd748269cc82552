package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"study-planner/internal/model"
)

const (
	defaultCalendarURL = "https://www.googleapis.com/calendar/v3/calendars/primary/events"
	defaultTasksURL    = "https://tasks.googleapis.com/tasks/v1"
)

// CategoryLookup resolves the categories schedule items reference.
type CategoryLookup interface {
	FindByID(ctx context.Context, id uint) (*model.Category, error)
}

// ItemStore persists per-item sync annotations.
type ItemStore interface {
	SaveItem(ctx context.Context, item *model.ScheduleItem) error
}

// Client calls the Calendar and Tasks REST APIs on behalf of one user at a
// time. Bulk operations fan out concurrently; each item's success or failure
// is collected independently and one failure never aborts the batch.
type Client struct {
	auth       *Auth
	users      TokenStore
	categories CategoryLookup
	items      ItemStore

	httpClient  *http.Client
	calendarURL string // overridable in tests
	tasksURL    string
}

func NewClient(auth *Auth, users TokenStore, categories CategoryLookup, items ItemStore) *Client {
	return &Client{
		auth:        auth,
		users:       users,
		categories:  categories,
		items:       items,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		calendarURL: defaultCalendarURL,
		tasksURL:    defaultTasksURL,
	}
}

// doJSON issues one authenticated request, decoding the response into out
// when out is non-nil.
func (c *Client) doJSON(ctx context.Context, user *model.User, method, url string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+user.GoogleAccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("google api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode google response: %w", err)
		}
	}
	return nil
}

// userLocation resolves the user's timezone, falling back to UTC.
func userLocation(user *model.User) *time.Location {
	if loc, err := time.LoadLocation(user.Timezone); err == nil {
		return loc
	}
	return time.UTC
}
