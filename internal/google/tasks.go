package google

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"study-planner/internal/model"
)

const taskListTitle = "AI Study Planner"

// TaskResult reports one item's fate during a bulk task push.
type TaskResult struct {
	Success bool
	TaskID  string
	Err     string
}

// GetOrCreateTaskList finds the planner's task list, creating it on first use.
func (c *Client) GetOrCreateTaskList(ctx context.Context, user *model.User) (string, error) {
	if err := c.auth.EnsureValidToken(ctx, user, c.users); err != nil {
		return "", err
	}

	var lists struct {
		Items []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"items"`
	}
	if err := c.doJSON(ctx, user, http.MethodGet, c.tasksURL+"/users/@me/lists", nil, &lists); err != nil {
		return "", err
	}
	for _, list := range lists.Items {
		if list.Title == taskListTitle {
			return list.ID, nil
		}
	}

	var created struct {
		ID string `json:"id"`
	}
	body := map[string]string{"title": taskListTitle}
	if err := c.doJSON(ctx, user, http.MethodPost, c.tasksURL+"/users/@me/lists", body, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// CreateTasks mirrors CreateEvents for the Tasks API: unordered concurrent
// batch, per-item results, only credential failures abort.
func (c *Client) CreateTasks(ctx context.Context, user *model.User, taskListID string, items []model.ScheduleItem) ([]TaskResult, error) {
	if err := c.auth.EnsureValidToken(ctx, user, c.users); err != nil {
		return nil, err
	}

	results := make([]TaskResult, len(items))
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.createTask(ctx, user, taskListID, &items[i])
		}(i)
	}
	wg.Wait()
	return results, nil
}

func (c *Client) createTask(ctx context.Context, user *model.User, taskListID string, item *model.ScheduleItem) TaskResult {
	category, err := c.categories.FindByID(ctx, item.CategoryID)
	if err != nil {
		return TaskResult{Err: "category not found"}
	}

	scheduled := item.StartTime.In(userLocation(user))
	task := map[string]string{
		"title": category.Name + ": " + item.Title,
		"notes": item.Description + "\n\nScheduled: " + scheduled.Format("Mon, 02 Jan 2006 15:04"),
		"due":   item.StartTime.Format(time.RFC3339),
	}

	var created struct {
		ID string `json:"id"`
	}
	endpoint := c.tasksURL + "/lists/" + url.PathEscape(taskListID) + "/tasks"
	if err := c.doJSON(ctx, user, http.MethodPost, endpoint, task, &created); err != nil {
		return TaskResult{Err: err.Error()}
	}
	return TaskResult{Success: true, TaskID: created.ID}
}
