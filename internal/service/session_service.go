package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"study-planner/internal/model"
	"study-planner/internal/repository"
)

// ErrValidation marks user-fixable input errors so the HTTP layer can answer 400.
var ErrValidation = errors.New("invalid input")

// SessionInput carries everything the timer reports when it ends.
type SessionInput struct {
	CategoryID      uint      `json:"categoryId"`
	Mode            string    `json:"mode"`
	PlannedDuration int       `json:"plannedDuration"`
	ActualDuration  int       `json:"actualDuration"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Date            string    `json:"date"`
	Completed       bool      `json:"completed"`
	StopReason      string    `json:"stopReason"`
	PomodoroCycle   *int      `json:"pomodoroCycle"`
	Source          string    `json:"source"`
}

// SessionService records finished study sessions.
type SessionService struct {
	sessions   *repository.SessionRepository
	categories *repository.CategoryRepository
	schedules  *repository.ScheduleRepository
}

func NewSessionService(sessions *repository.SessionRepository, categories *repository.CategoryRepository, schedules *repository.ScheduleRepository) *SessionService {
	return &SessionService{sessions: sessions, categories: categories, schedules: schedules}
}

// Create validates and records a finished timer run. Sessions are immutable
// once created; there is no update path.
func (s *SessionService) Create(ctx context.Context, userID uint, input SessionInput) (*model.StudySession, error) {
	if err := validateSessionInput(input); err != nil {
		return nil, err
	}

	category, err := s.categories.FindOwned(ctx, userID, input.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category does not belong to user", ErrValidation)
		}
		return nil, err
	}
	if category.IsArchived {
		return nil, fmt.Errorf("%w: category is archived", ErrValidation)
	}

	session := model.StudySession{
		UserID:          userID,
		CategoryID:      input.CategoryID,
		Mode:            input.Mode,
		PlannedDuration: input.PlannedDuration,
		ActualDuration:  input.ActualDuration,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Date:            input.Date,
		Completed:       input.Completed,
		StopReason:      input.StopReason,
		PomodoroCycle:   input.PomodoroCycle,
		Source:          input.Source,
	}
	if err := s.sessions.Create(ctx, &session); err != nil {
		return nil, err
	}

	if session.Source == model.SourceAutoScheduled {
		s.fulfil(ctx, &session)
	}
	return &session, nil
}

// ListRecent exposes the analysis window for inspection.
func (s *SessionService) ListRecent(ctx context.Context, userID uint, limit int) ([]model.StudySession, error) {
	return s.sessions.ListRecent(ctx, userID, limit)
}

// ListByDate returns one calendar day's sessions in start order.
func (s *SessionService) ListByDate(ctx context.Context, userID uint, date string) ([]model.StudySession, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return s.sessions.ListByDate(ctx, userID, date)
}

func validateSessionInput(input SessionInput) error {
	switch {
	case input.CategoryID == 0:
		return fmt.Errorf("%w: categoryId is required", ErrValidation)
	case input.Mode != model.ModePomodoro && input.Mode != model.ModeStopwatch:
		return fmt.Errorf("%w: mode must be pomodoro or stopwatch", ErrValidation)
	case input.PlannedDuration < 0 || input.ActualDuration < 0:
		return fmt.Errorf("%w: durations must be non-negative", ErrValidation)
	case input.ActualDuration > input.PlannedDuration:
		return fmt.Errorf("%w: actualDuration cannot exceed plannedDuration", ErrValidation)
	case input.StartTime.IsZero() || input.EndTime.IsZero():
		return fmt.Errorf("%w: startTime and endTime are required", ErrValidation)
	case !input.StartTime.Before(input.EndTime):
		return fmt.Errorf("%w: startTime must be before endTime", ErrValidation)
	case input.Date == "":
		return fmt.Errorf("%w: date is required", ErrValidation)
	case input.StartTime.Format("2006-01-02") != input.Date:
		return fmt.Errorf("%w: date must match startTime (YYYY-MM-DD)", ErrValidation)
	}

	switch input.StopReason {
	case model.StopTimeUp, model.StopManual, model.StopAppClosed:
	default:
		return fmt.Errorf("%w: unknown stopReason %q", ErrValidation, input.StopReason)
	}

	switch input.Source {
	case model.SourceManual, model.SourceAutoScheduled:
	default:
		return fmt.Errorf("%w: unknown source %q", ErrValidation, input.Source)
	}
	return nil
}

// fulfil links an auto-scheduled session back to the schedule item it
// satisfies, marking the item completed. Linking is best effort.
func (s *SessionService) fulfil(ctx context.Context, session *model.StudySession) {
	schedule, err := s.schedules.FindActive(ctx, session.UserID)
	if err != nil || schedule == nil {
		return
	}

	for i := range schedule.Items {
		item := &schedule.Items[i]
		if item.CategoryID != session.CategoryID {
			continue
		}
		if item.Status != model.StatusScheduled && item.Status != model.StatusInProgress {
			continue
		}
		if session.StartTime.After(item.EndTime) || session.EndTime.Before(item.StartTime) {
			continue
		}

		item.Status = model.StatusCompleted
		item.StudySessionID = &session.ID
		if err := s.schedules.SaveItem(ctx, item); err != nil {
			log.Printf("link session %d to schedule item %d: %v", session.ID, item.ID, err)
		}
		return
	}
}
