package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"study-planner/internal/model"
)

// SessionRepository stores finished study sessions. Sessions are written once
// at timer end and never updated.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.StudySession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create study session: %w", err)
	}
	return nil
}

// ListRecent returns the newest sessions first with categories resolved,
// bounded by limit. This is the history window pattern analysis runs over.
func (r *SessionRepository) ListRecent(ctx context.Context, userID uint, limit int) ([]model.StudySession, error) {
	var sessions []model.StudySession
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionRepository) ListByDate(ctx context.Context, userID uint, date string) ([]model.StudySession, error) {
	var sessions []model.StudySession
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND date = ?", userID, date).
		Order("start_time ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
