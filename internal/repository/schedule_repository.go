package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"study-planner/internal/model"
)

// ScheduleRepository persists generated schedules. A schedule's item list is
// fixed at creation; later writes touch only the schedule's own columns
// (lineage, active flag) or individual items (sync IDs, status).
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	if err := r.db.WithContext(ctx).Create(schedule).Error; err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

// FindActive returns the user's active schedule, or nil when there is none.
func (r *ScheduleRepository) FindActive(ctx context.Context, userID uint) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("generated_at DESC").
		First(&schedule).Error
	switch {
	case err == nil:
		return &schedule, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find active schedule: %w", err)
	}
}

// FindOwned looks a schedule up within one user's collection.
func (r *ScheduleRepository) FindOwned(ctx context.Context, userID, id uint) (*model.Schedule, error) {
	var schedule model.Schedule
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND id = ?", userID, id).
		First(&schedule).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

// History returns past schedules, newest first.
func (r *ScheduleRepository) History(ctx context.Context, userID uint, limit int) ([]model.Schedule, error) {
	var schedules []model.Schedule
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		Limit(limit).
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// ActiveSchedules returns every active schedule across users, items included.
func (r *ScheduleRepository) ActiveSchedules(ctx context.Context) ([]model.Schedule, error) {
	var schedules []model.Schedule
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("is_active = ?", true).
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// Save writes the schedule's own columns. Items are deliberately omitted;
// they change only through SaveItem.
func (r *ScheduleRepository) Save(ctx context.Context, schedule *model.Schedule) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(schedule).Error; err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

// SetActive is the sole writer of the is_active flag.
func (r *ScheduleRepository) SetActive(ctx context.Context, scheduleID uint, active bool) error {
	if err := r.db.WithContext(ctx).Model(&model.Schedule{}).
		Where("id = ?", scheduleID).
		Update("is_active", active).Error; err != nil {
		return fmt.Errorf("set schedule %d active=%t: %w", scheduleID, active, err)
	}
	return nil
}

// SaveItem persists a single item mutation: sync annotations, status
// transitions, or the link to the session that fulfilled it.
func (r *ScheduleRepository) SaveItem(ctx context.Context, item *model.ScheduleItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("save schedule item: %w", err)
	}
	return nil
}
