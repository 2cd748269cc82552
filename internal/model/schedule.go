package model

import "time"

// Schedule item priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Schedule item statuses.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusMissed     = "missed"
	StatusCancelled  = "cancelled"
)

// Schedule is a generated plan covering ValidFrom..ValidUntil. The item list
// is fixed at creation; items are only touched afterwards to attach Google
// IDs and record status transitions. At most one schedule per user is active;
// the flag is written exclusively through ScheduleRepository.SetActive.
type Schedule struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	UserID              uint           `gorm:"index:idx_schedule_user_active" json:"userId"`
	Items               []ScheduleItem `gorm:"foreignKey:ScheduleID" json:"items"`
	GeneratedAt         time.Time      `json:"generatedAt"`
	ValidFrom           time.Time      `json:"validFrom"`
	ValidUntil          time.Time      `json:"validUntil"`
	IsActive            bool           `gorm:"index:idx_schedule_user_active" json:"isActive"`
	TotalPlannedMinutes int            `json:"totalPlannedMinutes"`

	// Replan lineage: the schedule this one superseded, and why.
	ReplannedFrom   *uint  `json:"replannedFrom,omitempty"`
	ReplannedReason string `json:"replannedReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ScheduleItem is one planned, time-boxed study block for a single category.
// Items belong to their schedule and are not addressable on their own.
type ScheduleItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ScheduleID  uint      `gorm:"index" json:"scheduleId"`
	CategoryID  uint      `json:"categoryId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Duration    int       `json:"duration"` // minutes
	Mode        string    `gorm:"default:pomodoro" json:"mode"`
	Priority    string    `gorm:"default:medium" json:"priority"`
	Status      string    `gorm:"default:scheduled" json:"status"`

	GoogleEventID  *string `json:"googleEventId,omitempty"`
	GoogleTaskID   *string `json:"googleTaskId,omitempty"`
	StudySessionID *uint   `json:"studySessionId,omitempty"` // session that fulfilled this item
}
