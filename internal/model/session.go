package model

import "time"

// Study session modes.
const (
	ModePomodoro  = "pomodoro"
	ModeStopwatch = "stopwatch"
)

// Reasons a timer stopped.
const (
	StopTimeUp    = "time_up"
	StopManual    = "manual_stop"
	StopAppClosed = "app_closed"
)

// How a session came to be.
const (
	SourceManual        = "manual"
	SourceAutoScheduled = "auto_scheduled"
)

// StudySession is recorded once, when a timer ends. There is no update path.
type StudySession struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index" json:"userId"`
	CategoryID      uint      `gorm:"index" json:"categoryId"`
	Category        *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Mode            string    `json:"mode"`
	PlannedDuration int       `json:"plannedDuration"` // minutes
	ActualDuration  int       `json:"actualDuration"`  // minutes
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Date            string    `gorm:"index" json:"date"` // YYYY-MM-DD, calendar day of StartTime
	Completed       bool      `json:"completed"`
	StopReason      string    `gorm:"default:time_up" json:"stopReason"`
	PomodoroCycle   *int      `json:"pomodoroCycle,omitempty"`
	Source          string    `gorm:"default:manual;index" json:"source"`
	CreatedAt       time.Time `json:"createdAt"`
}
