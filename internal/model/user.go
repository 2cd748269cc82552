package model

import "time"

// User is created on first Google sign-in and owns all planner data.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	GoogleID string `gorm:"uniqueIndex" json:"googleId"`
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Avatar   string `json:"avatar"`
	Timezone string `gorm:"default:UTC" json:"timezone"`

	// Optional Telegram notification target; zero means not linked.
	TelegramChatID int64 `gorm:"index" json:"telegramChatId"`

	Preferences Preferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`

	// Google Calendar/Tasks integration state. Tokens live on the user record
	// so every sync call builds its own client from them.
	GoogleConnected    bool       `gorm:"default:false" json:"googleConnected"`
	GoogleAccessToken  string     `json:"-"`
	GoogleRefreshToken string     `json:"-"`
	GoogleTokenExpiry  *time.Time `json:"-"`

	LastLoginAt time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Preferences drive schedule generation for the user.
type Preferences struct {
	PomodoroWork     int  `gorm:"default:25" json:"pomodoroWork"`
	PomodoroBreak    int  `gorm:"default:5" json:"pomodoroBreak"`
	DailyGoalMinutes int  `gorm:"default:120" json:"dailyGoalMinutes"`
	DaysToSchedule   int  `gorm:"default:7" json:"daysToSchedule"`
	SkipWeekends     bool `gorm:"default:false" json:"skipWeekends"`
}
