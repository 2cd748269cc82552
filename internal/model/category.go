package model

import "time"

// Category groups study sessions by subject (math, physics, etc.).
// Uniqueness of (user, name) among non-archived categories is enforced in the
// service layer; a plain unique index would block re-creating an archived name.
type Category struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index:idx_user_category_name" json:"userId"`
	Name       string    `gorm:"index:idx_user_category_name" json:"name"`
	Color      string    `gorm:"default:#4f46e5" json:"color"`
	Icon       string    `json:"icon,omitempty"`
	IsArchived bool      `gorm:"default:false" json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
