package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"study-planner/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertFromGoogle finds a user by email or creates one from the Google
// profile, storing the fresh OAuth tokens either way.
func (r *UserRepository) UpsertFromGoogle(ctx context.Context, googleID, email, name, avatar, accessToken, refreshToken string, tokenExpiry time.Time) (*model.User, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	err := db.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		user.GoogleConnected = true
		user.GoogleAccessToken = accessToken
		if refreshToken != "" {
			user.GoogleRefreshToken = refreshToken
		}
		user.GoogleTokenExpiry = &tokenExpiry
		user.LastLoginAt = time.Now()
		if err := db.Save(&user).Error; err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		return &user, nil
	case err == gorm.ErrRecordNotFound:
		user = model.User{
			GoogleID:           googleID,
			Email:              email,
			Name:               name,
			Avatar:             avatar,
			GoogleConnected:    true,
			GoogleAccessToken:  accessToken,
			GoogleRefreshToken: refreshToken,
			GoogleTokenExpiry:  &tokenExpiry,
			LastLoginAt:        time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return &user, nil
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Save persists in-place mutations, e.g. rotated OAuth tokens.
func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Disconnect drops the Google integration, clearing stored credentials.
func (r *UserRepository) Disconnect(ctx context.Context, userID uint) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"google_connected":     false,
			"google_access_token":  "",
			"google_refresh_token": "",
			"google_token_expiry":  nil,
		})
	if res.Error != nil {
		return fmt.Errorf("disconnect google: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
