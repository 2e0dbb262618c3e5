package repositories

import (
	"context"
	"errors"
	"time"

	"bettrack/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*db_models.User, error)
	Insert(ctx context.Context, user *db_models.User) error
	Update(ctx context.Context, user *db_models.User) error

	// IncrementUsage bumps the counter in a single statement so that
	// concurrent extractions for the same user cannot lose an update.
	IncrementUsage(ctx context.Context, id uuid.UUID) error
	ResetUsage(ctx context.Context, id uuid.UUID, resetDate time.Time) error

	SetGoogleTokens(ctx context.Context, id uuid.UUID, accessToken, refreshToken string) error
	SetSheetLink(ctx context.Context, id uuid.UUID, spreadsheetID, spreadsheetURL string) error
	ClearSheetLink(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// ────────────────────────────────────────────────────────────────
// Read helpers return a nil model and nil error when no row exists.
// ────────────────────────────────────────────────────────────────

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepository) FindByGoogleID(ctx context.Context, googleID string) (*db_models.User, error) {
	return r.findOne(ctx, "google_id = ?", googleID)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg interface{}) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}

func (r *userRepository) ResetUsage(ctx context.Context, id uuid.UUID, resetDate time.Time) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"usage_count":      0,
			"usage_reset_date": resetDate,
		}).Error
}

func (r *userRepository) SetGoogleTokens(ctx context.Context, id uuid.UUID, accessToken, refreshToken string) error {
	updates := map[string]interface{}{
		"google_access_token": accessToken,
	}
	// Google omits the refresh token on re-consent; keep the old one.
	if refreshToken != "" {
		updates["google_refresh_token"] = refreshToken
	}
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *userRepository) SetSheetLink(ctx context.Context, id uuid.UUID, spreadsheetID, spreadsheetURL string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"spreadsheet_id":   spreadsheetID,
			"spreadsheet_url":  spreadsheetURL,
			"sheets_connected": true,
		}).Error
}

func (r *userRepository) ClearSheetLink(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"spreadsheet_id":   nil,
			"spreadsheet_url":  nil,
			"sheets_connected": false,
		}).Error
}
