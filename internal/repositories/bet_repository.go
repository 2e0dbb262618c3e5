package repositories

import (
	"context"

	"bettrack/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BetRepository interface {
	Insert(ctx context.Context, bet *db_models.Bet) error

	// HistoryPage returns one page ordered by processed_at descending,
	// plus the exact total for the user so the caller can derive page
	// counts independent of the window.
	HistoryPage(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Bet, int64, error)

	MarkSynced(ctx context.Context, betID uuid.UUID) error
}

type betRepository struct {
	db *gorm.DB
}

func NewBetRepository(db *gorm.DB) BetRepository {
	return &betRepository{db: db}
}

func (r *betRepository) Insert(ctx context.Context, bet *db_models.Bet) error {
	return r.db.WithContext(ctx).Create(bet).Error
}

func (r *betRepository) HistoryPage(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Bet, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Bet{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var bets []db_models.Bet
	offset := (page - 1) * pageSize
	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("processed_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&bets).Error
	if err != nil {
		return nil, 0, err
	}
	return bets, total, nil
}

func (r *betRepository) MarkSynced(ctx context.Context, betID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Bet{}).
		Where("id = ?", betID).
		UpdateColumn("synced_to_sheets", true).Error
}
