package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/furnikart/FurniBargain/bargain"
	"github.com/furnikart/FurniBargain/models"
)

// ContributionRepository is the Postgres-backed append-only ledger.
type ContributionRepository struct {
	db *gorm.DB
}

func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

func (r *ContributionRepository) Append(ctx context.Context, c *models.Contribution) error {
	if !c.Amount.IsPositive() {
		return bargain.ErrInvalidAmount
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContributionRepository) SumFor(ctx context.Context, activityID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Contribution{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("activity_id = ?", activityID).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func (r *ContributionRepository) ListFor(ctx context.Context, activityID uuid.UUID, limit, offset int) ([]models.Contribution, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Contribution{}).Where("activity_id = ?", activityID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 10
	}
	var contributions []models.Contribution
	err := query.Order("contributed_at ASC, id ASC").Limit(limit).Offset(offset).Find(&contributions).Error
	return contributions, total, err
}

func (r *ContributionRepository) CountForParticipant(ctx context.Context, activityID uuid.UUID, participantID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Contribution{}).
		Where("activity_id = ? AND participant_id = ?", activityID, participantID).
		Count(&count).Error
	return count, err
}
