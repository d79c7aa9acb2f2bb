package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/furnikart/FurniBargain/bargain"
	"github.com/furnikart/FurniBargain/models"
)

// ActivityRepository is the Postgres-backed activity record store.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, a *models.BargainActivity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ActivityRepository) Get(ctx context.Context, id uuid.UUID) (*models.BargainActivity, error) {
	var activity models.BargainActivity
	err := r.db.WithContext(ctx).First(&activity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, bargain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// UpdateStatus performs a guarded transition: the row must still hold the
// expected from status. The guard backs up the service's boundary at the
// database level, so even a misbehaving second process cannot resurrect a
// terminal activity.
func (r *ActivityRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ActivityStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.BargainActivity{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return bargain.ErrNotActive
	}
	return nil
}

func (r *ActivityRepository) ListDueForExpiry(ctx context.Context, now time.Time) ([]models.BargainActivity, error) {
	var due []models.BargainActivity
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at <= ?", models.ActivityActive, now).
		Find(&due).Error
	return due, err
}

func (r *ActivityRepository) List(ctx context.Context, filter bargain.ActivityFilter) ([]models.BargainActivity, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BargainActivity{})
	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	var activities []models.BargainActivity
	err := query.Order("created_at DESC").Limit(limit).Offset(filter.Offset).Find(&activities).Error
	return activities, total, err
}
