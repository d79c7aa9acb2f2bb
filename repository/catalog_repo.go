package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/furnikart/FurniBargain/bargain"
	"github.com/furnikart/FurniBargain/models"
)

// CatalogRepository reads the storefront's product table. Only products
// flagged for bargaining are visible through this boundary.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetProduct(ctx context.Context, productID uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("bargain_enabled = ?", true).
		First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, bargain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}
