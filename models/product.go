package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the storefront catalog row the bargain service reads at
// activity-creation time. The catalog itself (pricing edits, stock,
// merchandising) is managed elsewhere; this service never writes it.
type Product struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Name              string          `json:"name"`
	ThumbnailURL      string          `json:"thumbnail_url"`
	Price             decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	BargainFloorPrice decimal.Decimal `gorm:"type:numeric(12,2)" json:"bargain_floor_price"`
	BargainEnabled    bool            `gorm:"default:false" json:"bargain_enabled"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}
