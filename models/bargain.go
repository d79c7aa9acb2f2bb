package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActivityStatus is the lifecycle state of a bargain activity.
type ActivityStatus string

const (
	ActivityActive    ActivityStatus = "ACTIVE"
	ActivityDealt     ActivityStatus = "DEALT"
	ActivityFullyCut  ActivityStatus = "FULLY_CUT"
	ActivityExpired   ActivityStatus = "EXPIRED"
	ActivityCancelled ActivityStatus = "CANCELLED"
)

// Terminal reports whether no further transitions are allowed out of s.
func (s ActivityStatus) Terminal() bool {
	switch s {
	case ActivityDealt, ActivityFullyCut, ActivityExpired, ActivityCancelled:
		return true
	}
	return false
}

// BargainActivity is one group price-cutting campaign for a single product.
// The product snapshot and price terms are captured at creation and never
// updated; only Status (and UpdatedAt) change afterwards.
type BargainActivity struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID            uint            `gorm:"not null" json:"product_id"`
	ProductName          string          `json:"product_name"`
	ProductThumbnail     string          `json:"product_thumbnail"`
	OriginPrice          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"origin_price"`
	TargetPrice          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"target_price"`
	DealThresholdPercent int             `gorm:"not null" json:"deal_threshold_percent"`
	CreatedBy            string          `gorm:"index;not null" json:"created_by"`
	Status               ActivityStatus  `gorm:"type:varchar(16);index;not null" json:"status"`
	CreatedAt            time.Time       `json:"created_at"`
	ExpiresAt            time.Time       `gorm:"index" json:"expires_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// Contribution is one accepted price cut by one participant. Rows are append
// only; the sum over an activity's rows is the source of truth for how much
// has been cut.
type Contribution struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ActivityID    uuid.UUID       `gorm:"type:uuid;index:idx_contributions_activity_participant,priority:1;not null" json:"activity_id"`
	ParticipantID string          `gorm:"index:idx_contributions_activity_participant,priority:2;not null" json:"participant_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	ContributedAt time.Time       `gorm:"index" json:"contributed_at"`
}
