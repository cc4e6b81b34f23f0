package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProfitDistribution records one proportional payout across all holders of a
// property. PerTokenAmount is TotalAmount / tokens issued, truncated to 8
// decimal places; the truncation leftover is kept in Remainder and never
// paid out, so the sum of holder credits plus Remainder equals TotalAmount.
type ProfitDistribution struct {
	DistributionID uuid.UUID       `gorm:"column:distribution_id;type:uuid;primaryKey" json:"distribution_id"`
	PropertyID     uuid.UUID       `gorm:"column:property_id;type:uuid;not null;index" json:"property_id"`
	TotalAmount    decimal.Decimal `gorm:"column:total_amount;type:decimal(18,2);not null" json:"total_amount"`
	PerTokenAmount decimal.Decimal `gorm:"column:per_token_amount;type:decimal(18,8);not null" json:"per_token_amount"`
	TokensIssued   int64           `gorm:"column:tokens_issued;not null" json:"tokens_issued"`
	Remainder      decimal.Decimal `gorm:"column:remainder;type:decimal(18,8);not null;default:0" json:"remainder"`
	InitiatorID    uuid.UUID       `gorm:"column:initiator_id;type:uuid;not null" json:"initiator_id"`
	Notes          *string         `gorm:"column:notes" json:"notes"`
	DistributedAt  time.Time       `gorm:"column:distributed_at;not null" json:"distributed_at"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func (ProfitDistribution) TableName() string {
	return "ProfitDistributions"
}

func (d *ProfitDistribution) BeforeCreate(tx *gorm.DB) error {
	if d.DistributionID == uuid.Nil {
		d.DistributionID = uuid.New()
	}
	if d.DistributedAt.IsZero() {
		d.DistributedAt = time.Now()
	}
	return nil
}
