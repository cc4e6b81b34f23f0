package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PropertyStatusActive   = "active"
	PropertyStatusInactive = "inactive"
)

// Property is a listed asset sold as integer token fractions.
// Invariant: 0 <= tokens_sold <= total_tokens.
type Property struct {
	PropertyID    uuid.UUID       `gorm:"column:property_id;type:uuid;primaryKey" json:"property_id"`
	Title         string          `gorm:"column:title;not null" json:"title"`
	Description   *string         `gorm:"column:description" json:"description"`
	LocationCity  string          `gorm:"column:location_city" json:"location_city"`
	LocationState string          `gorm:"column:location_state" json:"location_state"`
	TotalTokens   int64           `gorm:"column:total_tokens;not null;check:total_tokens >= 0" json:"total_tokens"`
	TokensSold    int64           `gorm:"column:tokens_sold;not null;default:0;check:tokens_sold >= 0" json:"tokens_sold"`
	PricePerToken decimal.Decimal `gorm:"column:price_per_token;type:decimal(18,2);not null" json:"price_per_token"`
	Status        string          `gorm:"column:status;type:varchar(20);not null;default:'active'" json:"status"`
	Verified      bool            `gorm:"column:verified;not null;default:false" json:"verified"`
	SellerID      *uuid.UUID      `gorm:"column:seller_id;type:uuid" json:"seller_id"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Property) TableName() string {
	return "Properties"
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.PropertyID == uuid.Nil {
		p.PropertyID = uuid.New()
	}
	return nil
}

// TokensRemaining is the unsold share of the supply.
func (p *Property) TokensRemaining() int64 {
	return p.TotalTokens - p.TokensSold
}
