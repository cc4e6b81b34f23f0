package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment is one processed Stripe top-up. The unique index on the payment
// intent id is what makes webhook crediting idempotent.
type Payment struct {
	PaymentID             uuid.UUID       `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	StripePaymentIntentID string          `gorm:"column:stripe_payment_intent_id;uniqueIndex;not null" json:"stripe_payment_intent_id"`
	StripeEventID         string          `gorm:"column:stripe_event_id;not null" json:"stripe_event_id"`
	UserID                uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Amount                decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	AmountPaidCents       int             `gorm:"column:amount_paid_cents;not null" json:"amount_paid_cents"`
	Currency              string          `gorm:"column:currency;type:varchar(10);not null" json:"currency"`
	Status                string          `gorm:"column:status;type:varchar(30);not null" json:"status"`
	RawPaymentIntent      datatypes.JSON  `gorm:"column:raw_payment_intent;type:jsonb" json:"-"`
	CreatedAt             time.Time       `json:"createdAt"`
}

func (Payment) TableName() string {
	return "Payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}
