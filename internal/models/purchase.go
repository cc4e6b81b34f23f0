package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TokenPurchase records one buy. TotalCost is priced at purchase time and
// never re-derived from the property's current price.
type TokenPurchase struct {
	PurchaseID        uuid.UUID       `gorm:"column:purchase_id;type:uuid;primaryKey" json:"purchase_id"`
	BuyerID           uuid.UUID       `gorm:"column:buyer_id;type:uuid;not null;index;constraint:OnDelete:CASCADE" json:"buyer_id"`
	PropertyID        uuid.UUID       `gorm:"column:property_id;type:uuid;not null;index;constraint:OnDelete:CASCADE" json:"property_id"`
	Tokens            int64           `gorm:"column:tokens;not null;check:tokens > 0" json:"tokens"`
	TotalCost         decimal.Decimal `gorm:"column:total_cost;type:decimal(18,2);not null" json:"total_cost"`
	CertificateIssued bool            `gorm:"column:certificate_issued;not null;default:false" json:"certificate_issued"`
	PurchasedAt       time.Time       `gorm:"column:purchased_at;not null" json:"purchased_at"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (TokenPurchase) TableName() string {
	return "TokenPurchases"
}

func (p *TokenPurchase) BeforeCreate(tx *gorm.DB) error {
	if p.PurchaseID == uuid.Nil {
		p.PurchaseID = uuid.New()
	}
	if p.PurchasedAt.IsZero() {
		p.PurchasedAt = time.Now()
	}
	return nil
}

// Certificate evidences a purchase. Title and token count are snapshots;
// DocumentURL is attached later by the external rendering collaborator.
type Certificate struct {
	CertificateID     uuid.UUID      `gorm:"column:certificate_id;type:uuid;primaryKey" json:"certificate_id"`
	OwnerID           uuid.UUID      `gorm:"column:owner_id;type:uuid;not null;index" json:"owner_id"`
	PurchaseID        uuid.UUID      `gorm:"column:purchase_id;type:uuid;not null;uniqueIndex;constraint:OnDelete:CASCADE" json:"purchase_id"`
	CertificateNumber string         `gorm:"column:certificate_number;uniqueIndex;not null" json:"certificate_number"`
	PropertyTitle     string         `gorm:"column:property_title;not null" json:"property_title"`
	TokensOwned       int64          `gorm:"column:tokens_owned;not null" json:"tokens_owned"`
	IssuedAt          time.Time      `gorm:"column:issued_at;not null" json:"issued_at"`
	DocumentURL       *string        `gorm:"column:document_url" json:"document_url"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Certificate) TableName() string {
	return "Certificates"
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.CertificateID == uuid.Nil {
		c.CertificateID = uuid.New()
	}
	if c.IssuedAt.IsZero() {
		c.IssuedAt = time.Now()
	}
	return nil
}
