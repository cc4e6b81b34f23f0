package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Wallet transaction types. Amounts are always positive; the type carries
// the sign (deposit/profit/refund credit, withdrawal/purchase debit).
const (
	TxTypeDeposit    = "deposit"
	TxTypeWithdrawal = "withdrawal"
	TxTypePurchase   = "purchase"
	TxTypeProfit     = "profit"
	TxTypeRefund     = "refund"
	TxTypeAdjustment = "adjustment"
)

const TxStatusCompleted = "completed"

// Wallet is the per-user custodial balance. One wallet per user, created
// lazily on first deposit or credit. Invariant: balance >= 0, and every
// balance change is paired with exactly one WalletTransaction row.
type Wallet struct {
	WalletID  uuid.UUID       `gorm:"column:wallet_id;type:uuid;primaryKey" json:"wallet_id"`
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"user_id"`
	Balance   decimal.Decimal `gorm:"column:balance;type:decimal(18,2);not null;default:0;check:balance >= 0" json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Wallet) TableName() string {
	return "Wallets"
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.WalletID == uuid.Nil {
		w.WalletID = uuid.New()
	}
	return nil
}

// WalletTransaction is an append-only ledger entry. Rows are never updated
// or deleted; the log must reconcile exactly with wallet balance deltas.
type WalletTransaction struct {
	TxID           uuid.UUID       `gorm:"column:tx_id;type:uuid;primaryKey" json:"tx_id"`
	WalletID       uuid.UUID       `gorm:"column:wallet_id;type:uuid;not null;index;constraint:OnDelete:CASCADE" json:"wallet_id"`
	Type           string          `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null;check:amount > 0" json:"amount"`
	PurchaseID     *uuid.UUID      `gorm:"column:purchase_id;type:uuid" json:"purchase_id"`
	PropertyID     *uuid.UUID      `gorm:"column:property_id;type:uuid" json:"property_id"`
	DistributionID *uuid.UUID      `gorm:"column:distribution_id;type:uuid" json:"distribution_id"`
	Metadata       datatypes.JSON  `gorm:"column:metadata;type:jsonb" json:"metadata"`
	Status         string          `gorm:"column:status;type:varchar(20);not null;default:'completed'" json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func (WalletTransaction) TableName() string {
	return "WalletTransactions"
}

func (t *WalletTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.TxID == uuid.Nil {
		t.TxID = uuid.New()
	}
	return nil
}

// Typed metadata variants per transaction type. The column stays jsonb but
// every writer goes through one of these shapes instead of an open map.

// DepositMeta annotates deposit rows with their funding source.
type DepositMeta struct {
	Method          string `json:"method,omitempty"`
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
}

// PurchaseMeta records how many tokens a purchase debit paid for.
type PurchaseMeta struct {
	Tokens int64 `json:"tokens"`
}

// ProfitMeta ties a profit credit back to its distribution.
type ProfitMeta struct {
	DistributionID uuid.UUID       `json:"distribution_id"`
	PerToken       decimal.Decimal `json:"per_token"`
	Tokens         int64           `json:"tokens"`
}

// MarshalMeta serializes a typed metadata variant for the jsonb column.
func MarshalMeta(meta interface{}) datatypes.JSON {
	if meta == nil {
		return nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// DecodeMeta unmarshals the metadata column into the given variant.
func (t *WalletTransaction) DecodeMeta(out interface{}) error {
	if len(t.Metadata) == 0 {
		return nil
	}
	return json.Unmarshal(t.Metadata, out)
}
