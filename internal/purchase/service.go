package purchase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"brickvest-backend/internal/ledger"
	"brickvest-backend/internal/models"
	"brickvest-backend/internal/wallet"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is the purchase engine: the atomic buy-tokens workflow.
type Service struct {
	DB *gorm.DB
}

// Receipt is returned from a successful purchase.
type Receipt struct {
	PurchaseID        uuid.UUID       `json:"purchase_id"`
	CertificateID     uuid.UUID       `json:"certificate_id"`
	CertificateNumber string          `json:"certificate_number"`
	Tokens            int64           `json:"tokens"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	NewBalance        decimal.Decimal `json:"new_balance"`
}

// PurchaseTokens buys tokenCount tokens of the property for the buyer.
// The whole workflow runs in one storage transaction: price snapshot,
// supply bound check, wallet debit, purchase row, ledger row, tokens_sold
// increment and certificate issuance all commit or all roll back.
// The purchase is priced at the snapshotted per-token price; later price
// changes never affect it.
func (s *Service) PurchaseTokens(ctx context.Context, buyerID, propertyID uuid.UUID, tokenCount int64) (*Receipt, error) {
	if tokenCount <= 0 {
		return nil, ledger.ErrInvalidAmount
	}

	var receipt Receipt
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var property models.Property
		err := ledger.LockForUpdate(tx).
			Where("property_id = ? AND status = ?", propertyID, models.PropertyStatusActive).
			First(&property).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ledger.ErrPropertyUnavailable
		}
		if err != nil {
			return err
		}

		if property.TokensSold+tokenCount > property.TotalTokens {
			return ledger.ErrExceedsAvailable
		}

		cost := property.PricePerToken.Mul(decimal.NewFromInt(tokenCount))

		w, err := wallet.GetOrCreateForUpdate(tx, buyerID)
		if err != nil {
			return err
		}
		if w.Balance.LessThan(cost) {
			return ledger.ErrInsufficientFunds
		}

		p := models.TokenPurchase{
			BuyerID:    buyerID,
			PropertyID: propertyID,
			Tokens:     tokenCount,
			TotalCost:  cost,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		record := &models.WalletTransaction{
			Type:       models.TxTypePurchase,
			PurchaseID: &p.PurchaseID,
			PropertyID: &propertyID,
			Metadata:   models.MarshalMeta(models.PurchaseMeta{Tokens: tokenCount}),
			Status:     models.TxStatusCompleted,
		}
		if err := wallet.Debit(tx, w, cost, record); err != nil {
			return err
		}

		if err := tx.Model(&property).Update("tokens_sold", property.TokensSold+tokenCount).Error; err != nil {
			return err
		}

		cert := models.Certificate{
			OwnerID:           buyerID,
			PurchaseID:        p.PurchaseID,
			CertificateNumber: newCertificateNumber(),
			PropertyTitle:     property.Title,
			TokensOwned:       tokenCount,
		}
		if err := tx.Create(&cert).Error; err != nil {
			return err
		}

		receipt = Receipt{
			PurchaseID:        p.PurchaseID,
			CertificateID:     cert.CertificateID,
			CertificateNumber: cert.CertificateNumber,
			Tokens:            tokenCount,
			TotalCost:         cost,
			NewBalance:        w.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("buyer_id", buyerID.String()).
		Str("property_id", propertyID.String()).
		Int64("tokens", receipt.Tokens).
		Str("cost", receipt.TotalCost.String()).
		Msg("Tokens purchased")
	return &receipt, nil
}

// MyPurchases lists the buyer's purchases, newest first.
func (s *Service) MyPurchases(ctx context.Context, buyerID uuid.UUID) ([]models.TokenPurchase, error) {
	var purchases []models.TokenPurchase
	if err := s.DB.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("purchased_at DESC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

func newCertificateNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("CERT-%d-%s", time.Now().UnixMilli(), suffix)
}
