package distribution

import (
	"context"
	"errors"

	"brickvest-backend/internal/constants"
	"brickvest-backend/internal/ledger"
	"brickvest-backend/internal/models"
	"brickvest-backend/internal/roles"
	"brickvest-backend/internal/wallet"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// perTokenScale is the truncation precision for the per-token amount.
// The truncation leftover is recorded on the distribution row and never
// paid out, so the sum of holder credits can never exceed the total.
const perTokenScale = 8

// Service is the distribution engine: proportional profit payout across all
// holders of a property.
type Service struct {
	DB    *gorm.DB
	Roles *roles.Service
}

// Result summarizes a committed distribution.
type Result struct {
	DistributionID uuid.UUID       `json:"distribution_id"`
	TokensIssued   int64           `json:"tokens_issued"`
	PerTokenAmount decimal.Decimal `json:"per_token_amount"`
	Remainder      decimal.Decimal `json:"remainder"`
	HoldersPaid    int             `json:"holders_paid"`
}

type holderRow struct {
	BuyerID uuid.UUID
	Tokens  int64
}

// DistributeProfit pays totalAmount proportionally to every holder of the
// property. Initiator must be an admin, or a verified seller who owns the
// property. The distribution row and every holder credit/ledger pair commit
// as one transaction; a partial payout is never observable.
func (s *Service) DistributeProfit(ctx context.Context, initiatorID, propertyID uuid.UUID, totalAmount decimal.Decimal, notes *string) (*Result, error) {
	if !totalAmount.IsPositive() {
		return nil, ledger.ErrInvalidAmount
	}

	var property models.Property
	err := s.DB.WithContext(ctx).Where("property_id = ?", propertyID).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ledger.ErrPropertyUnavailable
	}
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, initiatorID, &property); err != nil {
		return nil, err
	}

	var result Result
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var holders []holderRow
		if err := tx.Model(&models.TokenPurchase{}).
			Select("buyer_id, SUM(tokens) AS tokens").
			Where("property_id = ?", propertyID).
			Group("buyer_id").
			Order("buyer_id").
			Scan(&holders).Error; err != nil {
			return err
		}

		var tokensIssued int64
		for _, h := range holders {
			tokensIssued += h.Tokens
		}
		if tokensIssued == 0 {
			return ledger.ErrNoTokensIssued
		}

		perToken := totalAmount.Div(decimal.NewFromInt(tokensIssued)).Truncate(perTokenScale)
		remainder := totalAmount.Sub(perToken.Mul(decimal.NewFromInt(tokensIssued)))

		dist := models.ProfitDistribution{
			PropertyID:     propertyID,
			TotalAmount:    totalAmount,
			PerTokenAmount: perToken,
			TokensIssued:   tokensIssued,
			Remainder:      remainder,
			InitiatorID:    initiatorID,
			Notes:          notes,
		}
		if err := tx.Create(&dist).Error; err != nil {
			return err
		}

		for _, h := range holders {
			w, err := wallet.GetOrCreateForUpdate(tx, h.BuyerID)
			if err != nil {
				return err
			}
			credit := perToken.Mul(decimal.NewFromInt(h.Tokens))
			record := &models.WalletTransaction{
				Type:           models.TxTypeProfit,
				PropertyID:     &propertyID,
				DistributionID: &dist.DistributionID,
				Metadata: models.MarshalMeta(models.ProfitMeta{
					DistributionID: dist.DistributionID,
					PerToken:       perToken,
					Tokens:         h.Tokens,
				}),
				Status: models.TxStatusCompleted,
			}
			if err := wallet.Credit(tx, w, credit, record); err != nil {
				return err
			}
		}

		result = Result{
			DistributionID: dist.DistributionID,
			TokensIssued:   tokensIssued,
			PerTokenAmount: perToken,
			Remainder:      remainder,
			HoldersPaid:    len(holders),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("property_id", propertyID.String()).
		Str("distribution_id", result.DistributionID.String()).
		Str("total", totalAmount.String()).
		Int("holders", result.HoldersPaid).
		Msg("Profit distributed")
	return &result, nil
}

// ForProperty lists past distributions for a property, newest first.
func (s *Service) ForProperty(ctx context.Context, propertyID uuid.UUID) ([]models.ProfitDistribution, error) {
	var dists []models.ProfitDistribution
	if err := s.DB.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("distributed_at DESC").
		Find(&dists).Error; err != nil {
		return nil, err
	}
	return dists, nil
}

func (s *Service) authorize(ctx context.Context, initiatorID uuid.UUID, property *models.Property) error {
	isAdmin, err := s.Roles.HasRole(ctx, initiatorID, constants.Admin)
	if err != nil {
		return err
	}
	if isAdmin {
		return nil
	}
	isSeller, err := s.Roles.HasRole(ctx, initiatorID, constants.VerifiedSeller)
	if err != nil {
		return err
	}
	if isSeller && property.SellerID != nil && *property.SellerID == initiatorID {
		return nil
	}
	return ledger.ErrUnauthorized
}
