package wallet

import (
	"context"
	"errors"

	"brickvest-backend/internal/ledger"
	"brickvest-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is the wallet engine: deposits and balance reads. Wallets are
// created lazily on first credit; every balance change writes exactly one
// WalletTransaction row in the same storage transaction.
type Service struct {
	DB *gorm.DB
}

// GetOrCreateForUpdate fetches the user's wallet inside tx with a row lock,
// creating a zero-balance wallet if none exists. Shared with the purchase
// and distribution engines so all balance mutations serialize per wallet.
func GetOrCreateForUpdate(tx *gorm.DB, userID uuid.UUID) (*models.Wallet, error) {
	var w models.Wallet
	err := ledger.LockForUpdate(tx).Where("user_id = ?", userID).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		w = models.Wallet{UserID: userID, Balance: decimal.Zero}
		if err := tx.Create(&w).Error; err != nil {
			return nil, err
		}
		return &w, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Credit increases the wallet balance inside tx and appends the paired
// transaction row. The record carries type and metadata; amount must be
// positive.
func Credit(tx *gorm.DB, w *models.Wallet, amount decimal.Decimal, record *models.WalletTransaction) error {
	w.Balance = w.Balance.Add(amount)
	if err := tx.Model(w).Update("balance", w.Balance).Error; err != nil {
		return err
	}
	record.WalletID = w.WalletID
	record.Amount = amount
	return tx.Create(record).Error
}

// Debit decreases the wallet balance inside tx and appends the paired
// transaction row. The caller must have checked sufficiency under the lock.
func Debit(tx *gorm.DB, w *models.Wallet, amount decimal.Decimal, record *models.WalletTransaction) error {
	w.Balance = w.Balance.Sub(amount)
	if err := tx.Model(w).Update("balance", w.Balance).Error; err != nil {
		return err
	}
	record.WalletID = w.WalletID
	record.Amount = amount
	return tx.Create(record).Error
}

// Deposit credits amount to the user's wallet, lazily creating it, and
// returns the resulting balance. The increment and the ledger row commit as
// one unit.
func (s *Service) Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, meta models.DepositMeta) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ledger.ErrInvalidAmount
	}

	var newBalance decimal.Decimal
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := GetOrCreateForUpdate(tx, userID)
		if err != nil {
			return err
		}
		record := &models.WalletTransaction{
			Type:     models.TxTypeDeposit,
			Metadata: models.MarshalMeta(meta),
			Status:   models.TxStatusCompleted,
		}
		if err := Credit(tx, w, amount, record); err != nil {
			return err
		}
		newBalance = w.Balance
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	log.Info().Str("user_id", userID.String()).Str("amount", amount.String()).Str("balance", newBalance.String()).Msg("Wallet deposit")
	return newBalance, nil
}

// Balance returns the user's wallet. ErrWalletNotFound when none exists yet.
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	var w models.Wallet
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}

// Transactions returns the user's ledger entries, newest first.
func (s *Service) Transactions(ctx context.Context, userID uuid.UUID) ([]models.WalletTransaction, error) {
	w, err := s.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	var txs []models.WalletTransaction
	if err := s.DB.WithContext(ctx).
		Where("wallet_id = ?", w.WalletID).
		Order("created_at DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
