package purchase

import (
	"context"
	"testing"

	"brickvest-backend/internal/ledger"
	"brickvest-backend/internal/models"
	"brickvest-backend/internal/wallet"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPurchaseTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Property{}, &models.Wallet{}, &models.WalletTransaction{},
		&models.TokenPurchase{}, &models.Certificate{},
	))
	return &Service{DB: db}, db
}

func createProperty(t *testing.T, db *gorm.DB, total, sold int64, price string, status string) *models.Property {
	p := models.Property{
		Title:         "Marina Heights",
		TotalTokens:   total,
		TokensSold:    sold,
		PricePerToken: decimal.RequireFromString(price),
		Status:        status,
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func fundWallet(t *testing.T, db *gorm.DB, userID uuid.UUID, amount string) {
	svc := &wallet.Service{DB: db}
	_, err := svc.Deposit(context.Background(), userID, decimal.RequireFromString(amount), models.DepositMeta{Method: "manual"})
	require.NoError(t, err)
}

func TestPurchaseTokens_Success(t *testing.T) {
	svc, db := setupPurchaseTest(t)
	buyer := uuid.New()
	prop := createProperty(t, db, 1000, 0, "50", models.PropertyStatusActive)
	fundWallet(t, db, buyer, "500")

	receipt, err := svc.PurchaseTokens(context.Background(), buyer, prop.PropertyID, 3)
	require.NoError(t, err)
	assert.True(t, receipt.TotalCost.Equal(decimal.NewFromInt(150)))
	assert.True(t, receipt.NewBalance.Equal(decimal.NewFromInt(350)))

	// tokens_sold incremented by exactly n
	var got models.Property
	require.NoError(t, db.First(&got, "property_id = ?", prop.PropertyID).Error)
	assert.Equal(t, int64(3), got.TokensSold)

	// exactly one purchase, one certificate, one purchase ledger row
	var purchases []models.TokenPurchase
	require.NoError(t, db.Find(&purchases).Error)
	require.Len(t, purchases, 1)
	assert.Equal(t, buyer, purchases[0].BuyerID)
	assert.True(t, purchases[0].TotalCost.Equal(decimal.NewFromInt(150)))
	assert.False(t, purchases[0].CertificateIssued)

	var certs []models.Certificate
	require.NoError(t, db.Find(&certs).Error)
	require.Len(t, certs, 1)
	assert.Equal(t, purchases[0].PurchaseID, certs[0].PurchaseID)
	assert.Equal(t, "Marina Heights", certs[0].PropertyTitle)
	assert.Equal(t, int64(3), certs[0].TokensOwned)
	assert.NotEmpty(t, certs[0].CertificateNumber)

	var txs []models.WalletTransaction
	require.NoError(t, db.Where("type = ?", models.TxTypePurchase).Find(&txs).Error)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(150)))
	require.NotNil(t, txs[0].PurchaseID)
	assert.Equal(t, purchases[0].PurchaseID, *txs[0].PurchaseID)

	var meta models.PurchaseMeta
	require.NoError(t, txs[0].DecodeMeta(&meta))
	assert.Equal(t, int64(3), meta.Tokens)
}

func TestPurchaseTokens_InsufficientFundsLeavesStateUntouched(t *testing.T) {
	svc, db := setupPurchaseTest(t)
	buyer := uuid.New()
	prop := createProperty(t, db, 1000, 0, "50", models.PropertyStatusActive)
	fundWallet(t, db, buyer, "100")

	// cost 150 > balance 100
	_, err := svc.PurchaseTokens(context.Background(), buyer, prop.PropertyID, 3)
	assert.Equal(t, ledger.ErrInsufficientFunds, err)

	var w models.Wallet
	require.NoError(t, db.Where("user_id = ?", buyer).First(&w).Error)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(100)))

	var got models.Property
	require.NoError(t, db.First(&got, "property_id = ?", prop.PropertyID).Error)
	assert.Equal(t, int64(0), got.TokensSold)

	var purchaseCount, certCount int64
	db.Model(&models.TokenPurchase{}).Count(&purchaseCount)
	db.Model(&models.Certificate{}).Count(&certCount)
	assert.Equal(t, int64(0), purchaseCount)
	assert.Equal(t, int64(0), certCount)

	// only the funding deposit is in the log
	var txCount int64
	db.Model(&models.WalletTransaction{}).Count(&txCount)
	assert.Equal(t, int64(1), txCount)
}

func TestPurchaseTokens_PropertyUnavailable(t *testing.T) {
	svc, db := setupPurchaseTest(t)
	buyer := uuid.New()
	fundWallet(t, db, buyer, "1000")

	// nonexistent property
	_, err := svc.PurchaseTokens(context.Background(), buyer, uuid.New(), 1)
	assert.Equal(t, ledger.ErrPropertyUnavailable, err)

	// inactive property
	inactive := createProperty(t, db, 100, 0, "10", models.PropertyStatusInactive)
	_, err = svc.PurchaseTokens(context.Background(), buyer, inactive.PropertyID, 1)
	assert.Equal(t, ledger.ErrPropertyUnavailable, err)

	var w models.Wallet
	require.NoError(t, db.Where("user_id = ?", buyer).First(&w).Error)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(1000)))
}

func TestPurchaseTokens_InvalidCount(t *testing.T) {
	svc, db := setupPurchaseTest(t)
	prop := createProperty(t, db, 100, 0, "10", models.PropertyStatusActive)

	_, err := svc.PurchaseTokens(context.Background(), uuid.New(), prop.PropertyID, 0)
	assert.Equal(t, ledger.ErrInvalidAmount, err)
	_, err = svc.PurchaseTokens(context.Background(), uuid.New(), prop.PropertyID, -4)
	assert.Equal(t, ledger.ErrInvalidAmount, err)
}

func TestPurchaseTokens_ExceedsAvailable(t *testing.T) {
	svc, db := setupPurchaseTest(t)
	buyer := uuid.New()
	prop := createProperty(t, db, 10, 8, "1", models.PropertyStatusActive)
	fundWallet(t, db, buyer, "100")

	_, err := svc.PurchaseTokens(context.Background(), buyer, prop.PropertyID, 3)
	assert.Equal(t, ledger.ErrExceedsAvailable, err)

	var got models.Property
	require.NoError(t, db.First(&got, "property_id = ?", prop.PropertyID).Error)
	assert.Equal(t, int64(8), got.TokensSold)

	// buying exactly the remaining supply succeeds
	_, err = svc.PurchaseTokens(context.Background(), buyer, prop.PropertyID, 2)
	require.NoError(t, err)

	// and the property is now sold out
	_, err = svc.PurchaseTokens(context.Background(), buyer, prop.PropertyID, 1)
	assert.Equal(t, ledger.ErrExceedsAvailable, err)
}

func TestPurchaseTokens_PriceIsSnapshotted(t *testing.T) {
	svc, db := setupPurchaseTest(t)
	buyer := uuid.New()
	prop := createProperty(t, db, 100, 0, "50", models.PropertyStatusActive)
	fundWallet(t, db, buyer, "500")

	receipt, err := svc.PurchaseTokens(context.Background(), buyer, prop.PropertyID, 2)
	require.NoError(t, err)

	// a later price change must not affect the recorded cost
	require.NoError(t, db.Model(&models.Property{}).
		Where("property_id = ?", prop.PropertyID).
		Update("price_per_token", decimal.NewFromInt(90)).Error)

	var p models.TokenPurchase
	require.NoError(t, db.First(&p, "purchase_id = ?", receipt.PurchaseID).Error)
	assert.True(t, p.TotalCost.Equal(decimal.NewFromInt(100)))
}

func TestPurchaseTokens_LazyWalletHasNoFunds(t *testing.T) {
	svc, db := setupPurchaseTest(t)
	prop := createProperty(t, db, 100, 0, "10", models.PropertyStatusActive)

	_, err := svc.PurchaseTokens(context.Background(), uuid.New(), prop.PropertyID, 1)
	assert.Equal(t, ledger.ErrInsufficientFunds, err)
}
