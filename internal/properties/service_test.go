package properties

import (
	"context"
	"testing"

	"brickvest-backend/internal/constants"
	"brickvest-backend/internal/ledger"
	"brickvest-backend/internal/models"
	"brickvest-backend/internal/roles"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPropertiesTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RoleGrant{}, &models.Property{}))
	return &Service{DB: db, Roles: &roles.Service{DB: db}}, db
}

func withRole(t *testing.T, db *gorm.DB, role string) uuid.UUID {
	id := uuid.New()
	require.NoError(t, db.Create(&models.RoleGrant{UserID: id, Role: role}).Error)
	return id
}

func strPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64 { return &n }
func boolPtr(b bool) *bool    { return &b }

func TestCreate_SetsOwnerAndDefaults(t *testing.T) {
	svc, _ := setupPropertiesTest(t)
	seller := uuid.New()

	p, err := svc.Create(context.Background(), seller, CreateInput{
		Title:         "Dockside Flats",
		LocationCity:  "Austin",
		LocationState: "TX",
		TotalTokens:   500,
		PricePerToken: decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PropertyStatusActive, p.Status)
	assert.False(t, p.Verified)
	assert.Equal(t, int64(0), p.TokensSold)
	require.NotNil(t, p.SellerID)
	assert.Equal(t, seller, *p.SellerID)
}

func TestCreate_RejectsBadInput(t *testing.T) {
	svc, _ := setupPropertiesTest(t)
	seller := uuid.New()

	_, err := svc.Create(context.Background(), seller, CreateInput{Title: "", TotalTokens: 10, PricePerToken: decimal.NewFromInt(1)})
	assert.Equal(t, ledger.ErrInvalidAmount, err)

	_, err = svc.Create(context.Background(), seller, CreateInput{Title: "X", TotalTokens: 0, PricePerToken: decimal.NewFromInt(1)})
	assert.Equal(t, ledger.ErrInvalidAmount, err)

	_, err = svc.Create(context.Background(), seller, CreateInput{Title: "X", TotalTokens: 10, PricePerToken: decimal.Zero})
	assert.Equal(t, ledger.ErrInvalidAmount, err)
}

func TestUpdate_OwnerEditsFields(t *testing.T) {
	svc, _ := setupPropertiesTest(t)
	seller := uuid.New()
	p, err := svc.Create(context.Background(), seller, CreateInput{
		Title: "Old Title", TotalTokens: 100, PricePerToken: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), seller, p.PropertyID, UpdateInput{
		Title:         strPtr("New Title"),
		PricePerToken: decPtr("12.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)
	assert.True(t, got.PricePerToken.Equal(decimal.RequireFromString("12.50")))
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestUpdate_VerifiedGateRejectsWholePatch(t *testing.T) {
	svc, db := setupPropertiesTest(t)
	seller := uuid.New()
	p, err := svc.Create(context.Background(), seller, CreateInput{
		Title: "Gated", TotalTokens: 100, PricePerToken: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	// a seller patch that bundles verified fails entirely
	_, err = svc.Update(context.Background(), seller, p.PropertyID, UpdateInput{
		Title:    strPtr("Sneaky Rename"),
		Verified: boolPtr(true),
	})
	assert.Equal(t, ledger.ErrUnauthorized, err)

	var got models.Property
	require.NoError(t, db.First(&got, "property_id = ?", p.PropertyID).Error)
	assert.Equal(t, "Gated", got.Title)
	assert.False(t, got.Verified)
}

func TestUpdate_AdminVerifies(t *testing.T) {
	svc, db := setupPropertiesTest(t)
	seller := uuid.New()
	adminID := withRole(t, db, constants.Admin)

	p, err := svc.Create(context.Background(), seller, CreateInput{
		Title: "Verifiable", TotalTokens: 100, PricePerToken: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	got, err := svc.SetVerified(context.Background(), adminID, p.PropertyID, true)
	require.NoError(t, err)
	assert.True(t, got.Verified)
}

func TestUpdate_NonOwnerRejected(t *testing.T) {
	svc, _ := setupPropertiesTest(t)
	seller := uuid.New()
	p, err := svc.Create(context.Background(), seller, CreateInput{
		Title: "Owned", TotalTokens: 100, PricePerToken: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), uuid.New(), p.PropertyID, UpdateInput{Title: strPtr("Hijack")})
	assert.Equal(t, ledger.ErrUnauthorized, err)
}

func TestUpdate_TotalTokensCannotDropBelowSold(t *testing.T) {
	svc, db := setupPropertiesTest(t)
	seller := uuid.New()
	p, err := svc.Create(context.Background(), seller, CreateInput{
		Title: "Shrinking", TotalTokens: 100, PricePerToken: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Property{}).
		Where("property_id = ?", p.PropertyID).
		Update("tokens_sold", 40).Error)

	_, err = svc.Update(context.Background(), seller, p.PropertyID, UpdateInput{TotalTokens: int64Ptr(30)})
	assert.Equal(t, ledger.ErrInvalidAmount, err)

	// lowering to exactly the sold count is allowed
	got, err := svc.Update(context.Background(), seller, p.PropertyID, UpdateInput{TotalTokens: int64Ptr(40)})
	require.NoError(t, err)
	assert.Equal(t, int64(40), got.TotalTokens)
	assert.Equal(t, int64(0), got.TokensRemaining())
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := setupPropertiesTest(t)
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), UpdateInput{Title: strPtr("x")})
	assert.Equal(t, ledger.ErrNotFound, err)
}

func TestGetActive_FiltersInactive(t *testing.T) {
	svc, db := setupPropertiesTest(t)
	seller := uuid.New()
	active, err := svc.Create(context.Background(), seller, CreateInput{
		Title: "Active One", TotalTokens: 10, PricePerToken: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	inactive, err := svc.Create(context.Background(), seller, CreateInput{
		Title: "Delisted", TotalTokens: 10, PricePerToken: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Property{}).
		Where("property_id = ?", inactive.PropertyID).
		Update("status", models.PropertyStatusInactive).Error)

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	browsable, err := svc.GetActive(context.Background())
	require.NoError(t, err)
	require.Len(t, browsable, 1)
	assert.Equal(t, active.PropertyID, browsable[0].PropertyID)
}
