package certificates

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

func setupCertificatesTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.RoleGrant{}, &models.Property{},
		&models.TokenPurchase{}, &models.Certificate{},
	))
	return &Service{DB: db, Roles: &roles.Service{DB: db}}, db
}

func seedCertificate(t *testing.T, db *gorm.DB, ownerID uuid.UUID) (*models.Certificate, *models.TokenPurchase) {
	purchase := models.TokenPurchase{
		BuyerID:    ownerID,
		PropertyID: uuid.New(),
		Tokens:     5,
		TotalCost:  decimal.NewFromInt(50),
	}
	require.NoError(t, db.Create(&purchase).Error)
	cert := models.Certificate{
		OwnerID:           ownerID,
		PurchaseID:        purchase.PurchaseID,
		CertificateNumber: "CERT-TEST-" + uuid.NewString()[:8],
		PropertyTitle:     "Test Property",
		TokensOwned:       5,
	}
	require.NoError(t, db.Create(&cert).Error)
	return &cert, &purchase
}

func TestMyCertificates(t *testing.T) {
	svc, db := setupCertificatesTest(t)
	owner := uuid.New()
	seedCertificate(t, db, owner)
	seedCertificate(t, db, uuid.New())

	certs, err := svc.MyCertificates(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, certs, 1)
	assert.Equal(t, owner, certs[0].OwnerID)
}

func TestViewOne_OwnerAndAdminOnly(t *testing.T) {
	svc, db := setupCertificatesTest(t)
	owner := uuid.New()
	cert, _ := seedCertificate(t, db, owner)

	got, err := svc.ViewOne(context.Background(), owner, cert.CertificateID)
	require.NoError(t, err)
	assert.Equal(t, cert.CertificateID, got.CertificateID)

	_, err = svc.ViewOne(context.Background(), uuid.New(), cert.CertificateID)
	assert.Equal(t, ledger.ErrUnauthorized, err)

	admin := uuid.New()
	require.NoError(t, db.Create(&models.RoleGrant{UserID: admin, Role: constants.Admin}).Error)
	_, err = svc.ViewOne(context.Background(), admin, cert.CertificateID)
	require.NoError(t, err)
}

func TestViewOne_NotFound(t *testing.T) {
	svc, _ := setupCertificatesTest(t)
	_, err := svc.ViewOne(context.Background(), uuid.New(), uuid.New())
	assert.Equal(t, ledger.ErrNotFound, err)
}

func TestMarkRendered(t *testing.T) {
	svc, db := setupCertificatesTest(t)
	owner := uuid.New()
	cert, purchase := seedCertificate(t, db, owner)

	require.NoError(t, svc.MarkRendered(context.Background(), cert.CertificateID, "https://cdn.example.com/certs/1.pdf"))

	var gotCert models.Certificate
	require.NoError(t, db.First(&gotCert, "certificate_id = ?", cert.CertificateID).Error)
	require.NotNil(t, gotCert.DocumentURL)
	assert.Equal(t, "https://cdn.example.com/certs/1.pdf", *gotCert.DocumentURL)

	var gotPurchase models.TokenPurchase
	require.NoError(t, db.First(&gotPurchase, "purchase_id = ?", purchase.PurchaseID).Error)
	assert.True(t, gotPurchase.CertificateIssued)
}

func TestMarkRendered_Validation(t *testing.T) {
	svc, _ := setupCertificatesTest(t)

	err := svc.MarkRendered(context.Background(), uuid.New(), "")
	assert.Equal(t, ledger.ErrInvalidAmount, err)

	err = svc.MarkRendered(context.Background(), uuid.New(), "https://cdn.example.com/x.pdf")
	assert.Equal(t, ledger.ErrNotFound, err)
}
