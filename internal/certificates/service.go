package certificates

import (
	"context"
	"errors"

	"brickvest-backend/internal/constants"
	"brickvest-backend/internal/ledger"
	"brickvest-backend/internal/models"
	"brickvest-backend/internal/roles"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service reads certificates and accepts the rendered-document callback.
// Rendering itself happens outside the core; purchases never block on it.
type Service struct {
	DB    *gorm.DB
	Roles *roles.Service
}

// MyCertificates lists the user's certificates, newest first.
func (s *Service) MyCertificates(ctx context.Context, ownerID uuid.UUID) ([]models.Certificate, error) {
	var certs []models.Certificate
	if err := s.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("issued_at DESC").
		Find(&certs).Error; err != nil {
		return nil, err
	}
	return certs, nil
}

// ViewOne fetches a certificate for its owner or an admin.
func (s *Service) ViewOne(ctx context.Context, actorID, certificateID uuid.UUID) (*models.Certificate, error) {
	var cert models.Certificate
	err := s.DB.WithContext(ctx).Where("certificate_id = ?", certificateID).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if cert.OwnerID != actorID {
		isAdmin, err := s.Roles.HasRole(ctx, actorID, constants.Admin)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, ledger.ErrUnauthorized
		}
	}
	return &cert, nil
}

// MarkRendered attaches the rendered document URL and flips the purchase's
// certificate_issued flag, in one transaction. Called by the rendering
// collaborator once the PDF exists.
func (s *Service) MarkRendered(ctx context.Context, certificateID uuid.UUID, documentURL string) error {
	if documentURL == "" {
		return ledger.ErrInvalidAmount
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cert models.Certificate
		err := tx.Where("certificate_id = ?", certificateID).First(&cert).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ledger.ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&cert).Update("document_url", documentURL).Error; err != nil {
			return err
		}
		return tx.Model(&models.TokenPurchase{}).
			Where("purchase_id = ?", cert.PurchaseID).
			Update("certificate_issued", true).Error
	})
}
