package properties

import (
	"context"
	"errors"

	"brickvest-backend/internal/constants"
	"brickvest-backend/internal/ledger"
	"brickvest-backend/internal/models"
	"brickvest-backend/internal/roles"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service owns property CRUD and the verification gate. The gate is
// enforced here, before any write: a mutation that touches the verified
// flag fails entirely for non-admins, including every other field bundled
// in the same patch.
type Service struct {
	DB    *gorm.DB
	Roles *roles.Service
}

type CreateInput struct {
	Title         string
	Description   *string
	LocationCity  string
	LocationState string
	TotalTokens   int64
	PricePerToken decimal.Decimal
}

// UpdateInput is a field patch; nil fields are left untouched.
type UpdateInput struct {
	Title         *string
	Description   *string
	LocationCity  *string
	LocationState *string
	TotalTokens   *int64
	PricePerToken *decimal.Decimal
	Status        *string
	Verified      *bool
}

// Create lists a new property owned by the acting seller.
func (s *Service) Create(ctx context.Context, sellerID uuid.UUID, in CreateInput) (*models.Property, error) {
	if in.Title == "" || in.TotalTokens <= 0 || !in.PricePerToken.IsPositive() {
		return nil, ledger.ErrInvalidAmount
	}
	property := &models.Property{
		Title:         in.Title,
		Description:   in.Description,
		LocationCity:  in.LocationCity,
		LocationState: in.LocationState,
		TotalTokens:   in.TotalTokens,
		PricePerToken: in.PricePerToken,
		Status:        models.PropertyStatusActive,
		SellerID:      &sellerID,
	}
	if err := s.DB.WithContext(ctx).Create(property).Error; err != nil {
		return nil, err
	}
	return property, nil
}

// Update applies a field patch under the verification gate and ownership
// rules. Admins may edit anything; the owning seller may edit everything
// except the verified flag.
func (s *Service) Update(ctx context.Context, actorID, propertyID uuid.UUID, in UpdateInput) (*models.Property, error) {
	var property models.Property
	err := s.DB.WithContext(ctx).Where("property_id = ?", propertyID).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	isAdmin, err := s.Roles.HasRole(ctx, actorID, constants.Admin)
	if err != nil {
		return nil, err
	}
	if in.Verified != nil && !isAdmin {
		return nil, ledger.ErrUnauthorized
	}
	if !isAdmin && (property.SellerID == nil || *property.SellerID != actorID) {
		return nil, ledger.ErrUnauthorized
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.LocationCity != nil {
		updates["location_city"] = *in.LocationCity
	}
	if in.LocationState != nil {
		updates["location_state"] = *in.LocationState
	}
	if in.TotalTokens != nil {
		if *in.TotalTokens < property.TokensSold {
			return nil, ledger.ErrInvalidAmount
		}
		updates["total_tokens"] = *in.TotalTokens
	}
	if in.PricePerToken != nil {
		if !in.PricePerToken.IsPositive() {
			return nil, ledger.ErrInvalidAmount
		}
		updates["price_per_token"] = *in.PricePerToken
	}
	if in.Status != nil {
		if *in.Status != models.PropertyStatusActive && *in.Status != models.PropertyStatusInactive {
			return nil, ledger.ErrInvalidAmount
		}
		updates["status"] = *in.Status
	}
	if in.Verified != nil {
		updates["verified"] = *in.Verified
	}
	if len(updates) == 0 {
		return &property, nil
	}

	if err := s.DB.WithContext(ctx).Model(&property).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Where("property_id = ?", propertyID).First(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// SetVerified flips the verification flag. Admin only; the same gate as
// Update, kept as a dedicated path for the admin verify endpoint.
func (s *Service) SetVerified(ctx context.Context, actorID, propertyID uuid.UUID, verified bool) (*models.Property, error) {
	return s.Update(ctx, actorID, propertyID, UpdateInput{Verified: &verified})
}

// GetAll returns every property, newest first.
func (s *Service) GetAll(ctx context.Context) ([]models.Property, error) {
	var props []models.Property
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&props).Error; err != nil {
		return nil, err
	}
	return props, nil
}

// GetActive returns active properties only (the browsable marketplace).
func (s *Service) GetActive(ctx context.Context) ([]models.Property, error) {
	var props []models.Property
	if err := s.DB.WithContext(ctx).
		Where("status = ?", models.PropertyStatusActive).
		Order("created_at DESC").
		Find(&props).Error; err != nil {
		return nil, err
	}
	return props, nil
}

// GetByID fetches one property.
func (s *Service) GetByID(ctx context.Context, propertyID uuid.UUID) (*models.Property, error) {
	var property models.Property
	err := s.DB.WithContext(ctx).Where("property_id = ?", propertyID).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}
