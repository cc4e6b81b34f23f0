package roles

import (
	"context"

	"brickvest-backend/internal/constants"
	"brickvest-backend/internal/ledger"
	"brickvest-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the role authority. It reads the grant table directly with
// trusted server-side access; it never routes through the permission checks
// it backs, so there is no recursive evaluation.
type Service struct {
	DB *gorm.DB
}

// HasRole reports whether the user holds the given role grant.
func (s *Service) HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.RoleGrant{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RolesOf returns every role granted to the user.
func (s *Service) RolesOf(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var grants []models.RoleGrant
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("role").Find(&grants).Error; err != nil {
		return nil, err
	}
	roles := make([]string, 0, len(grants))
	for _, g := range grants {
		roles = append(roles, g.Role)
	}
	return roles, nil
}

// AssignRole grants a role to the target user. Only admins may assign.
// Re-granting an existing role succeeds without creating a duplicate row.
func (s *Service) AssignRole(ctx context.Context, actorID, targetID uuid.UUID, role string) error {
	if !constants.IsValidRole(role) {
		return ledger.ErrInvalidAmount
	}
	isAdmin, err := s.HasRole(ctx, actorID, constants.Admin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ledger.ErrUnauthorized
	}

	var target models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", targetID).First(&target).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ledger.ErrNotFound
		}
		return err
	}

	grant := models.RoleGrant{UserID: targetID, Role: role}
	return s.DB.WithContext(ctx).
		Where("user_id = ? AND role = ?", targetID, role).
		FirstOrCreate(&grant).Error
}

// RevokeRole removes a grant. Only admins may revoke; revoking an absent
// grant is a no-op.
func (s *Service) RevokeRole(ctx context.Context, actorID, targetID uuid.UUID, role string) error {
	isAdmin, err := s.HasRole(ctx, actorID, constants.Admin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ledger.ErrUnauthorized
	}
	return s.DB.WithContext(ctx).
		Where("user_id = ? AND role = ?", targetID, role).
		Delete(&models.RoleGrant{}).Error
}
