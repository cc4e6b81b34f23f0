package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account holder: investor, seller or admin depending on role grants.
type User struct {
	UserID       uuid.UUID      `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Fullname     string         `gorm:"column:fullname;not null" json:"fullname"`
	Email        string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "Users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}

// RoleGrant is a (user, role) pair. A user may hold several roles;
// duplicates are prevented by the composite unique index.
type RoleGrant struct {
	GrantID   uuid.UUID `gorm:"column:grant_id;type:uuid;primaryKey" json:"grant_id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_role" json:"user_id"`
	Role      string    `gorm:"column:role;type:varchar(20);not null;uniqueIndex:idx_user_role" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (RoleGrant) TableName() string {
	return "RoleGrants"
}

func (g *RoleGrant) BeforeCreate(tx *gorm.DB) error {
	if g.GrantID == uuid.Nil {
		g.GrantID = uuid.New()
	}
	return nil
}
