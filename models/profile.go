package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRole string

const (
	RoleAdmin  ProfileRole = "admin"
	RoleViewer ProfileRole = "viewer"
)

func (r ProfileRole) Valid() bool {
	return r == RoleAdmin || r == RoleViewer
}

// Profile is a console account. Only admins may use the admin API.
type Profile struct {
	ID           uuid.UUID   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email        string      `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex:idx_profiles_email"`
	PasswordHash string      `json:"-" db:"password_hash" gorm:"type:text;not null"`
	Role         ProfileRole `json:"role" db:"role" gorm:"type:text;not null;default:viewer"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Role == "" {
		p.Role = RoleViewer
	}
	return nil
}
