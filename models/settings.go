package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Settings is the single site-wide profile row: owner identity, contact
// details and social links.
type Settings struct {
	ID        uuid.UUID         `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	FullName  string            `json:"full_name" db:"full_name" gorm:"type:text"`
	Headline  string            `json:"headline" db:"headline" gorm:"type:text"`
	Location  string            `json:"location" db:"location" gorm:"type:text"`
	Email     string            `json:"email" db:"email" gorm:"type:text"`
	Phone     string            `json:"phone" db:"phone" gorm:"type:text"`
	CVURL     string            `json:"cv_url" db:"cv_url" gorm:"type:text"`
	Socials   datatypes.JSONMap `json:"socials" db:"socials"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at" gorm:"not null;autoUpdateTime"`
}

func (Settings) TableName() string {
	return "site_settings"
}

func (s *Settings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Socials == nil {
		s.Socials = datatypes.JSONMap{}
	}
	return nil
}
