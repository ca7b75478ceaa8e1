package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryType string

const (
	CategoryTypeWeb     CategoryType = "web"
	CategoryTypeMobile  CategoryType = "mobile"
	CategoryTypeBackend CategoryType = "backend"
	CategoryTypeDevops  CategoryType = "devops"
	CategoryTypeOther   CategoryType = "other"
)

var CategoryTypes = []CategoryType{
	CategoryTypeWeb,
	CategoryTypeMobile,
	CategoryTypeBackend,
	CategoryTypeDevops,
	CategoryTypeOther,
}

func (t CategoryType) Valid() bool {
	for _, ct := range CategoryTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// Category groups projects by technical area. Type drives how a project is
// presented on the public site.
type Category struct {
	ID        uuid.UUID    `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string       `json:"name" db:"name" gorm:"type:text;not null"`
	Slug      string       `json:"slug" db:"slug" gorm:"type:text;not null;index:idx_categories_slug"`
	Type      CategoryType `json:"type" db:"type" gorm:"type:text;not null;default:other"`
	CreatedAt time.Time    `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Type == "" {
		c.Type = CategoryTypeOther
	}
	return nil
}
