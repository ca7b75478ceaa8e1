package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

func (t MediaType) Valid() bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}

type Orientation string

const (
	OrientationLandscape Orientation = "landscape"
	OrientationPortrait  Orientation = "portrait"
	OrientationSquare    Orientation = "square"
)

func (o Orientation) Valid() bool {
	return o == OrientationLandscape || o == OrientationPortrait || o == OrientationSquare
}

// Media is one gallery entry of a project, shown in SortOrder.
type Media struct {
	ID          uuid.UUID   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID   uuid.UUID   `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_project_media_order,priority:1"`
	URL         string      `json:"url" db:"url" gorm:"type:text;not null"`
	Type        MediaType   `json:"type" db:"type" gorm:"type:text;not null;default:image"`
	Orientation Orientation `json:"orientation" db:"orientation" gorm:"type:text;not null;default:landscape"`
	Caption     string      `json:"caption" db:"caption" gorm:"type:text"`
	SortOrder   int         `json:"sort_order" db:"sort_order" gorm:"not null;default:0;index:idx_project_media_order,priority:2"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
}

func (Media) TableName() string {
	return "project_media"
}

func (m *Media) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Type == "" {
		m.Type = MediaTypeImage
	}
	if m.Orientation == "" {
		m.Orientation = OrientationLandscape
	}
	return nil
}
