package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusPublished ProjectStatus = "published"
)

func (s ProjectStatus) Valid() bool {
	return s == ProjectStatusDraft || s == ProjectStatusPublished
}

// Project is a portfolio entry. Only published projects are visible on the
// public site.
type Project struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title        string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Slug         string                      `json:"slug" db:"slug" gorm:"type:text;not null;index:idx_projects_slug"`
	Summary      string                      `json:"summary" db:"summary" gorm:"type:text"`
	Description  string                      `json:"description" db:"description" gorm:"type:text"`
	Stack        datatypes.JSONSlice[string] `json:"stack" db:"stack"`
	Featured     bool                        `json:"featured" db:"featured" gorm:"not null;default:false"`
	Status       ProjectStatus               `json:"status" db:"status" gorm:"type:text;not null;default:draft;index:idx_projects_status_sort,priority:1"`
	ThumbnailURL string                      `json:"thumbnail_url" db:"thumbnail_url" gorm:"type:text"`
	LiveURL      string                      `json:"live_url" db:"live_url" gorm:"type:text"`
	RepoURL      string                      `json:"repo_url" db:"repo_url" gorm:"type:text"`
	SortOrder    int                         `json:"sort_order" db:"sort_order" gorm:"not null;default:0;index:idx_projects_status_sort,priority:2"`
	CreatedAt    time.Time                   `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt    time.Time                   `json:"updated_at" db:"updated_at" gorm:"not null;autoUpdateTime"`
	Categories   []Category                  `json:"categories,omitempty" gorm:"many2many:project_categories;constraint:OnDelete:CASCADE"`
	Media        []Media                     `json:"media,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectStatusDraft
	}
	if p.Stack == nil {
		p.Stack = datatypes.JSONSlice[string]{}
	}
	return nil
}

func (p Project) Published() bool {
	return p.Status == ProjectStatusPublished
}

// CategoryIDs returns the ids of the loaded categories in order.
func (p Project) CategoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
