package models

import "github.com/google/uuid"

// ProjectCategory is the join row between a project and one of its categories.
type ProjectCategory struct {
	ProjectID  uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;primaryKey;not null"`
	CategoryID uuid.UUID `json:"category_id" db:"category_id" gorm:"type:uuid;primaryKey;not null;index:idx_project_categories_category"`
}

func (ProjectCategory) TableName() string {
	return "project_categories"
}
