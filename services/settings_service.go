package services

import (
	"context"
	"strings"

	"gorm.io/datatypes"

	"github.com/bgpaten/ahyarpattani/database"
	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/models"
)

type SettingsInput struct {
	FullName string            `json:"full_name" validate:"max=200"`
	Headline string            `json:"headline" validate:"max=300"`
	Location string            `json:"location" validate:"max=200"`
	Email    string            `json:"email" validate:"omitempty,email"`
	Phone    string            `json:"phone" validate:"max=50"`
	CVURL    string            `json:"cv_url" validate:"omitempty,url"`
	Socials  map[string]string `json:"socials" validate:"dive,keys,required,max=50,endkeys,omitempty,url"`
}

type SettingsService struct {
	db database.Database
}

func NewSettingsService(db database.Database) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the site settings, or an empty value when none were saved.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.db.SettingsRepo().Find(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "settings", err)
	}
	if settings == nil {
		return &models.Settings{Socials: datatypes.JSONMap{}}, nil
	}
	if settings.Socials == nil {
		settings.Socials = datatypes.JSONMap{}
	}
	return settings, nil
}

// Save updates the settings row, creating it on first use.
func (s *SettingsService) Save(ctx context.Context, in SettingsInput) (*models.Settings, error) {
	socials := datatypes.JSONMap{}
	for platform, url := range in.Socials {
		if platform = strings.TrimSpace(platform); platform != "" && strings.TrimSpace(url) != "" {
			socials[platform] = strings.TrimSpace(url)
		}
	}
	settings := &models.Settings{
		FullName: strings.TrimSpace(in.FullName),
		Headline: strings.TrimSpace(in.Headline),
		Location: strings.TrimSpace(in.Location),
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		CVURL:    strings.TrimSpace(in.CVURL),
		Socials:  socials,
	}
	if err := s.db.SettingsRepo().Save(ctx, settings); err != nil {
		return nil, errs.NewDatabaseError("save", "settings", err)
	}
	return settings, nil
}
