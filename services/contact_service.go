package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bgpaten/ahyarpattani/database"
	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/models"
)

type ContactInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactService stores contact form submissions and notifies the owner.
type ContactService struct {
	db       database.Database
	notifier Notifier
	logger   zerolog.Logger
}

// NewContactService builds the service. notifier may be nil.
func NewContactService(db database.Database, notifier Notifier) *ContactService {
	return &ContactService{
		db:       db,
		notifier: notifier,
		logger:   log.With().Str("service", "contact").Logger(),
	}
}

// Submit stores one message. Notification is best effort: its failure is
// logged and never returned.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	}
	switch {
	case msg.Name == "":
		return nil, errs.NewMissingRequiredFieldError("name")
	case msg.Email == "":
		return nil, errs.NewMissingRequiredFieldError("email")
	case msg.Message == "":
		return nil, errs.NewMissingRequiredFieldError("message")
	}

	if err := s.db.ContactMessageRepo().Add(ctx, msg); err != nil {
		return nil, errs.NewDatabaseError("create", "message", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, *msg); err != nil {
			s.logger.Warn().Err(err).Str("messageId", msg.ID.String()).Msg("contact notification failed")
		}
	}
	return msg, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	msgs, err := s.db.ContactMessageRepo().FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "messages", err)
	}
	return msgs, nil
}

func (s *ContactService) MarkRead(ctx context.Context, id uuid.UUID, read bool) (*models.ContactMessage, error) {
	msg, err := s.db.ContactMessageRepo().SetRead(ctx, id, read)
	if err != nil {
		return nil, errs.NewDatabaseError("update", "message", err)
	}
	return msg, nil
}
