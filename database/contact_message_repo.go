package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/models"
)

type ContactMessageRepo struct {
	db *gorm.DB
}

func NewContactMessageRepo(db *gorm.DB) *ContactMessageRepo {
	return &ContactMessageRepo{db}
}

func (r *ContactMessageRepo) Add(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// FindAll returns messages newest first.
func (r *ContactMessageRepo) FindAll(ctx context.Context) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&msgs).Error
	return msgs, err
}

func (r *ContactMessageRepo) SetRead(ctx context.Context, id uuid.UUID, read bool) (*models.ContactMessage, error) {
	res := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("id = ?", id).Update("read", read)
	if res.Error != nil {
		return nil, res.Error
	}
	var msg models.ContactMessage
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&msg).Error; err != nil {
		return nil, err
	}
	if msg.ID == uuid.Nil {
		return nil, errs.NewNotFound("message")
	}
	return &msg, nil
}

// Count returns the number of messages, or only the unread ones.
func (r *ContactMessageRepo) Count(ctx context.Context, unreadOnly bool) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&models.ContactMessage{})
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	err := q.Count(&n).Error
	return n, err
}
