package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shalean/internal/domain"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MessageRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID, limit int) ([]domain.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var rows []domain.Message
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
