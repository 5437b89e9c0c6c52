package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shalean/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Cleaner").
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var rows []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Cleaner").
		Where("customer_id = ?", customerID).
		Order("booking_date DESC, booking_time DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *BookingRepository) GetByCleaner(ctx context.Context, cleanerID uuid.UUID, date string) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Preload("Customer").
		Where("cleaner_id = ?", cleanerID)
	if date != "" {
		q = q.Where("booking_date = ?", date)
	}

	var rows []domain.Booking
	err := q.Order("booking_date, booking_time").Find(&rows).Error
	return rows, err
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) CancelWithReason(ctx context.Context, id uuid.UUID, reason string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":              domain.BookingCancelled,
			"cancellation_reason": reason,
			"cancelled_at":        now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) AssignCleaner(ctx context.Context, id, cleanerID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("cleaner_id", cleanerID).Error
}

// ListByDate returns every booking for a calendar day, for the admin
// day view.
func (r *BookingRepository) ListByDate(ctx context.Context, date string) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Cleaner").
		Where("booking_date = ?", date).
		Order("booking_time").
		Find(&rows).Error
	return rows, err
}
