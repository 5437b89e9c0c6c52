package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shalean/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, "booking_id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) ListByCleaner(ctx context.Context, cleanerID uuid.UUID, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var rows []domain.Review
	err := r.db.WithContext(ctx).
		Where("cleaner_id = ? AND is_hidden = ?", cleanerID, false).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, err
}

// AverageForCleaner returns the mean visible rating and review count.
func (r *ReviewRepository) AverageForCleaner(ctx context.Context, cleanerID uuid.UUID) (float64, int, error) {
	type agg struct {
		Avg   float64
		Count int
	}
	var out agg
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("cleaner_id = ? AND is_hidden = ?", cleanerID, false).
		Scan(&out).Error
	if err != nil {
		return 0, 0, err
	}
	return out.Avg, out.Count, nil
}
