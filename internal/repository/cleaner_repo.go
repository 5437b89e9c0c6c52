package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shalean/internal/domain"
)

type CleanerRepository struct {
	db *gorm.DB
}

func NewCleanerRepository(db *gorm.DB) *CleanerRepository {
	return &CleanerRepository{db: db}
}

func (r *CleanerRepository) Create(ctx context.Context, c *domain.Cleaner) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CleanerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Cleaner, error) {
	var c domain.Cleaner
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CleanerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Cleaner, error) {
	var c domain.Cleaner
	if err := r.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CleanerRepository) ListActive(ctx context.Context) ([]domain.Cleaner, error) {
	var rows []domain.Cleaner
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name").
		Find(&rows).Error
	return rows, err
}

// UpdateRating stores a recomputed average after a new review.
func (r *CleanerRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64, count int) error {
	return r.db.WithContext(ctx).Model(&domain.Cleaner{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":       rating,
			"rating_count": count,
		}).Error
}
