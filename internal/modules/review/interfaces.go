package review

import (
	"context"

	"github.com/google/uuid"

	"shalean/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Review, error)
	ListByCleaner(ctx context.Context, cleanerID uuid.UUID, limit, offset int) ([]domain.Review, error)
	AverageForCleaner(ctx context.Context, cleanerID uuid.UUID) (float64, int, error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

type CustomerRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Customer, error)
}

type CleanerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Cleaner, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64, count int) error
}
