package booking

import (
	"context"

	"github.com/google/uuid"

	"shalean/internal/domain"
	"shalean/internal/pricing"
)

// BookingRepository defines the persistence operations the service needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]domain.Booking, error)
	GetByCleaner(ctx context.Context, cleanerID uuid.UUID, date string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
	CancelWithReason(ctx context.Context, id uuid.UUID, reason string) error
	AssignCleaner(ctx context.Context, id, cleanerID uuid.UUID) error
	ListByDate(ctx context.Context, date string) ([]domain.Booking, error)
}

type CustomerRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Customer, error)
	UpsertByEmail(ctx context.Context, c *domain.Customer) error
}

type CleanerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Cleaner, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Cleaner, error)
}

// Pricer is the authoritative price source. *pricing.Resolver satisfies
// it; the resolver falls back to bundled defaults when the store is
// unreachable, so Calculate never fails.
type Pricer interface {
	Calculate(ctx context.Context, req pricing.Request, freq pricing.Frequency) pricing.Breakdown
}
