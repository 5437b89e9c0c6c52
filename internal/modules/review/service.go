package review

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"shalean/internal/domain"
)

type Service struct {
	reviews   ReviewRepository
	bookings  BookingRepository
	customers CustomerRepository
	cleaners  CleanerRepository
}

func NewService(reviews ReviewRepository, bookings BookingRepository, customers CustomerRepository, cleaners CleanerRepository) *Service {
	return &Service{reviews: reviews, bookings: bookings, customers: customers, cleaners: cleaners}
}

// CreateReview accepts one review per completed booking, from the
// customer who booked it, and refreshes the cleaner's stored average.
func (s *Service) CreateReview(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	cust, err := s.customers.GetByUserID(ctx, userID)
	if err != nil || b.CustomerID == nil || *b.CustomerID != cust.ID {
		return nil, ErrForbidden
	}

	if b.Status != domain.BookingCompleted {
		return nil, ErrNotCompleted
	}
	if b.CleanerID == nil {
		return nil, ErrNotCompleted
	}

	// The unique index on booking_id is postgres-flavoured in how it
	// reports violations, so check up front and keep the 23505 branch
	// below as a race guard.
	if _, err := s.reviews.GetByBooking(ctx, b.ID); err == nil {
		return nil, ErrAlreadyReviewed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rv := &domain.Review{
		BookingID:  b.ID,
		CustomerID: cust.ID,
		CleanerID:  *b.CleanerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyReviewed
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	// Rating refresh is best effort; the review itself is already in.
	if avg, count, err := s.reviews.AverageForCleaner(ctx, rv.CleanerID); err == nil {
		rounded := math.Round(avg*10) / 10
		_ = s.cleaners.UpdateRating(ctx, rv.CleanerID, rounded, count)
	}

	return rv, nil
}

// CleanerReviews returns a cleaner's visible reviews with the profile
// they hang off.
func (s *Service) CleanerReviews(ctx context.Context, cleanerID uuid.UUID, limit, offset int) (*domain.Cleaner, []domain.Review, error) {
	cleaner, err := s.cleaners.GetByID(ctx, cleanerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.reviews.ListByCleaner(ctx, cleanerID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return cleaner, rows, nil
}
