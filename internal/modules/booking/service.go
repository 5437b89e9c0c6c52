package booking

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"shalean/internal/domain"
	"shalean/internal/pricing"
)

const dateLayout = "2006-01-02"

type Service struct {
	bookings  BookingRepository
	customers CustomerRepository
	cleaners  CleanerRepository
	prices    Pricer

	cleanerCut float64
	now        func() time.Time
}

func NewService(
	bookings BookingRepository,
	customers CustomerRepository,
	cleaners CleanerRepository,
	prices Pricer,
	cleanerCut float64,
) *Service {
	if cleanerCut <= 0 || cleanerCut >= 1 {
		cleanerCut = 0.60
	}
	return &Service{
		bookings:   bookings,
		customers:  customers,
		cleaners:   cleaners,
		prices:     prices,
		cleanerCut: cleanerCut,
		now:        time.Now,
	}
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateBooking prices the request server-side and persists the result.
// Client-supplied totals are never trusted. userID is uuid.Nil for
// guest checkouts.
func (s *Service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*domain.Booking, error) {
	svc := pricing.ServiceType(req.ServiceType)
	if !svc.Valid() {
		return nil, ErrValidation
	}

	if _, err := time.Parse(dateLayout, req.BookingDate); err != nil {
		return nil, ErrValidation
	}
	if req.BookingDate < s.now().Format(dateLayout) {
		return nil, ErrValidation
	}
	if !slotOpen(req.BookingDate, req.BookingTime, s.now()) {
		return nil, ErrValidation
	}

	for _, extra := range req.Extras {
		if !pricing.InCatalog(svc, extra) {
			return nil, ErrValidation
		}
	}
	for name, qty := range req.ExtrasQuantities {
		if !pricing.QuantityExtras[name] {
			continue
		}
		if qty < 1 || qty > pricing.MaxQuantity {
			return nil, ErrValidation
		}
	}

	b := &domain.Booking{
		ServiceType:   string(svc),
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Frequency:     string(pricing.NormalizeFrequency(req.Frequency)),
		BookingDate:   req.BookingDate,
		BookingTime:   req.BookingTime,
		AddressLine1:  req.AddressLine1,
		AddressSuburb: req.AddressSuburb,
		AddressCity:   req.AddressCity,
		Notes:         req.Notes,
		Status:        domain.BookingPending,
	}

	if err := s.attachCustomer(ctx, b, userID, req); err != nil {
		return nil, err
	}

	if req.CleanerID != nil {
		cleaner, err := s.cleaners.GetByID(ctx, *req.CleanerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		if err != nil {
			return nil, err
		}
		if !cleaner.Active {
			return nil, ErrCleanerInactive
		}
		b.CleanerID = &cleaner.ID
	}

	if len(req.Extras) > 0 {
		raw, err := json.Marshal(req.Extras)
		if err != nil {
			return nil, err
		}
		b.Extras = string(raw)
	}
	if len(req.ExtrasQuantities) > 0 {
		raw, err := json.Marshal(req.ExtrasQuantities)
		if err != nil {
			return nil, err
		}
		b.ExtrasQuantities = string(raw)
	}

	bd := s.prices.Calculate(ctx, pricing.Request{
		Service:          svc,
		Bedrooms:         req.Bedrooms,
		Bathrooms:        req.Bathrooms,
		Extras:           req.Extras,
		ExtraQuantities:  req.ExtrasQuantities,
		Carpet:           req.CarpetDetails,
		ProvideEquipment: req.ProvideEquipment,
	}, pricing.Frequency(b.Frequency))

	b.SubtotalCents = toCents(bd.Subtotal)
	b.ServiceFeeCents = toCents(bd.ServiceFee)
	b.DiscountCents = toCents(bd.FrequencyDiscount)
	b.TotalCents = toCents(bd.Total)
	b.CleanerEarningsCents = toCents((bd.Total - bd.ServiceFee) * s.cleanerCut)

	if err := s.bookings.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "idx_cleaner_slot" {
			return nil, ErrCleanerUnavailable
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) attachCustomer(ctx context.Context, b *domain.Booking, userID uuid.UUID, req CreateBookingRequest) error {
	if userID != uuid.Nil {
		cust, err := s.customers.GetByUserID(ctx, userID)
		if err == nil {
			b.CustomerID = &cust.ID
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		// Registered user without a customer profile yet; fall through
		// and build one from the request contact details.
	}

	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Phone) == "" {
		return ErrValidation
	}

	cust := &domain.Customer{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		AddressLine1:  req.AddressLine1,
		AddressSuburb: req.AddressSuburb,
		AddressCity:   req.AddressCity,
	}
	if userID != uuid.Nil {
		cust.UserID = &userID
	}
	if err := s.customers.UpsertByEmail(ctx, cust); err != nil {
		return err
	}

	b.CustomerID = &cust.ID
	b.GuestFirstName = req.FirstName
	b.GuestLastName = req.LastName
	b.GuestEmail = req.Email
	b.GuestPhone = req.Phone
	return nil
}

// GetBooking enforces visibility: admins see everything, customers
// their own bookings, cleaners the ones assigned to them.
func (s *Service) GetBooking(ctx context.Context, id, userID uuid.UUID, role string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.canView(ctx, b, userID, role); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) canView(ctx context.Context, b *domain.Booking, userID uuid.UUID, role string) error {
	switch domain.Role(role) {
	case domain.RoleAdmin:
		return nil
	case domain.RoleCleaner:
		cleaner, err := s.cleaners.GetByUserID(ctx, userID)
		if err == nil && b.CleanerID != nil && *b.CleanerID == cleaner.ID {
			return nil
		}
	case domain.RoleCustomer:
		cust, err := s.customers.GetByUserID(ctx, userID)
		if err == nil && b.CustomerID != nil && *b.CustomerID == cust.ID {
			return nil
		}
	}
	return ErrForbidden
}

func (s *Service) MyBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	cust, err := s.customers.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []domain.Booking{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.bookings.GetByCustomer(ctx, cust.ID, limit, offset)
}

// CleanerSchedule lists a cleaner's own assignments, optionally for a
// single day.
func (s *Service) CleanerSchedule(ctx context.Context, userID uuid.UUID, date string) ([]domain.Booking, error) {
	cleaner, err := s.cleaners.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []domain.Booking{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.bookings.GetByCleaner(ctx, cleaner.ID, date)
}

// Slots returns the bookable start times for a day. Past slots are
// dropped when the day is today.
func (s *Service) Slots(date string) ([]string, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrValidation
	}
	return pricing.TimeSlotsFor(date, s.now()), nil
}

var transitions = map[domain.BookingStatus]domain.BookingStatus{
	domain.BookingPending:   domain.BookingConfirmed,
	domain.BookingConfirmed: domain.BookingCompleted,
}

// UpdateStatus advances a booking along pending -> confirmed ->
// completed. Cancellation goes through Cancel, never here.
func (s *Service) UpdateStatus(ctx context.Context, id, userID uuid.UUID, role, status string) (*domain.Booking, error) {
	next := domain.BookingStatus(status)
	if next != domain.BookingConfirmed && next != domain.BookingCompleted {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if domain.Role(role) != domain.RoleAdmin {
		if domain.Role(role) != domain.RoleCleaner {
			return nil, ErrForbidden
		}
		cleaner, err := s.cleaners.GetByUserID(ctx, userID)
		if err != nil || b.CleanerID == nil || *b.CleanerID != cleaner.ID {
			return nil, ErrForbidden
		}
	}

	if transitions[b.Status] != next {
		return nil, ErrBadTransition
	}
	if err := s.bookings.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	b.Status = next
	return b, nil
}

// Cancel requires a reason and is final. Completed and already
// cancelled bookings cannot be cancelled.
func (s *Service) Cancel(ctx context.Context, id, userID uuid.UUID, role, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if domain.Role(role) != domain.RoleAdmin {
		cust, err := s.customers.GetByUserID(ctx, userID)
		if err != nil || b.CustomerID == nil || *b.CustomerID != cust.ID {
			return ErrForbidden
		}
	}

	if b.Status == domain.BookingCompleted || b.Status == domain.BookingCancelled {
		return ErrBadTransition
	}
	return s.bookings.CancelWithReason(ctx, id, reason)
}

// AssignCleaner is admin-only, enforced at the route level.
func (s *Service) AssignCleaner(ctx context.Context, bookingID, cleanerID uuid.UUID) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if b.Status != domain.BookingPending && b.Status != domain.BookingConfirmed {
		return ErrBadTransition
	}

	cleaner, err := s.cleaners.GetByID(ctx, cleanerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrValidation
	}
	if err != nil {
		return err
	}
	if !cleaner.Active {
		return ErrCleanerInactive
	}

	if err := s.bookings.AssignCleaner(ctx, bookingID, cleanerID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "idx_cleaner_slot" {
			return ErrCleanerUnavailable
		}
		return err
	}
	return nil
}

func (s *Service) ListByDate(ctx context.Context, date string) ([]domain.Booking, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrValidation
	}
	return s.bookings.ListByDate(ctx, date)
}

func slotOpen(date, slot string, now time.Time) bool {
	for _, s := range pricing.TimeSlotsFor(date, now) {
		if s == slot {
			return true
		}
	}
	return false
}
