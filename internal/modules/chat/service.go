package chat

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shalean/internal/domain"
)

var (
	ErrNotParticipant  = errors.New("you are not a participant of this booking")
	ErrEmptyBody       = errors.New("message body cannot be empty")
	ErrBookingNotFound = errors.New("booking not found")
)

const maxBodyLength = 2000

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	ListByBooking(ctx context.Context, bookingID uuid.UUID, limit int) ([]domain.Message, error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

type CustomerRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Customer, error)
}

type CleanerRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Cleaner, error)
}

// Service handles a per-booking message thread between the customer and
// the assigned cleaner. Admins can read and post anywhere.
type Service struct {
	messages  MessageRepository
	bookings  BookingRepository
	customers CustomerRepository
	cleaners  CleanerRepository
	hub       *Hub
}

func NewService(messages MessageRepository, bookings BookingRepository, customers CustomerRepository, cleaners CleanerRepository, hub *Hub) *Service {
	return &Service{messages: messages, bookings: bookings, customers: customers, cleaners: cleaners, hub: hub}
}

func (s *Service) authorize(ctx context.Context, b *domain.Booking, userID uuid.UUID, role string) error {
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
	return ErrNotParticipant
}

func (s *Service) loadBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// SendMessage stores the message and pushes it to the counterpart's
// live connection when there is one.
func (s *Service) SendMessage(ctx context.Context, bookingID, senderID uuid.UUID, role, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyBody
	}
	if len(body) > maxBodyLength {
		// Back off to a rune boundary so the cut never leaves a
		// partial UTF-8 sequence behind.
		cut := maxBodyLength
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut]
	}

	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, b, senderID, role); err != nil {
		return nil, err
	}

	m := &domain.Message{
		BookingID: bookingID,
		SenderID:  senderID,
		Body:      body,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}

	if s.hub != nil {
		for _, uid := range counterparts(b, senderID) {
			s.hub.SendToUser(uid, MessageEvent{Type: "message", Message: m})
		}
	}
	return m, nil
}

// counterparts resolves the other side's user IDs for live delivery.
// Guests and unassigned bookings simply have nobody to push to.
func counterparts(b *domain.Booking, senderID uuid.UUID) []uuid.UUID {
	var out []uuid.UUID

	if b.Customer != nil && b.Customer.UserID != nil && *b.Customer.UserID != senderID {
		out = append(out, *b.Customer.UserID)
	}
	if b.Cleaner != nil && b.Cleaner.UserID != nil && *b.Cleaner.UserID != senderID {
		out = append(out, *b.Cleaner.UserID)
	}
	return out
}

func (s *Service) History(ctx context.Context, bookingID, userID uuid.UUID, role string, limit int) ([]domain.Message, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, b, userID, role); err != nil {
		return nil, err
	}
	return s.messages.ListByBooking(ctx, bookingID, limit)
}
