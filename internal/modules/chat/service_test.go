package chat

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shalean/internal/domain"
)

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID, limit int) ([]domain.Message, error) {
	args := m.Called(ctx, bookingID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type MockCleanerRepository struct {
	mock.Mock
}

func (m *MockCleanerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Cleaner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cleaner), args.Error(1)
}

func TestService_SendMessage(t *testing.T) {
	bookingID := uuid.New()
	custID := uuid.New()
	userID := uuid.New()
	row := &domain.Booking{ID: bookingID, CustomerID: &custID}

	t.Run("customer posts to own thread", func(t *testing.T) {
		messages := new(MockMessageRepository)
		bookings := new(MockBookingRepository)
		customers := new(MockCustomerRepository)
		svc := NewService(messages, bookings, customers, new(MockCleanerRepository), nil)

		bookings.On("GetByID", mock.Anything, bookingID).Return(row, nil)
		customers.On("GetByUserID", mock.Anything, userID).Return(&domain.Customer{ID: custID}, nil)
		messages.On("Create", mock.Anything, mock.AnythingOfType("*domain.Message")).Return(nil)

		m, err := svc.SendMessage(context.Background(), bookingID, userID, "customer", "  Gate code is 4417  ")
		require.NoError(t, err)
		assert.Equal(t, "Gate code is 4417", m.Body)
		assert.Equal(t, userID, m.SenderID)
		messages.AssertExpectations(t)
	})

	t.Run("stranger rejected", func(t *testing.T) {
		messages := new(MockMessageRepository)
		bookings := new(MockBookingRepository)
		customers := new(MockCustomerRepository)
		svc := NewService(messages, bookings, customers, new(MockCleanerRepository), nil)

		bookings.On("GetByID", mock.Anything, bookingID).Return(row, nil)
		customers.On("GetByUserID", mock.Anything, userID).Return(&domain.Customer{ID: uuid.New()}, nil)

		_, err := svc.SendMessage(context.Background(), bookingID, userID, "customer", "hello")
		assert.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("empty body rejected", func(t *testing.T) {
		svc := NewService(new(MockMessageRepository), new(MockBookingRepository), new(MockCustomerRepository), new(MockCleanerRepository), nil)

		_, err := svc.SendMessage(context.Background(), bookingID, userID, "customer", "   ")
		assert.ErrorIs(t, err, ErrEmptyBody)
	})

	t.Run("oversized body truncated", func(t *testing.T) {
		messages := new(MockMessageRepository)
		bookings := new(MockBookingRepository)
		svc := NewService(messages, bookings, new(MockCustomerRepository), new(MockCleanerRepository), nil)

		bookings.On("GetByID", mock.Anything, bookingID).Return(row, nil)
		messages.On("Create", mock.Anything, mock.Anything).Return(nil)

		m, err := svc.SendMessage(context.Background(), bookingID, userID, "admin", strings.Repeat("a", 5000))
		require.NoError(t, err)
		assert.Len(t, m.Body, maxBodyLength)
	})

	t.Run("truncation keeps valid utf8", func(t *testing.T) {
		messages := new(MockMessageRepository)
		bookings := new(MockBookingRepository)
		svc := NewService(messages, bookings, new(MockCustomerRepository), new(MockCleanerRepository), nil)

		bookings.On("GetByID", mock.Anything, bookingID).Return(row, nil)
		messages.On("Create", mock.Anything, mock.Anything).Return(nil)

		// "✓" is three bytes; the first one straddles the limit.
		body := strings.Repeat("a", maxBodyLength-1) + strings.Repeat("✓", 10)
		m, err := svc.SendMessage(context.Background(), bookingID, userID, "admin", body)
		require.NoError(t, err)
		assert.True(t, utf8.ValidString(m.Body))
		assert.Equal(t, strings.Repeat("a", maxBodyLength-1), m.Body)
	})

	t.Run("missing booking", func(t *testing.T) {
		bookings := new(MockBookingRepository)
		svc := NewService(new(MockMessageRepository), bookings, new(MockCustomerRepository), new(MockCleanerRepository), nil)

		bookings.On("GetByID", mock.Anything, bookingID).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.SendMessage(context.Background(), bookingID, userID, "admin", "hi")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_History(t *testing.T) {
	bookingID := uuid.New()
	cleanerID := uuid.New()
	userID := uuid.New()
	row := &domain.Booking{ID: bookingID, CleanerID: &cleanerID}

	t.Run("assigned cleaner reads thread", func(t *testing.T) {
		messages := new(MockMessageRepository)
		bookings := new(MockBookingRepository)
		cleaners := new(MockCleanerRepository)
		svc := NewService(messages, bookings, new(MockCustomerRepository), cleaners, nil)

		bookings.On("GetByID", mock.Anything, bookingID).Return(row, nil)
		cleaners.On("GetByUserID", mock.Anything, userID).Return(&domain.Cleaner{ID: cleanerID}, nil)
		messages.On("ListByBooking", mock.Anything, bookingID, 50).
			Return([]domain.Message{{Body: "On my way"}}, nil)

		rows, err := svc.History(context.Background(), bookingID, userID, "cleaner", 50)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("other cleaner rejected", func(t *testing.T) {
		bookings := new(MockBookingRepository)
		cleaners := new(MockCleanerRepository)
		svc := NewService(new(MockMessageRepository), bookings, new(MockCustomerRepository), cleaners, nil)

		bookings.On("GetByID", mock.Anything, bookingID).Return(row, nil)
		cleaners.On("GetByUserID", mock.Anything, userID).Return(&domain.Cleaner{ID: uuid.New()}, nil)

		_, err := svc.History(context.Background(), bookingID, userID, "cleaner", 50)
		assert.ErrorIs(t, err, ErrNotParticipant)
	})
}
