package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shalean/internal/domain"
	"shalean/internal/pkg/validator"
)

const minPasswordLength = 8

type Service struct {
	users     UserRepository
	customers CustomerRepository
	cleaners  CleanerRepository
	jwt       TokenIssuer
}

func NewService(users UserRepository, customers CustomerRepository, cleaners CleanerRepository, jwt TokenIssuer) *Service {
	return &Service{users: users, customers: customers, cleaners: cleaners, jwt: jwt}
}

// Register creates the account and its profile row in one go. For
// customers the profile is upserted by email, so past guest bookings
// under the same address attach to the new account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if len(req.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	role := domain.RoleCustomer
	if req.Role == string(domain.RoleCleaner) {
		role = domain.RoleCleaner
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
	}
	if fields := validator.Validate(u); fields != nil {
		return nil, errors.Join(ErrValidation, &validator.Error{Fields: fields})
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	switch role {
	case domain.RoleCleaner:
		// New cleaners start inactive until an admin approves them.
		cleaner := &domain.Cleaner{
			UserID: &u.ID,
			Name:   strings.TrimSpace(req.FirstName + " " + req.LastName),
			Active: false,
		}
		if err := s.cleaners.Create(ctx, cleaner); err != nil {
			return nil, err
		}
	default:
		cust := &domain.Customer{
			UserID:    &u.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     email,
			Phone:     req.Phone,
		}
		if err := s.customers.UpsertByEmail(ctx, cust); err != nil {
			return nil, err
		}
	}

	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: u}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: u}, nil
}

func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}
