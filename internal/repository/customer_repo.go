package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shalean/internal/domain"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.WithContext(ctx).
		First(&c, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertByEmail reuses an existing customer row for repeat guest
// bookings, updating contact details in place. When the caller carries
// a user id and the row is still a guest profile, the row is linked to
// the account, so past guest bookings follow the registration. An
// already-linked row keeps its user.
func (r *CustomerRepository) UpsertByEmail(ctx context.Context, c *domain.Customer) error {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))

	existing, err := r.GetByEmail(ctx, c.Email)
	if err == gorm.ErrRecordNotFound {
		return r.Create(ctx, c)
	}
	if err != nil {
		return err
	}

	if existing.UserID == nil && c.UserID != nil {
		existing.UserID = c.UserID
	}
	existing.FirstName = c.FirstName
	existing.LastName = c.LastName
	existing.Phone = c.Phone
	if c.AddressLine1 != "" {
		existing.AddressLine1 = c.AddressLine1
		existing.AddressSuburb = c.AddressSuburb
		existing.AddressCity = c.AddressCity
	}
	if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return err
	}
	*c = *existing
	return nil
}
