package auth

import (
	"context"

	"github.com/google/uuid"

	"shalean/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type CustomerRepository interface {
	UpsertByEmail(ctx context.Context, c *domain.Customer) error
}

type CleanerRepository interface {
	Create(ctx context.Context, c *domain.Cleaner) error
}

type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, role string) (string, error)
}
