package admin

import (
	"context"

	"github.com/google/uuid"

	"shalean/internal/domain"
	"shalean/internal/repository"
)

type PricingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PricingConfig, error)
	ListCurrent(ctx context.Context) ([]domain.PricingConfig, error)
	ListScheduled(ctx context.Context) ([]domain.PricingConfig, error)
	Create(ctx context.Context, row *domain.PricingConfig, reason string) error
	Update(ctx context.Context, id uuid.UUID, price float64, changedBy *uuid.UUID, reason string) (*domain.PricingConfig, error)
	ScheduleFuture(ctx context.Context, row *domain.PricingConfig, reason string) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	History(ctx context.Context, f repository.HistoryFilter) ([]domain.PricingHistory, error)
}

// CacheInvalidator drops the resolver's cached table after a price
// change so the next quote sees the new rows.
type CacheInvalidator interface {
	Invalidate()
}
