package admin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shalean/internal/domain"
	"shalean/internal/pkg/validator"
	"shalean/internal/pricing"
	"shalean/internal/repository"
)

type Service struct {
	prices PricingRepository
	cache  CacheInvalidator
	now    func() time.Time
}

func NewService(prices PricingRepository, cache CacheInvalidator) *Service {
	return &Service{prices: prices, cache: cache, now: time.Now}
}

var priceTypes = map[pricing.PriceType]bool{
	pricing.PriceBase:              true,
	pricing.PriceBedroom:           true,
	pricing.PriceBathroom:          true,
	pricing.PriceExtra:             true,
	pricing.PriceServiceFee:        true,
	pricing.PriceFrequencyDiscount: true,
}

// validateKey checks the field pairing for a price row: service-scoped
// types need a service, item-scoped types an item name, and service_fee
// neither.
func validateKey(priceType, serviceType, itemName string) error {
	pt := pricing.PriceType(priceType)
	if !priceTypes[pt] {
		return ErrValidation
	}

	switch pt {
	case pricing.PriceBase, pricing.PriceBedroom, pricing.PriceBathroom:
		if serviceType == "" || !pricing.ServiceType(serviceType).Valid() || itemName != "" {
			return ErrValidation
		}
	case pricing.PriceExtra:
		if itemName == "" || serviceType != "" {
			return ErrValidation
		}
	case pricing.PriceFrequencyDiscount:
		if itemName == "" || serviceType != "" {
			return ErrValidation
		}
		if pricing.Frequency(itemName) == pricing.FrequencyOneTime {
			return ErrValidation
		}
	case pricing.PriceServiceFee:
		if serviceType != "" || itemName != "" {
			return ErrValidation
		}
	}
	return nil
}

// SavePrice inserts a row effective immediately and invalidates the
// quote cache.
func (s *Service) SavePrice(ctx context.Context, adminID uuid.UUID, req SavePriceRequest) (*domain.PricingConfig, error) {
	if err := validateKey(req.PriceType, req.ServiceType, req.ItemName); err != nil {
		return nil, err
	}

	row := &domain.PricingConfig{
		ServiceType:   req.ServiceType,
		PriceType:     req.PriceType,
		ItemName:      req.ItemName,
		Price:         req.Price,
		EffectiveDate: s.now(),
		IsActive:      true,
		Notes:         req.Notes,
		CreatedBy:     &adminID,
	}
	if fields := validator.Validate(row); fields != nil {
		return nil, errors.Join(ErrValidation, &validator.Error{Fields: fields})
	}
	if err := s.prices.Create(ctx, row, req.Reason); err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return row, nil
}

func (s *Service) UpdatePrice(ctx context.Context, adminID, id uuid.UUID, req UpdatePriceRequest) (*domain.PricingConfig, error) {
	row, err := s.prices.Update(ctx, id, req.Price, &adminID, req.Reason)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return row, nil
}

// SchedulePrice stages a price change for a future date. The open row
// for the same key is end-dated the day before, so the change rolls
// over without intervention.
func (s *Service) SchedulePrice(ctx context.Context, adminID uuid.UUID, req SchedulePriceRequest) (*domain.PricingConfig, error) {
	if err := validateKey(req.PriceType, req.ServiceType, req.ItemName); err != nil {
		return nil, err
	}
	if !req.EffectiveDate.After(s.now()) {
		return nil, ErrValidation
	}

	row := &domain.PricingConfig{
		ServiceType:   req.ServiceType,
		PriceType:     req.PriceType,
		ItemName:      req.ItemName,
		Price:         req.Price,
		EffectiveDate: req.EffectiveDate,
		IsActive:      true,
		Notes:         req.Notes,
		CreatedBy:     &adminID,
	}
	if err := s.prices.ScheduleFuture(ctx, row, req.Reason); err != nil {
		return nil, err
	}

	// The schedule only shifts the current row's end date, but that row
	// may already be cached.
	s.cache.Invalidate()
	return row, nil
}

func (s *Service) DeactivatePrice(ctx context.Context, id uuid.UUID) error {
	err := s.prices.Deactivate(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	s.cache.Invalidate()
	return nil
}

func (s *Service) CurrentPrices(ctx context.Context) ([]domain.PricingConfig, error) {
	return s.prices.ListCurrent(ctx)
}

func (s *Service) ScheduledPrices(ctx context.Context) ([]domain.PricingConfig, error) {
	return s.prices.ListScheduled(ctx)
}

func (s *Service) PriceHistory(ctx context.Context, f repository.HistoryFilter) ([]domain.PricingHistory, error) {
	if f.Limit <= 0 || f.Limit > 500 {
		f.Limit = 100
	}
	return s.prices.History(ctx, f)
}
