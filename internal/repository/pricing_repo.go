package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shalean/internal/domain"
	"shalean/internal/pricing"
)

type PricingRepository struct {
	db *gorm.DB
}

func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// CurrentRecords implements pricing.Source: every active row whose
// validity window could contain now, ordered by effective date so that
// later changes win during the merge.
func (r *PricingRepository) CurrentRecords(ctx context.Context) ([]pricing.Record, error) {
	now := time.Now()

	var rows []domain.PricingConfig
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("effective_date <= ?", now).
		Where("end_date IS NULL OR end_date > ?", now).
		Order("effective_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]pricing.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, toPricingRecord(row))
	}
	return records, nil
}

func toPricingRecord(row domain.PricingConfig) pricing.Record {
	return pricing.Record{
		ID:            row.ID.String(),
		ServiceType:   row.ServiceType,
		PriceType:     pricing.PriceType(row.PriceType),
		ItemName:      row.ItemName,
		Price:         row.Price,
		EffectiveDate: row.EffectiveDate,
		EndDate:       row.EndDate,
		Active:        row.IsActive,
	}
}

func (r *PricingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PricingConfig, error) {
	var row domain.PricingConfig
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListCurrent returns the raw rows behind CurrentRecords for the admin
// view.
func (r *PricingRepository) ListCurrent(ctx context.Context) ([]domain.PricingConfig, error) {
	now := time.Now()

	var rows []domain.PricingConfig
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("effective_date <= ?", now).
		Where("end_date IS NULL OR end_date > ?", now).
		Order("price_type, service_type, item_name").
		Find(&rows).Error
	return rows, err
}

// ListScheduled returns active rows that only take effect in the future.
func (r *PricingRepository) ListScheduled(ctx context.Context) ([]domain.PricingConfig, error) {
	var rows []domain.PricingConfig
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("effective_date > ?", time.Now()).
		Order("effective_date ASC").
		Find(&rows).Error
	return rows, err
}

// Create inserts a new price row and its history entry in one
// transaction.
func (r *PricingRepository) Create(ctx context.Context, row *domain.PricingConfig, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return tx.Create(historyFor(row, nil, reason)).Error
	})
}

// Update changes an existing row's price and records the old value.
func (r *PricingRepository) Update(ctx context.Context, id uuid.UUID, price float64, changedBy *uuid.UUID, reason string) (*domain.PricingConfig, error) {
	var row domain.PricingConfig
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			return err
		}
		old := row.Price
		row.Price = price
		row.CreatedBy = changedBy
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		return tx.Create(historyFor(&row, &old, reason)).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ScheduleFuture closes the currently open row for the same key the day
// before effective and inserts the new row. The price change then rolls
// over on its own, no deploy needed.
func (r *PricingRepository) ScheduleFuture(ctx context.Context, row *domain.PricingConfig, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&domain.PricingConfig{}).
			Where("price_type = ?", row.PriceType).
			Where("is_active = ?", true).
			Where("end_date IS NULL")
		if row.ServiceType != "" {
			q = q.Where("service_type = ?", row.ServiceType)
		} else {
			q = q.Where("service_type IS NULL OR service_type = ''")
		}
		if row.ItemName != "" {
			q = q.Where("item_name = ?", row.ItemName)
		} else {
			q = q.Where("item_name IS NULL OR item_name = ''")
		}

		var current domain.PricingConfig
		err := q.First(&current).Error
		switch {
		case err == nil:
			end := row.EffectiveDate.AddDate(0, 0, -1)
			if err := tx.Model(&current).Update("end_date", end).Error; err != nil {
				return err
			}
		case err == gorm.ErrRecordNotFound:
			// Nothing open for this key; the new row stands alone.
		default:
			return err
		}

		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return tx.Create(historyFor(row, nil, reason)).Error
	})
}

// Deactivate retires a row immediately.
func (r *PricingRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&domain.PricingConfig{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active": false,
			"end_date":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HistoryFilter narrows the audit listing; zero values mean no filter.
type HistoryFilter struct {
	PriceType   string
	ServiceType string
	ItemName    string
	Limit       int
}

func (r *PricingRepository) History(ctx context.Context, f HistoryFilter) ([]domain.PricingHistory, error) {
	q := r.db.WithContext(ctx).Model(&domain.PricingHistory{}).Order("changed_at DESC")
	if f.PriceType != "" {
		q = q.Where("price_type = ?", f.PriceType)
	}
	if f.ServiceType != "" {
		q = q.Where("service_type = ?", f.ServiceType)
	}
	if f.ItemName != "" {
		q = q.Where("item_name = ?", f.ItemName)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var rows []domain.PricingHistory
	err := q.Find(&rows).Error
	return rows, err
}

func historyFor(row *domain.PricingConfig, oldPrice *float64, reason string) *domain.PricingHistory {
	return &domain.PricingHistory{
		PricingConfigID: row.ID,
		ServiceType:     row.ServiceType,
		PriceType:       row.PriceType,
		ItemName:        row.ItemName,
		OldPrice:        oldPrice,
		NewPrice:        row.Price,
		ChangedBy:       row.CreatedBy,
		ChangeReason:    reason,
	}
}
