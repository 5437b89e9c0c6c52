package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PricingConfig is one time-bounded price row. ServiceType is set for
// base/bedroom/bathroom rows, ItemName for extra and frequency_discount
// rows. The row is authoritative while [EffectiveDate, EndDate) contains
// today; outside that window the bundled default applies.
type PricingConfig struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ServiceType   string     `json:"service_type,omitempty" gorm:"index" validate:"omitempty,service_type"`
	PriceType     string     `json:"price_type" gorm:"type:varchar(24);not null;index"`
	ItemName      string     `json:"item_name,omitempty" gorm:"index"`
	Price         float64    `json:"price" gorm:"not null" validate:"gte=0"`
	EffectiveDate time.Time  `json:"effective_date" gorm:"not null;index"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	IsActive      bool       `json:"is_active" gorm:"not null;default:true;index"`
	Notes         string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy     *uuid.UUID `json:"created_by,omitempty" gorm:"type:uuid"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (PricingConfig) TableName() string { return "pricing_configs" }

func (p *PricingConfig) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PricingHistory records every price change for the admin audit view.
type PricingHistory struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	PricingConfigID uuid.UUID  `json:"pricing_config_id" gorm:"type:uuid;index;not null"`
	ServiceType     string     `json:"service_type,omitempty"`
	PriceType       string     `json:"price_type" gorm:"type:varchar(24);not null;index"`
	ItemName        string     `json:"item_name,omitempty"`
	OldPrice        *float64   `json:"old_price,omitempty"`
	NewPrice        float64    `json:"new_price"`
	ChangedBy       *uuid.UUID `json:"changed_by,omitempty" gorm:"type:uuid"`
	ChangedAt       time.Time  `json:"changed_at" gorm:"autoCreateTime;index"`
	ChangeReason    string     `json:"change_reason,omitempty" gorm:"type:text"`
}

func (PricingHistory) TableName() string { return "pricing_histories" }

func (p *PricingHistory) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
