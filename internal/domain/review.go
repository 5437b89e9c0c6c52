package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is customer feedback on a completed booking. One review per
// booking, enforced by the unique index.
type Review struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID  uuid.UUID `json:"booking_id" gorm:"type:uuid;uniqueIndex;not null"`
	CustomerID uuid.UUID `json:"customer_id" gorm:"type:uuid;index;not null"`
	CleanerID  uuid.UUID `json:"cleaner_id" gorm:"type:uuid;index;not null"`
	Rating     int       `json:"rating" gorm:"not null" validate:"required,gte=1,lte=5"`
	Comment    string    `json:"comment,omitempty" gorm:"type:text"`
	IsHidden   bool      `json:"is_hidden"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Review) TableName() string { return "reviews" }

func (r *Review) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
