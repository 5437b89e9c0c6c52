package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is one scheduled cleaning visit. All money fields are cents;
// the pricing engine works in Rand and the booking service converts at
// the persistence boundary.
type Booking struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty" gorm:"type:uuid;index"`
	CleanerID  *uuid.UUID `json:"cleaner_id,omitempty" gorm:"type:uuid;index;uniqueIndex:idx_cleaner_slot,where:status <> 'cancelled'"`

	// Guest bookings carry contact details inline instead of a customer row.
	GuestFirstName string `json:"guest_first_name,omitempty"`
	GuestLastName  string `json:"guest_last_name,omitempty"`
	GuestEmail     string `json:"guest_email,omitempty"`
	GuestPhone     string `json:"guest_phone,omitempty"`

	ServiceType      string `json:"service_type" gorm:"not null;index"`
	Bedrooms         int    `json:"bedrooms"`
	Bathrooms        int    `json:"bathrooms"`
	Extras           string `json:"extras,omitempty" gorm:"type:text"`
	ExtrasQuantities string `json:"extras_quantities,omitempty" gorm:"type:text"`
	Frequency        string `json:"frequency" gorm:"type:varchar(24);not null;default:'one-time'"`

	// NULL cleaner rows do not collide on idx_cleaner_slot, so unassigned
	// bookings can share a slot freely. The index skips cancelled rows,
	// so a cancelled visit releases its slot.
	BookingDate string `json:"booking_date" gorm:"type:varchar(10);not null;index;uniqueIndex:idx_cleaner_slot"`
	BookingTime string `json:"booking_time" gorm:"type:varchar(5);not null;uniqueIndex:idx_cleaner_slot"`

	AddressLine1  string `json:"address_line1"`
	AddressSuburb string `json:"address_suburb"`
	AddressCity   string `json:"address_city"`
	Notes         string `json:"notes,omitempty" gorm:"type:text"`

	Status             BookingStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	CancellationReason string        `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`

	SubtotalCents        int64 `json:"subtotal_cents"`
	ServiceFeeCents      int64 `json:"service_fee_cents"`
	DiscountCents        int64 `json:"discount_cents"`
	TotalCents           int64 `json:"total_cents"`
	CleanerEarningsCents int64 `json:"cleaner_earnings_cents"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Cleaner  *Cleaner  `json:"cleaner,omitempty" gorm:"foreignKey:CleanerID"`
}

func (Booking) TableName() string { return "bookings" }

func (b *Booking) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
