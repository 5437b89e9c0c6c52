package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is the booking-side profile. UserID is set once the customer
// registers; guest checkouts create a customer row keyed by email.
type Customer struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;uniqueIndex"`
	FirstName string     `json:"first_name" gorm:"not null"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Phone     string     `json:"phone,omitempty"`

	AddressLine1  string `json:"address_line1,omitempty"`
	AddressSuburb string `json:"address_suburb,omitempty"`
	AddressCity   string `json:"address_city,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }

func (c *Customer) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
