package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is one chat line in a booking's thread between the customer
// and the assigned cleaner.
type Message struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID uuid.UUID `json:"booking_id" gorm:"type:uuid;index;not null"`
	SenderID  uuid.UUID `json:"sender_id" gorm:"type:uuid;index;not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (Message) TableName() string { return "messages" }

func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
