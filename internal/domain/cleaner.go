package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cleaner is a staff profile assignable to bookings.
type Cleaner struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;uniqueIndex"`
	Name            string     `json:"name" gorm:"not null"`
	PhotoURL        string     `json:"photo_url,omitempty"`
	YearsExperience int        `json:"years_experience"`
	Rating          float64    `json:"rating"`
	RatingCount     int        `json:"rating_count"`
	Active          bool       `json:"active" gorm:"not null;default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Cleaner) TableName() string { return "cleaners" }

func (c *Cleaner) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
