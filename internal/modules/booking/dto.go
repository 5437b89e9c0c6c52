package booking

import (
	"github.com/google/uuid"

	"shalean/internal/pricing"
)

type CreateBookingRequest struct {
	ServiceType      string                 `json:"service_type" binding:"required"`
	Bedrooms         int                    `json:"bedrooms"`
	Bathrooms        int                    `json:"bathrooms"`
	Extras           []string               `json:"extras"`
	ExtrasQuantities map[string]int         `json:"extras_quantities"`
	CarpetDetails    *pricing.CarpetDetails `json:"carpet_details"`
	ProvideEquipment bool                   `json:"provide_equipment"`
	Frequency        string                 `json:"frequency"`

	BookingDate string `json:"booking_date" binding:"required"`
	BookingTime string `json:"booking_time" binding:"required"`

	AddressLine1  string `json:"address_line1" binding:"required"`
	AddressSuburb string `json:"address_suburb"`
	AddressCity   string `json:"address_city"`
	Notes         string `json:"notes"`

	// Contact details, required for guest checkouts. For authenticated
	// customers they are taken from the profile instead.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	CleanerID *uuid.UUID `json:"cleaner_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type AssignCleanerRequest struct {
	CleanerID uuid.UUID `json:"cleaner_id" binding:"required"`
}
