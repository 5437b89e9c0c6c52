package review

import "github.com/google/uuid"

type CreateReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string    `json:"comment"`
}
