package review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shalean/internal/middleware"
	"shalean/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/cleaners/:id/reviews", h.CleanerReviews)
	authed.POST("/reviews", h.CreateReview)
}

func (h *Handler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rv, err := h.service.CreateReview(c.Request.Context(), middleware.UserID(c), req)
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only review your own bookings")
	case errors.Is(err, ErrNotCompleted):
		response.Error(c, http.StatusConflict, "NOT_COMPLETED", "Only completed bookings can be reviewed")
	case errors.Is(err, ErrAlreadyReviewed):
		response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", "This booking already has a review")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create review")
	default:
		response.Created(c, gin.H{"review": rv})
	}
}

func (h *Handler) CleanerReviews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid cleaner id")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	cleaner, rows, err := h.service.CleanerReviews(c.Request.Context(), id, limit, offset)
	if errors.Is(err, ErrNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Cleaner not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reviews")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"cleaner": gin.H{
			"id":           cleaner.ID,
			"name":         cleaner.Name,
			"rating":       cleaner.Rating,
			"rating_count": cleaner.RatingCount,
		},
		"reviews": rows,
	})
}
