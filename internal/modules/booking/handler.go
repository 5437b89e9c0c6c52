package booking

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

// RegisterRoutes mounts the booking endpoints. public carries
// OptionalAuth so guests can book; authed requires a valid token.
func (h *Handler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.POST("/bookings", h.CreateBooking)
	public.GET("/bookings/slots", h.Slots)

	authed.GET("/bookings/my", h.MyBookings)
	authed.GET("/bookings/schedule", h.CleanerSchedule)
	authed.GET("/bookings/:id", h.GetBooking)
	authed.PATCH("/bookings/:id/status", h.UpdateStatus)
	authed.POST("/bookings/:id/cancel", h.Cancel)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.writeError(c, err, "Failed to create booking")
		return
	}
	response.Created(c, gin.H{"booking": b})
}

func (h *Handler) Slots(c *gin.Context) {
	date := c.Query("date")
	slots, err := h.service.Slots(date)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"date": date, "slots": slots})
}

func (h *Handler) MyBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, err := h.service.MyBookings(c.Request.Context(), middleware.UserID(c), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) CleanerSchedule(c *gin.Context) {
	rows, err := h.service.CleanerSchedule(c.Request.Context(), middleware.UserID(c), c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list schedule")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id, middleware.UserID(c), c.GetString("role"))
	if err != nil {
		h.writeError(c, err, "Failed to load booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, middleware.UserID(c), c.GetString("role"), req.Status)
	if err != nil {
		h.writeError(c, err, "Failed to update status")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id, middleware.UserID(c), c.GetString("role"), req.Reason); err != nil {
		h.writeError(c, err, "Failed to cancel booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this booking")
	case errors.Is(err, ErrBadTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Booking cannot move to that status")
	case errors.Is(err, ErrCleanerInactive):
		response.Error(c, http.StatusConflict, "CLEANER_INACTIVE", "Selected cleaner is not available")
	case errors.Is(err, ErrCleanerUnavailable):
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "Cleaner already has a booking for this slot")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
