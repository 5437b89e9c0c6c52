package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shalean/internal/middleware"
	"shalean/internal/modules/booking"
	"shalean/internal/pkg/response"
	"shalean/internal/pkg/validator"
	"shalean/internal/repository"
)

// Handler mounts under /admin behind the admin role middleware.
type Handler struct {
	service  *Service
	bookings *booking.Service
}

func NewHandler(service *Service, bookings *booking.Service) *Handler {
	return &Handler{service: service, bookings: bookings}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pricing", h.CurrentPrices)
	rg.GET("/pricing/scheduled", h.ScheduledPrices)
	rg.GET("/pricing/history", h.PriceHistory)
	rg.POST("/pricing", h.SavePrice)
	rg.PUT("/pricing/:id", h.UpdatePrice)
	rg.POST("/pricing/schedule", h.SchedulePrice)
	rg.POST("/pricing/:id/deactivate", h.DeactivatePrice)

	rg.GET("/bookings", h.BookingsByDate)
	rg.POST("/bookings/:id/assign", h.AssignCleaner)
}

func (h *Handler) CurrentPrices(c *gin.Context) {
	rows, err := h.service.CurrentPrices(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list prices")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"prices": rows})
}

func (h *Handler) ScheduledPrices(c *gin.Context) {
	rows, err := h.service.ScheduledPrices(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list scheduled prices")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"prices": rows})
}

func (h *Handler) PriceHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	rows, err := h.service.PriceHistory(c.Request.Context(), repository.HistoryFilter{
		PriceType:   c.Query("price_type"),
		ServiceType: c.Query("service_type"),
		ItemName:    c.Query("item_name"),
		Limit:       limit,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load history")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"history": rows})
}

func (h *Handler) SavePrice(c *gin.Context) {
	var req SavePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	row, err := h.service.SavePrice(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.writePricingError(c, err, "Failed to save price")
		return
	}
	response.Created(c, gin.H{"price": row})
}

func (h *Handler) UpdatePrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid price id")
		return
	}

	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	row, err := h.service.UpdatePrice(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		h.writePricingError(c, err, "Failed to update price")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"price": row})
}

func (h *Handler) SchedulePrice(c *gin.Context) {
	var req SchedulePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	row, err := h.service.SchedulePrice(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.writePricingError(c, err, "Failed to schedule price")
		return
	}
	response.Created(c, gin.H{"price": row})
}

func (h *Handler) DeactivatePrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid price id")
		return
	}

	if err := h.service.DeactivatePrice(c.Request.Context(), id); err != nil {
		h.writePricingError(c, err, "Failed to deactivate price")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deactivated": true})
}

func (h *Handler) BookingsByDate(c *gin.Context) {
	rows, err := h.bookings.ListByDate(c.Request.Context(), c.Query("date"))
	if errors.Is(err, booking.ErrValidation) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) AssignCleaner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req booking.AssignCleanerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	switch err := h.bookings.AssignCleaner(c.Request.Context(), id, req.CleanerID); {
	case errors.Is(err, booking.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, booking.ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown cleaner")
	case errors.Is(err, booking.ErrBadTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Booking can no longer be assigned")
	case errors.Is(err, booking.ErrCleanerInactive):
		response.Error(c, http.StatusConflict, "CLEANER_INACTIVE", "Cleaner is not active")
	case errors.Is(err, booking.ErrCleanerUnavailable):
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "Cleaner already has a booking for this slot")
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to assign cleaner")
	default:
		response.Success(c, http.StatusOK, gin.H{"assigned": true})
	}
}

func (h *Handler) writePricingError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		var vErr *validator.Error
		if errors.As(err, &vErr) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pricing row", vErr.Fields)
			break
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pricing row")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Pricing row not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
