package quote

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shalean/internal/pkg/response"
	"shalean/internal/pricing"
)

// Pricer is the slice of *pricing.Resolver the quote endpoints use.
type Pricer interface {
	Current(ctx context.Context) (*pricing.Table, error)
	Calculate(ctx context.Context, req pricing.Request, freq pricing.Frequency) pricing.Breakdown
}

// Handler serves the public pricing endpoints. Quotes are estimates;
// the booking flow re-prices server-side on creation.
type Handler struct {
	prices  Pricer
	timeout time.Duration
}

func NewHandler(prices Pricer, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Handler{prices: prices, timeout: timeout}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/pricing/quote", h.Quote)
	rg.GET("/pricing/current", h.Current)
	rg.GET("/pricing/time-slots", h.TimeSlots)
}

func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc := pricing.ServiceType(req.ServiceType)
	if !svc.Valid() {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown service type")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	freq := pricing.NormalizeFrequency(req.Frequency)
	bd := h.prices.Calculate(ctx, pricing.Request{
		Service:          svc,
		Bedrooms:         req.Bedrooms,
		Bathrooms:        req.Bathrooms,
		Extras:           req.Extras,
		ExtraQuantities:  req.ExtrasQuantities,
		Carpet:           req.CarpetDetails,
		ProvideEquipment: req.ProvideEquipment,
	}, freq)

	response.Success(c, http.StatusOK, QuoteResponse{Breakdown: bd, Frequency: string(freq)})
}

// Current exposes the merged price table so clients can render prices
// without a round trip per field. Falls back to the bundled defaults
// when the store is unreachable.
func (h *Handler) Current(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	source := "store"
	tbl, err := h.prices.Current(ctx)
	if err != nil {
		tbl = pricing.DefaultTable()
		source = "default"
	}
	response.Success(c, http.StatusOK, gin.H{"pricing": tbl, "source": source})
}

func (h *Handler) TimeSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Success(c, http.StatusOK, gin.H{"slots": pricing.TimeSlots()})
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"date": date, "slots": pricing.TimeSlotsFor(date, time.Now())})
}
