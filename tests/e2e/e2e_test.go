package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shalean/internal/database"
	"shalean/internal/domain"
	"shalean/internal/middleware"
	"shalean/internal/modules/admin"
	"shalean/internal/modules/auth"
	"shalean/internal/modules/booking"
	"shalean/internal/modules/catalog"
	"shalean/internal/modules/chat"
	"shalean/internal/modules/quote"
	"shalean/internal/modules/review"
	jwtsvc "shalean/internal/pkg/jwt"
	"shalean/internal/pricing"
	"shalean/internal/repository"
)

type suite struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwtsvc.Service
}

type envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *errorDetail           `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setup(t *testing.T) *suite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Customer{},
		&domain.Cleaner{},
		&domain.Booking{},
		&domain.Review{},
		&domain.Message{},
		&domain.PricingConfig{},
		&domain.PricingHistory{},
	))

	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	cleanerRepo := repository.NewCleanerRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	pricingRepo := repository.NewPricingRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)
	resolver := pricing.NewResolver(pricingRepo)

	authHandler := auth.NewHandler(auth.NewService(userRepo, customerRepo, cleanerRepo, j))
	quoteHandler := quote.NewHandler(resolver, 2*time.Second)
	catalogHandler := catalog.NewHandler(catalog.NewService(resolver))
	bookingService := booking.NewService(bookingRepo, customerRepo, cleanerRepo, resolver, 0.60)
	bookingHandler := booking.NewHandler(bookingService)
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, bookingRepo, customerRepo, cleanerRepo))
	hub := chat.NewHub()
	t.Cleanup(hub.Close)
	chatHandler := chat.NewHandler(chat.NewService(messageRepo, bookingRepo, customerRepo, cleanerRepo, hub), hub, j)
	adminHandler := admin.NewHandler(admin.NewService(pricingRepo, resolver), bookingService)

	r := gin.New()
	v1 := r.Group("/api/v1")

	public := v1.Group("/")
	public.Use(middleware.OptionalAuth(j))
	authed := v1.Group("/")
	authed.Use(middleware.Auth(j))

	quoteHandler.RegisterRoutes(public)
	catalogHandler.RegisterRoutes(public)
	authHandler.RegisterRoutes(public, authed)
	bookingHandler.RegisterRoutes(public, authed)
	reviewHandler.RegisterRoutes(public, authed)
	chatHandler.RegisterRoutes(public, authed)

	adminGroup := v1.Group("/admin")
	adminGroup.Use(middleware.Auth(j), middleware.RequireRole("admin"))
	adminHandler.RegisterRoutes(adminGroup)

	return &suite{router: r, db: db, jwt: j}
}

func (s *suite) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *suite) adminToken(t *testing.T) string {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	u := domain.User{Email: fmt.Sprintf("admin-%s@shalean.co.za", uuid.NewString()[:8]), PasswordHash: string(hash), Role: domain.RoleAdmin}
	require.NoError(t, s.db.Create(&u).Error)
	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	require.NoError(t, err)
	return token
}

func (s *suite) seedCleaner(t *testing.T) (domain.Cleaner, string) {
	t.Helper()
	u := domain.User{Email: fmt.Sprintf("cleaner-%s@shalean.co.za", uuid.NewString()[:8]), PasswordHash: "x", Role: domain.RoleCleaner}
	require.NoError(t, s.db.Create(&u).Error)
	c := domain.Cleaner{UserID: &u.ID, Name: "Nomsa Dlamini", Active: true}
	require.NoError(t, s.db.Create(&c).Error)
	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	require.NoError(t, err)
	return c, token
}

func (s *suite) registerCustomer(t *testing.T, email string) string {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":      email,
		"password":   "customer123",
		"first_name": "Thandi",
		"phone":      "+27 82 555 0100",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return env.Data["token"].(string)
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func TestQuoteAndCatalogFlow(t *testing.T) {
	s := setup(t)

	w, env := s.do(t, http.MethodPost, "/api/v1/pricing/quote", "", gin.H{
		"service_type": "Standard",
		"bedrooms":     2,
		"bathrooms":    1,
	})
	require.Equal(t, http.StatusOK, w.Code)
	bd := env.Data["breakdown"].(map[string]interface{})
	assert.Equal(t, 320.0, bd["subtotal"])
	assert.Equal(t, 370.0, bd["total"])

	w, env = s.do(t, http.MethodGet, "/api/v1/catalog/services", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["services"], 5)

	w, env = s.do(t, http.MethodGet, "/api/v1/bookings/slots?date="+tomorrow(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["slots"], 24)
}

func TestAdminPriceOverrideReachesQuotes(t *testing.T) {
	s := setup(t)
	adminToken := s.adminToken(t)

	// Warm the resolver cache with the defaults first.
	w, env := s.do(t, http.MethodPost, "/api/v1/pricing/quote", "", gin.H{"service_type": "Standard"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 250.0, env.Data["breakdown"].(map[string]interface{})["subtotal"])

	w, _ = s.do(t, http.MethodPost, "/api/v1/admin/pricing", adminToken, gin.H{
		"service_type": "Standard",
		"price_type":   "base",
		"price":        300,
		"reason":       "winter rates",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Save invalidated the cache, so the next quote sees the new base.
	w, env = s.do(t, http.MethodPost, "/api/v1/pricing/quote", "", gin.H{"service_type": "Standard"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 300.0, env.Data["breakdown"].(map[string]interface{})["subtotal"])

	w, env = s.do(t, http.MethodGet, "/api/v1/admin/pricing/history", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["history"], 1)

	// Non-admins stay out.
	w, _ = s.do(t, http.MethodGet, "/api/v1/admin/pricing", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingLifecycle(t *testing.T) {
	s := setup(t)
	adminToken := s.adminToken(t)
	cleaner, cleanerToken := s.seedCleaner(t)
	custToken := s.registerCustomer(t, "thandi@example.com")

	w, env := s.do(t, http.MethodPost, "/api/v1/bookings", custToken, gin.H{
		"service_type":  "Standard",
		"bedrooms":      2,
		"bathrooms":     1,
		"extras":        []string{"Inside Oven"},
		"booking_date":  tomorrow(),
		"booking_time":  "09:00",
		"address_line1": "12 Kloof St",
		"address_city":  "Cape Town",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := env.Data["booking"].(map[string]interface{})
	bookingID := created["id"].(string)
	// 320 + 30 extra = 350 subtotal, +50 fee = 400 total.
	assert.Equal(t, 35000.0, created["subtotal_cents"])
	assert.Equal(t, 40000.0, created["total_cents"])
	assert.Equal(t, 21000.0, created["cleaner_earnings_cents"])
	assert.Equal(t, "pending", created["status"])

	w, env = s.do(t, http.MethodGet, "/api/v1/bookings/my", custToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["bookings"], 1)

	w, _ = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/bookings/%s/assign", bookingID), adminToken, gin.H{
		"cleaner_id": cleaner.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The assigned cleaner walks it through confirmed to completed.
	w, _ = s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%s/status", bookingID), cleanerToken, gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Completed cannot be skipped to from pending, and customers cannot
	// drive the status at all.
	w, _ = s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%s/status", bookingID), custToken, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%s/status", bookingID), cleanerToken, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)

	// Chat on the booking thread.
	w, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%s/messages", bookingID), custToken, gin.H{"body": "Gate code is 4417"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/bookings/%s/messages", bookingID), cleanerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["messages"], 1)

	// Review the completed visit.
	w, env = s.do(t, http.MethodPost, "/api/v1/reviews", custToken, gin.H{
		"booking_id": bookingID,
		"rating":     5,
		"comment":    "Spotless.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/cleaners/%s/reviews", cleaner.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["reviews"], 1)
	assert.Equal(t, 5.0, env.Data["cleaner"].(map[string]interface{})["rating"])

	// A second review of the same visit is refused.
	w, env = s.do(t, http.MethodPost, "/api/v1/reviews", custToken, gin.H{
		"booking_id": bookingID,
		"rating":     1,
		"comment":    "Changed my mind.",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_REVIEWED", env.Error.Code)

	// Cancelling a completed booking is refused.
	w, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%s/cancel", bookingID), custToken, gin.H{"reason": "changed plans"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_STATUS", env.Error.Code)
}

func TestGuestBooking(t *testing.T) {
	s := setup(t)

	w, env := s.do(t, http.MethodPost, "/api/v1/bookings", "", gin.H{
		"service_type":  "Deep",
		"bedrooms":      3,
		"bathrooms":     2,
		"frequency":     "custom-weekly",
		"booking_date":  tomorrow(),
		"booking_time":  "10:30",
		"address_line1": "3 Beach Rd",
		"first_name":    "James",
		"email":         "james@example.com",
		"phone":         "+27 82 555 0111",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := env.Data["booking"].(map[string]interface{})
	assert.Equal(t, "weekly", created["frequency"])
	assert.Equal(t, "james@example.com", created["guest_email"])

	// Deep 3bd/2bth = 450+105+90 = 645, weekly -15% = 96.75, +50 fee.
	assert.Equal(t, 64500.0, created["subtotal_cents"])
	assert.Equal(t, 9675.0, created["discount_cents"])
	assert.Equal(t, 59825.0, created["total_cents"])

	// Missing contact details sink a guest booking.
	w, env = s.do(t, http.MethodPost, "/api/v1/bookings", "", gin.H{
		"service_type":  "Standard",
		"booking_date":  tomorrow(),
		"booking_time":  "09:00",
		"address_line1": "3 Beach Rd",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestGuestBookingFollowsRegistration(t *testing.T) {
	s := setup(t)

	w, _ := s.do(t, http.MethodPost, "/api/v1/bookings", "", gin.H{
		"service_type":  "Standard",
		"bedrooms":      1,
		"bathrooms":     1,
		"booking_date":  tomorrow(),
		"booking_time":  "08:00",
		"address_line1": "7 Long St",
		"first_name":    "Zanele",
		"email":         "zanele@example.com",
		"phone":         "+27 82 555 0122",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Registering with the same email links the guest profile to the
	// new account, so the earlier booking shows up immediately.
	token := s.registerCustomer(t, "zanele@example.com")

	w, env := s.do(t, http.MethodGet, "/api/v1/bookings/my", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, env.Data["bookings"], 1)
}

func TestCancelledVisitFreesTheSlot(t *testing.T) {
	s := setup(t)
	cleaner, _ := s.seedCleaner(t)
	custToken := s.registerCustomer(t, "lerato@example.com")

	book := func() (*httptest.ResponseRecorder, envelope) {
		return s.do(t, http.MethodPost, "/api/v1/bookings", custToken, gin.H{
			"service_type":  "Standard",
			"bedrooms":      1,
			"bathrooms":     1,
			"cleaner_id":    cleaner.ID,
			"booking_date":  tomorrow(),
			"booking_time":  "14:00",
			"address_line1": "5 Bree St",
		})
	}

	w, env := book()
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := env.Data["booking"].(map[string]interface{})["id"].(string)

	w, _ = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/bookings/%s/cancel", bookingID), custToken, gin.H{"reason": "travel"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The cancelled visit no longer reserves the cleaner's slot.
	w, _ = book()
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestAuthGuards(t *testing.T) {
	s := setup(t)

	w, _ := s.do(t, http.MethodGet, "/api/v1/bookings/my", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.registerCustomer(t, "aisha@example.com")
	w, env := s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "aisha@example.com", env.Data["user"].(map[string]interface{})["email"])

	// Registering the same email twice fails.
	w, env = s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":      "aisha@example.com",
		"password":   "customer123",
		"first_name": "Aisha",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMAIL_TAKEN", env.Error.Code)

	w, env = s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "aisha@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
}
