package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"shalean/internal/config"
	"shalean/internal/database"
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

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	cleanerRepo := repository.NewCleanerRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	pricingRepo := repository.NewPricingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	resolver := pricing.NewResolver(pricingRepo)

	authService := auth.NewService(userRepo, customerRepo, cleanerRepo, j)
	authHandler := auth.NewHandler(authService)

	quoteHandler := quote.NewHandler(resolver, cfg.PricingTimeout)

	catalogService := catalog.NewService(resolver)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, customerRepo, cleanerRepo, resolver, cfg.CleanerCutRatio)
	bookingHandler := booking.NewHandler(bookingService)

	reviewService := review.NewService(reviewRepo, bookingRepo, customerRepo, cleanerRepo)
	reviewHandler := review.NewHandler(reviewService)

	hub := chat.NewHub()
	defer hub.Close()
	chatService := chat.NewService(messageRepo, bookingRepo, customerRepo, cleanerRepo, hub)
	chatHandler := chat.NewHandler(chatService, hub, j)

	adminService := admin.NewService(pricingRepo, resolver)
	adminHandler := admin.NewHandler(adminService, bookingService)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// Guests can quote, browse the catalog and book; a token, when
		// present, attaches the booking to the account.
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
	}

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
