package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shalean/internal/config"
	"shalean/internal/database"
	"shalean/internal/domain"
	"shalean/internal/pricing"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Customer{},
		&domain.Cleaner{},
		&domain.Booking{},
		&domain.Review{},
		&domain.Message{},
		&domain.PricingConfig{},
		&domain.PricingHistory{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data in FK-safe order.
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM pricing_histories")
	db.Exec("DELETE FROM pricing_configs")
	db.Exec("DELETE FROM cleaners")
	db.Exec("DELETE FROM customers")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@shalean.co.za",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		FirstName:    "Shalean",
		LastName:     "Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@shalean.co.za / admin123")

	customerNames := []struct{ first, last, email string }{
		{"Thandi", "Mokoena", "thandi@example.com"},
		{"James", "van der Merwe", "james@example.com"},
		{"Aisha", "Patel", "aisha@example.com"},
	}
	customers := make([]domain.Customer, 0, len(customerNames))
	for i, c := range customerNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        c.email,
			PasswordHash: string(hash),
			Role:         domain.RoleCustomer,
			FirstName:    c.first,
			LastName:     c.last,
			Phone:        fmt.Sprintf("+27 82 555 01%02d", i+10),
		}
		db.Create(&u)

		cust := domain.Customer{
			UserID:        &u.ID,
			FirstName:     c.first,
			LastName:      c.last,
			Email:         c.email,
			Phone:         u.Phone,
			AddressLine1:  fmt.Sprintf("%d Long Street", 10+i),
			AddressSuburb: "Gardens",
			AddressCity:   "Cape Town",
		}
		db.Create(&cust)
		customers = append(customers, cust)
	}

	cleanerNames := []struct {
		name  string
		years int
	}{
		{"Nomsa Dlamini", 6},
		{"Sipho Ndlovu", 4},
		{"Grace Banda", 8},
	}
	cleaners := make([]domain.Cleaner, 0, len(cleanerNames))
	for i, c := range cleanerNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("cleaner123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        fmt.Sprintf("cleaner%d@shalean.co.za", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleCleaner,
			FirstName:    c.name,
		}
		db.Create(&u)

		cleaner := domain.Cleaner{
			UserID:          &u.ID,
			Name:            c.name,
			YearsExperience: c.years,
			Active:          true,
		}
		db.Create(&cleaner)
		cleaners = append(cleaners, cleaner)
	}

	log.Println("Seeding pricing table...")
	seedPricing(db, admin.ID)

	log.Println("Creating sample bookings...")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	lastWeek := time.Now().AddDate(0, 0, -7).Format("2006-01-02")

	// A completed visit last week, reviewed below.
	done := domain.Booking{
		CustomerID:           &customers[0].ID,
		CleanerID:            &cleaners[0].ID,
		ServiceType:          string(pricing.ServiceStandard),
		Bedrooms:             2,
		Bathrooms:            1,
		Frequency:            string(pricing.FrequencyOneTime),
		BookingDate:          lastWeek,
		BookingTime:          "09:00",
		AddressLine1:         customers[0].AddressLine1,
		AddressSuburb:        customers[0].AddressSuburb,
		AddressCity:          customers[0].AddressCity,
		Status:               domain.BookingCompleted,
		SubtotalCents:        32000,
		ServiceFeeCents:      5000,
		TotalCents:           37000,
		CleanerEarningsCents: 19200,
	}
	db.Create(&done)

	upcoming := domain.Booking{
		CustomerID:           &customers[1].ID,
		CleanerID:            &cleaners[1].ID,
		ServiceType:          string(pricing.ServiceDeep),
		Bedrooms:             3,
		Bathrooms:            2,
		Frequency:            string(pricing.FrequencyWeekly),
		BookingDate:          tomorrow,
		BookingTime:          "10:30",
		AddressLine1:         customers[1].AddressLine1,
		AddressSuburb:        customers[1].AddressSuburb,
		AddressCity:          customers[1].AddressCity,
		Status:               domain.BookingConfirmed,
		SubtotalCents:        64500,
		ServiceFeeCents:      5000,
		DiscountCents:        9675,
		TotalCents:           59825,
		CleanerEarningsCents: 32895,
	}
	db.Create(&upcoming)

	review := domain.Review{
		BookingID:  done.ID,
		CustomerID: customers[0].ID,
		CleanerID:  cleaners[0].ID,
		Rating:     5,
		Comment:    "Spotless, right on time.",
	}
	db.Create(&review)
	db.Model(&domain.Cleaner{}).Where("id = ?", cleaners[0].ID).
		Updates(map[string]interface{}{"rating": 5.0, "rating_count": 1})

	log.Println("Seed complete.")
}

// seedPricing writes the full bundled price table into pricing_configs,
// effective today and open-ended, so admins edit live rows instead of
// code constants.
func seedPricing(db *gorm.DB, adminID uuid.UUID) {
	today := time.Now().Truncate(24 * time.Hour)
	tbl := pricing.DefaultTable()

	var rows []domain.PricingConfig
	add := func(serviceType string, priceType pricing.PriceType, itemName string, price float64) {
		rows = append(rows, domain.PricingConfig{
			ServiceType:   serviceType,
			PriceType:     string(priceType),
			ItemName:      itemName,
			Price:         price,
			EffectiveDate: today,
			IsActive:      true,
			Notes:         "initial seed",
			CreatedBy:     &adminID,
		})
	}

	for _, svc := range pricing.ServiceTypes {
		if svc == pricing.ServiceCarpet {
			continue
		}
		sp := tbl.Services[svc]
		add(string(svc), pricing.PriceBase, "", sp.Base)
		add(string(svc), pricing.PriceBedroom, "", sp.Bedroom)
		add(string(svc), pricing.PriceBathroom, "", sp.Bathroom)
	}

	for _, name := range pricing.AllExtras() {
		add("", pricing.PriceExtra, name, tbl.Extras[name])
	}

	add("", pricing.PriceServiceFee, "", tbl.ServiceFee)

	for _, freq := range []pricing.Frequency{pricing.FrequencyWeekly, pricing.FrequencyBiWeekly, pricing.FrequencyMonthly} {
		add("", pricing.PriceFrequencyDiscount, string(freq), tbl.FrequencyDiscounts[freq])
	}

	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			log.Printf("seed pricing row failed: %v", err)
		}
	}
	log.Printf("Seeded %d pricing rows", len(rows))
}
