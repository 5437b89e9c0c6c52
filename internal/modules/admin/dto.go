package admin

import "time"

type SavePriceRequest struct {
	ServiceType string  `json:"service_type"`
	PriceType   string  `json:"price_type" binding:"required"`
	ItemName    string  `json:"item_name"`
	Price       float64 `json:"price" binding:"gte=0"`
	Notes       string  `json:"notes"`
	Reason      string  `json:"reason"`
}

type UpdatePriceRequest struct {
	Price  float64 `json:"price" binding:"gte=0"`
	Reason string  `json:"reason"`
}

type SchedulePriceRequest struct {
	ServiceType   string    `json:"service_type"`
	PriceType     string    `json:"price_type" binding:"required"`
	ItemName      string    `json:"item_name"`
	Price         float64   `json:"price" binding:"gte=0"`
	EffectiveDate time.Time `json:"effective_date" binding:"required"`
	Notes         string    `json:"notes"`
	Reason        string    `json:"reason"`
}
