package quote

import "shalean/internal/pricing"

type QuoteRequest struct {
	ServiceType      string                 `json:"service_type" binding:"required"`
	Bedrooms         int                    `json:"bedrooms"`
	Bathrooms        int                    `json:"bathrooms"`
	Extras           []string               `json:"extras"`
	ExtrasQuantities map[string]int         `json:"extras_quantities"`
	CarpetDetails    *pricing.CarpetDetails `json:"carpet_details"`
	ProvideEquipment bool                   `json:"provide_equipment"`
	Frequency        string                 `json:"frequency"`
}

type QuoteResponse struct {
	Breakdown pricing.Breakdown `json:"breakdown"`
	Frequency string            `json:"frequency"`
}
