package catalog

import (
	"context"

	"shalean/internal/pricing"
)

// ServiceInfo is one bookable service with its current prices merged in.
type ServiceInfo struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	BasePrice   float64  `json:"base_price"`
	PerBedroom  float64  `json:"per_bedroom"`
	PerBathroom float64  `json:"per_bathroom"`
	Extras      []string `json:"extras"`
}

type ExtraInfo struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    bool    `json:"quantity"`
	MaxQuantity int     `json:"max_quantity"`
}

var descriptions = map[pricing.ServiceType]string{
	pricing.ServiceStandard:  "Regular upkeep clean for lived-in homes.",
	pricing.ServiceDeep:      "Top-to-bottom clean including skirtings, switches and behind furniture.",
	pricing.ServiceMoveInOut: "Empty-home clean for handovers, inside cupboards included.",
	pricing.ServiceAirbnb:    "Turnover clean with linen change between guest stays.",
	pricing.ServiceCarpet:    "Steam cleaning for fitted carpets, rugs and upholstery.",
}

type Pricer interface {
	Current(ctx context.Context) (*pricing.Table, error)
}

// Service assembles catalog responses from the static service list and
// the live price table.
type Service struct {
	prices Pricer
}

func NewService(prices Pricer) *Service {
	return &Service{prices: prices}
}

func (s *Service) table(ctx context.Context) *pricing.Table {
	tbl, err := s.prices.Current(ctx)
	if err != nil {
		return pricing.DefaultTable()
	}
	return tbl
}

func (s *Service) Services(ctx context.Context) []ServiceInfo {
	tbl := s.table(ctx)

	out := make([]ServiceInfo, 0, len(pricing.ServiceTypes))
	for _, svc := range pricing.ServiceTypes {
		sp := tbl.Services[svc]
		out = append(out, ServiceInfo{
			Type:        string(svc),
			Description: descriptions[svc],
			BasePrice:   sp.Base,
			PerBedroom:  sp.Bedroom,
			PerBathroom: sp.Bathroom,
			Extras:      pricing.ExtrasFor(svc),
		})
	}
	return out
}

// Extras returns the priced add-ons for one service, or false when the
// service type is unknown.
func (s *Service) Extras(ctx context.Context, serviceType string) ([]ExtraInfo, bool) {
	svc := pricing.ServiceType(serviceType)
	if !svc.Valid() {
		return nil, false
	}

	tbl := s.table(ctx)
	names := pricing.ExtrasFor(svc)
	out := make([]ExtraInfo, 0, len(names))
	for _, name := range names {
		maxQty := pricing.DefaultQuantity
		if pricing.QuantityExtras[name] {
			maxQty = pricing.MaxQuantity
		}
		out = append(out, ExtraInfo{
			Name:        name,
			Price:       tbl.Extras[name],
			Quantity:    pricing.QuantityExtras[name],
			MaxQuantity: maxQty,
		})
	}
	return out, true
}
