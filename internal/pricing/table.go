package pricing

// ServicePrices is the per-service triple: a flat base price plus
// per-bedroom and per-bathroom increments.
type ServicePrices struct {
	Base     float64 `json:"base"`
	Bedroom  float64 `json:"bedroom"`
	Bathroom float64 `json:"bathroom"`
}

// CarpetPrices holds the carpet service's line-item rates. The carpet
// service does not use bedroom/bathroom pricing.
type CarpetPrices struct {
	PerFittedRoom     float64 `json:"per_fitted_room"`
	PerLooseItem      float64 `json:"per_loose_item"`
	OccupiedSurcharge float64 `json:"occupied_surcharge"`
}

// Table is a complete pricing configuration. Amounts are Rand, not
// cents. Tables are read-only once built; admin edits produce a fresh
// table through the resolver.
type Table struct {
	Services           map[ServiceType]ServicePrices `json:"services"`
	Extras             map[string]float64            `json:"extras"`
	ServiceFee         float64                       `json:"service_fee"`
	FrequencyDiscounts map[Frequency]float64         `json:"frequency_discounts"`
	Carpet             CarpetPrices                  `json:"carpet"`
	EquipmentCharge    float64                       `json:"equipment_charge"`
}

// Clone returns a deep copy safe to mutate during a merge.
func (t *Table) Clone() *Table {
	cp := *t
	cp.Services = make(map[ServiceType]ServicePrices, len(t.Services))
	for k, v := range t.Services {
		cp.Services[k] = v
	}
	cp.Extras = make(map[string]float64, len(t.Extras))
	for k, v := range t.Extras {
		cp.Extras[k] = v
	}
	cp.FrequencyDiscounts = make(map[Frequency]float64, len(t.FrequencyDiscounts))
	for k, v := range t.FrequencyDiscounts {
		cp.FrequencyDiscounts[k] = v
	}
	return &cp
}

// DefaultTable returns the bundled price table. It backs the synchronous
// calculator and is the per-key fallback when an item has no current row
// in the pricing store.
func DefaultTable() *Table {
	return &Table{
		Services: map[ServiceType]ServicePrices{
			ServiceStandard:  {Base: 250, Bedroom: 20, Bathroom: 30},
			ServiceDeep:      {Base: 450, Bedroom: 35, Bathroom: 45},
			ServiceMoveInOut: {Base: 550, Bedroom: 40, Bathroom: 50},
			ServiceAirbnb:    {Base: 280, Bedroom: 25, Bathroom: 35},
			ServiceCarpet:    {},
		},
		Extras: map[string]float64{
			"Inside Fridge":           30,
			"Inside Oven":             30,
			"Inside Cabinets":         30,
			"Interior Windows":        40,
			"Interior Walls":          35,
			"Laundry & Ironing":       75,
			"Carpet Cleaning":         120,
			"Ceiling Cleaning":        85,
			"Garage Cleaning":         110,
			"Balcony Cleaning":        90,
			"Couch Cleaning":          130,
			"Mattress Cleaning":       140,
			"Outside Window Cleaning": 125,
		},
		ServiceFee: 50,
		FrequencyDiscounts: map[Frequency]float64{
			FrequencyOneTime:  0,
			FrequencyWeekly:   15,
			FrequencyBiWeekly: 10,
			FrequencyMonthly:  5,
		},
		Carpet: CarpetPrices{
			PerFittedRoom:     150,
			PerLooseItem:      80,
			OccupiedSurcharge: 100,
		},
		EquipmentCharge: 500,
	}
}
