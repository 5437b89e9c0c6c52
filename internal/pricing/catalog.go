package pricing

// interiorExtras are the add-ons offered with upkeep cleans (Standard
// and Airbnb). Deep and Move In/Out expose the full list.
var interiorExtras = []string{
	"Inside Fridge",
	"Inside Oven",
	"Inside Cabinets",
	"Interior Windows",
	"Interior Walls",
	"Laundry & Ironing",
}

var allExtras = []string{
	"Inside Fridge",
	"Inside Oven",
	"Inside Cabinets",
	"Interior Windows",
	"Interior Walls",
	"Laundry & Ironing",
	"Carpet Cleaning",
	"Ceiling Cleaning",
	"Garage Cleaning",
	"Balcony Cleaning",
	"Couch Cleaning",
	"Mattress Cleaning",
	"Outside Window Cleaning",
}

// QuantityExtras may be booked more than once per visit.
var QuantityExtras = map[string]bool{
	"Carpet Cleaning":   true,
	"Couch Cleaning":    true,
	"Ceiling Cleaning":  true,
	"Mattress Cleaning": true,
}

const (
	DefaultQuantity = 1
	MaxQuantity     = 5
)

// AllExtras returns every extra in display order.
func AllExtras() []string {
	out := make([]string, len(allExtras))
	copy(out, allExtras)
	return out
}

// ExtrasFor returns the extras catalog for a service type. The carpet
// service has no extras of its own. Note the pricing calculator does
// not check catalog membership; the booking layer validates selections
// before pricing them.
func ExtrasFor(s ServiceType) []string {
	switch s {
	case ServiceStandard, ServiceAirbnb:
		out := make([]string, len(interiorExtras))
		copy(out, interiorExtras)
		return out
	case ServiceDeep, ServiceMoveInOut:
		return AllExtras()
	default:
		return nil
	}
}

// InCatalog reports whether extra is offered for service s.
func InCatalog(s ServiceType, extra string) bool {
	for _, e := range ExtrasFor(s) {
		if e == extra {
			return true
		}
	}
	return false
}
