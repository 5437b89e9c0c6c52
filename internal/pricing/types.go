package pricing

type ServiceType string

const (
	ServiceStandard  ServiceType = "Standard"
	ServiceDeep      ServiceType = "Deep"
	ServiceMoveInOut ServiceType = "Move In/Out"
	ServiceAirbnb    ServiceType = "Airbnb"
	ServiceCarpet    ServiceType = "Carpet"
)

// ServiceTypes lists every bookable service in display order.
var ServiceTypes = []ServiceType{
	ServiceStandard,
	ServiceDeep,
	ServiceMoveInOut,
	ServiceAirbnb,
	ServiceCarpet,
}

func (s ServiceType) Valid() bool {
	for _, t := range ServiceTypes {
		if s == t {
			return true
		}
	}
	return false
}

type Frequency string

const (
	FrequencyOneTime  Frequency = "one-time"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiWeekly Frequency = "bi-weekly"
	FrequencyMonthly  Frequency = "monthly"
)

// NormalizeFrequency maps recurring-schedule keys onto the four pricing
// frequencies. Anything unrecognized prices as one-time.
func NormalizeFrequency(s string) Frequency {
	switch s {
	case "weekly", "custom-weekly":
		return FrequencyWeekly
	case "bi-weekly", "custom-bi-weekly":
		return FrequencyBiWeekly
	case "monthly":
		return FrequencyMonthly
	default:
		return FrequencyOneTime
	}
}

// CarpetDetails describes the carpet service's own line items. Fitted
// carpets are charged per room, loose carpets/rugs per item.
type CarpetDetails struct {
	FittedRooms int  `json:"fitted_rooms"`
	LooseItems  int  `json:"loose_items"`
	Occupied    bool `json:"occupied"`
}

// Request is a single price calculation input. It is built fresh for
// every calculation and never persisted.
type Request struct {
	Service         ServiceType    `json:"service"`
	Bedrooms        int            `json:"bedrooms"`
	Bathrooms       int            `json:"bathrooms"`
	Extras          []string       `json:"extras"`
	ExtraQuantities map[string]int `json:"extra_quantities"`
	Carpet          *CarpetDetails `json:"carpet,omitempty"`

	// Equipment supply is only offered with Standard and Airbnb cleans.
	ProvideEquipment bool    `json:"provide_equipment"`
	EquipmentCharge  float64 `json:"equipment_charge,omitempty"`
}

// Breakdown is the output of a calculation. All amounts are Rand,
// rounded to two decimals. Total = Subtotal - FrequencyDiscount + ServiceFee;
// the discount applies to the subtotal only, never to the service fee.
type Breakdown struct {
	Subtotal                 float64 `json:"subtotal"`
	ServiceFee               float64 `json:"service_fee"`
	FrequencyDiscount        float64 `json:"frequency_discount"`
	FrequencyDiscountPercent float64 `json:"frequency_discount_percent"`
	Total                    float64 `json:"total"`
}
