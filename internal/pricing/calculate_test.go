package pricing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedTable pins round figures so expected totals are easy to check by
// hand: Standard base 250, bedroom 50, bathroom 40, fee 100, weekly 15%.
func fixedTable() *Table {
	tbl := DefaultTable()
	tbl.Services[ServiceStandard] = ServicePrices{Base: 250, Bedroom: 50, Bathroom: 40}
	tbl.ServiceFee = 100
	tbl.FrequencyDiscounts[FrequencyWeekly] = 15
	return tbl
}

func TestCalculate_StandardOneTime(t *testing.T) {
	b := Calculate(Request{
		Service:   ServiceStandard,
		Bedrooms:  2,
		Bathrooms: 2,
	}, FrequencyOneTime, fixedTable())

	assert.Equal(t, 430.0, b.Subtotal) // 250 + 2*50 + 2*40
	assert.Equal(t, 0.0, b.FrequencyDiscount)
	assert.Equal(t, 100.0, b.ServiceFee)
	assert.Equal(t, 530.0, b.Total)
}

func TestCalculate_WeeklyDiscount(t *testing.T) {
	b := Calculate(Request{
		Service:   ServiceStandard,
		Bedrooms:  2,
		Bathrooms: 2,
	}, FrequencyWeekly, fixedTable())

	// 430 * 15% = 64.50, rounded half-up to two decimals.
	assert.Equal(t, 430.0, b.Subtotal)
	assert.Equal(t, 64.50, b.FrequencyDiscount)
	assert.Equal(t, 15.0, b.FrequencyDiscountPercent)
	assert.Equal(t, 465.50, b.Total)
}

func TestCalculate_ExtrasWithQuantity(t *testing.T) {
	tbl := DefaultTable()
	b := Calculate(Request{
		Service:         ServiceDeep,
		Extras:          []string{"Carpet Cleaning"},
		ExtraQuantities: map[string]int{"Carpet Cleaning": 2},
	}, FrequencyOneTime, tbl)

	base := Calculate(Request{Service: ServiceDeep}, FrequencyOneTime, tbl)
	assert.Equal(t, base.Subtotal+2*tbl.Extras["Carpet Cleaning"], b.Subtotal)
}

func TestCalculate_QuantityFloor(t *testing.T) {
	tbl := DefaultTable()
	for _, qty := range []int{0, -3} {
		b := Calculate(Request{
			Service:         ServiceStandard,
			Extras:          []string{"Inside Fridge"},
			ExtraQuantities: map[string]int{"Inside Fridge": qty},
		}, FrequencyOneTime, tbl)

		one := Calculate(Request{
			Service:         ServiceStandard,
			Extras:          []string{"Inside Fridge"},
			ExtraQuantities: map[string]int{"Inside Fridge": 1},
		}, FrequencyOneTime, tbl)

		assert.Equal(t, one.Subtotal, b.Subtotal, "quantity %d must price as 1", qty)
	}
}

func TestCalculate_DuplicateExtrasCountOnce(t *testing.T) {
	tbl := DefaultTable()
	b := Calculate(Request{
		Service: ServiceStandard,
		Extras:  []string{"Inside Oven", "Inside Oven"},
	}, FrequencyOneTime, tbl)

	one := Calculate(Request{
		Service: ServiceStandard,
		Extras:  []string{"Inside Oven"},
	}, FrequencyOneTime, tbl)

	assert.Equal(t, one.Subtotal, b.Subtotal)
}

func TestCalculate_MissingServiceZeroBreakdown(t *testing.T) {
	b := Calculate(Request{Bedrooms: 3, Bathrooms: 2}, FrequencyWeekly, DefaultTable())
	assert.Equal(t, Breakdown{}, b)
}

func TestCalculate_UnknownServiceFailsClosed(t *testing.T) {
	tbl := DefaultTable()
	b := Calculate(Request{Service: "Window Washing", Bedrooms: 2}, FrequencyOneTime, tbl)
	assert.Equal(t, 0.0, b.Subtotal)
	assert.Equal(t, tbl.ServiceFee, b.Total)
}

func TestCalculate_UnknownFrequencyPricesAsOneTime(t *testing.T) {
	tbl := fixedTable()
	got := Calculate(Request{Service: ServiceStandard, Bedrooms: 2, Bathrooms: 2}, Frequency("fortnightly-ish"), tbl)
	want := Calculate(Request{Service: ServiceStandard, Bedrooms: 2, Bathrooms: 2}, FrequencyOneTime, tbl)
	assert.Equal(t, want, got)
}

func TestCalculate_CarpetLineItems(t *testing.T) {
	tbl := DefaultTable()
	b := Calculate(Request{
		Service: ServiceCarpet,
		// Room counts must not contribute for the carpet service.
		Bedrooms:  4,
		Bathrooms: 3,
		Carpet:    &CarpetDetails{FittedRooms: 2, LooseItems: 3, Occupied: true},
	}, FrequencyOneTime, tbl)

	want := 2*tbl.Carpet.PerFittedRoom + 3*tbl.Carpet.PerLooseItem + tbl.Carpet.OccupiedSurcharge
	assert.Equal(t, want, b.Subtotal)
}

func TestCalculate_CarpetWithoutDetails(t *testing.T) {
	b := Calculate(Request{Service: ServiceCarpet, Bedrooms: 2}, FrequencyOneTime, DefaultTable())
	assert.Equal(t, 0.0, b.Subtotal)
}

func TestCalculate_EquipmentOnlyForStandardAndAirbnb(t *testing.T) {
	tbl := DefaultTable()
	for _, svc := range ServiceTypes {
		with := Calculate(Request{Service: svc, ProvideEquipment: true}, FrequencyOneTime, tbl)
		without := Calculate(Request{Service: svc}, FrequencyOneTime, tbl)

		if svc == ServiceStandard || svc == ServiceAirbnb {
			assert.Equal(t, without.Subtotal+tbl.EquipmentCharge, with.Subtotal, "service %s", svc)
		} else {
			assert.Equal(t, without.Subtotal, with.Subtotal, "service %s", svc)
		}
	}
}

func TestCalculate_EquipmentChargeOverride(t *testing.T) {
	tbl := DefaultTable()
	b := Calculate(Request{Service: ServiceStandard, ProvideEquipment: true, EquipmentCharge: 350}, FrequencyOneTime, tbl)
	base := Calculate(Request{Service: ServiceStandard}, FrequencyOneTime, tbl)
	assert.Equal(t, base.Subtotal+350, b.Subtotal)
}

func TestCalculate_RoomMonotonicity(t *testing.T) {
	tbl := DefaultTable()
	for _, svc := range []ServiceType{ServiceStandard, ServiceDeep, ServiceMoveInOut, ServiceAirbnb} {
		prev := Calculate(Request{Service: svc}, FrequencyWeekly, tbl)
		for n := 1; n <= 10; n++ {
			cur := Calculate(Request{Service: svc, Bedrooms: n}, FrequencyWeekly, tbl)
			assert.GreaterOrEqual(t, cur.Subtotal, prev.Subtotal, "service %s bedrooms %d", svc, n)
			prev = cur
		}
	}
}

func TestCalculate_RandomizedInvariants(t *testing.T) {
	tbl := DefaultTable()
	extras := AllExtras()
	freqs := []Frequency{FrequencyOneTime, FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		req := Request{
			Service:         ServiceTypes[rng.Intn(len(ServiceTypes))],
			Bedrooms:        rng.Intn(11),
			Bathrooms:       rng.Intn(11),
			ExtraQuantities: map[string]int{},
		}
		for n := rng.Intn(6); n > 0; n-- {
			name := extras[rng.Intn(len(extras))]
			req.Extras = append(req.Extras, name)
			req.ExtraQuantities[name] = 1 + rng.Intn(5)
		}
		freq := freqs[rng.Intn(len(freqs))]

		b := Calculate(req, freq, tbl)

		require.GreaterOrEqual(t, b.Subtotal, 0.0)
		require.GreaterOrEqual(t, b.FrequencyDiscount, 0.0)
		require.LessOrEqual(t, b.FrequencyDiscount, b.Subtotal+0.005, "discount may not exceed subtotal")
		require.InDelta(t, b.Subtotal-b.FrequencyDiscount+b.ServiceFee, b.Total, 0.005,
			"total must equal subtotal - discount + fee")
	}
}

func TestDefaultTable_CompleteTriples(t *testing.T) {
	tbl := DefaultTable()
	for _, svc := range ServiceTypes {
		_, ok := tbl.Services[svc]
		assert.True(t, ok, "service %s missing from default table", svc)
	}
	for name, price := range tbl.Extras {
		assert.GreaterOrEqual(t, price, 0.0, "extra %s", name)
	}
	assert.Equal(t, 0.0, tbl.FrequencyDiscounts[FrequencyOneTime])
}

func TestNormalizeFrequency(t *testing.T) {
	assert.Equal(t, FrequencyWeekly, NormalizeFrequency("custom-weekly"))
	assert.Equal(t, FrequencyBiWeekly, NormalizeFrequency("custom-bi-weekly"))
	assert.Equal(t, FrequencyMonthly, NormalizeFrequency("monthly"))
	assert.Equal(t, FrequencyOneTime, NormalizeFrequency("every-second-tuesday"))
	assert.Equal(t, FrequencyOneTime, NormalizeFrequency(""))
}
