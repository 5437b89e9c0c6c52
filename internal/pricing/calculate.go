package pricing

import "math"

// roundRand rounds to two decimal places, half away from zero. All
// breakdown fields go through this once, at the end of a calculation;
// intermediate sums keep full precision.
func roundRand(x float64) float64 {
	return math.Round(x*100) / 100
}

// Calculate produces a price breakdown from req against tbl. It never
// fails: a missing service type yields an all-zero breakdown, unknown
// services or extras contribute zero, and extra quantities below one
// are floored at one. This function must stay safe to call on every
// form keystroke.
func Calculate(req Request, freq Frequency, tbl *Table) Breakdown {
	if req.Service == "" {
		return Breakdown{}
	}

	var subtotal float64
	if req.Service == ServiceCarpet {
		// Carpet prices its own line items; room counts do not apply.
		if req.Carpet != nil {
			if req.Carpet.FittedRooms > 0 {
				subtotal += tbl.Carpet.PerFittedRoom * float64(req.Carpet.FittedRooms)
			}
			if req.Carpet.LooseItems > 0 {
				subtotal += tbl.Carpet.PerLooseItem * float64(req.Carpet.LooseItems)
			}
			if req.Carpet.Occupied {
				subtotal += tbl.Carpet.OccupiedSurcharge
			}
		}
	} else {
		sp := tbl.Services[req.Service]
		subtotal = sp.Base
		if req.Bedrooms > 0 {
			subtotal += float64(req.Bedrooms) * sp.Bedroom
		}
		if req.Bathrooms > 0 {
			subtotal += float64(req.Bathrooms) * sp.Bathroom
		}
	}

	seen := make(map[string]bool, len(req.Extras))
	for _, name := range req.Extras {
		if seen[name] {
			continue
		}
		seen[name] = true

		qty := req.ExtraQuantities[name]
		if qty < 1 {
			qty = 1
		}
		subtotal += tbl.Extras[name] * float64(qty)
	}

	if req.ProvideEquipment && (req.Service == ServiceStandard || req.Service == ServiceAirbnb) {
		charge := req.EquipmentCharge
		if charge <= 0 {
			charge = tbl.EquipmentCharge
		}
		subtotal += charge
	}

	pct := tbl.FrequencyDiscounts[freq]
	discount := roundRand(subtotal * pct / 100)
	subtotal = roundRand(subtotal)

	return Breakdown{
		Subtotal:                 subtotal,
		ServiceFee:               tbl.ServiceFee,
		FrequencyDiscount:        discount,
		FrequencyDiscountPercent: pct,
		Total:                    roundRand(subtotal - discount + tbl.ServiceFee),
	}
}

// CalculateSync is the zero-I/O path: an instant estimate from the
// bundled table, displayed while the resolver fetches current prices.
func CalculateSync(req Request, freq Frequency) Breakdown {
	return Calculate(req, freq, DefaultTable())
}
