package pricing

import "time"

// PriceType identifies which table field a pricing row overrides.
type PriceType string

const (
	PriceBase              PriceType = "base"
	PriceBedroom           PriceType = "bedroom"
	PriceBathroom          PriceType = "bathroom"
	PriceExtra             PriceType = "extra"
	PriceServiceFee        PriceType = "service_fee"
	PriceFrequencyDiscount PriceType = "frequency_discount"
)

// Record is one time-bounded pricing row from the store. ServiceType is
// set for base/bedroom/bathroom rows, ItemName for extra and
// frequency_discount rows; service_fee rows carry neither.
type Record struct {
	ID            string
	ServiceType   string
	PriceType     PriceType
	ItemName      string
	Price         float64
	EffectiveDate time.Time
	EndDate       *time.Time
	Active        bool
}

// InEffect reports whether the record's [EffectiveDate, EndDate)
// validity window contains now.
func (r Record) InEffect(now time.Time) bool {
	if !r.Active {
		return false
	}
	if r.EffectiveDate.After(now) {
		return false
	}
	if r.EndDate != nil && !r.EndDate.After(now) {
		return false
	}
	return true
}

// BuildTable merges store records over base. The merge is per row: a
// record overwrites exactly the field it names, so one extra can be
// repriced while every other item keeps its bundled default. Records
// outside their validity window are skipped. When several in-effect
// records target the same key the later one wins, so callers should
// order records by effective date ascending.
func BuildTable(records []Record, base *Table, now time.Time) *Table {
	tbl := base.Clone()

	for _, rec := range records {
		if !rec.InEffect(now) {
			continue
		}
		switch rec.PriceType {
		case PriceBase, PriceBedroom, PriceBathroom:
			if rec.ServiceType == "" {
				continue
			}
			svc := ServiceType(rec.ServiceType)
			sp := tbl.Services[svc]
			switch rec.PriceType {
			case PriceBase:
				sp.Base = rec.Price
			case PriceBedroom:
				sp.Bedroom = rec.Price
			case PriceBathroom:
				sp.Bathroom = rec.Price
			}
			tbl.Services[svc] = sp

		case PriceExtra:
			if rec.ItemName != "" {
				tbl.Extras[rec.ItemName] = rec.Price
			}

		case PriceServiceFee:
			tbl.ServiceFee = rec.Price

		case PriceFrequencyDiscount:
			if rec.ItemName != "" {
				tbl.FrequencyDiscounts[Frequency(rec.ItemName)] = rec.Price
			}
		}
	}

	// one-time is never discounted, whatever the store says.
	tbl.FrequencyDiscounts[FrequencyOneTime] = 0

	return tbl
}
