package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priceRow struct {
	ServiceType string  `validate:"omitempty,service_type"`
	Price       float64 `validate:"gte=0"`
	Email       string  `validate:"required,email"`
}

func TestValidate(t *testing.T) {
	t.Run("passes", func(t *testing.T) {
		assert.Nil(t, Validate(priceRow{ServiceType: "Standard", Price: 30, Email: "ops@shalean.co.za"}))
		// Rows without a service scope skip the service_type rule.
		assert.Nil(t, Validate(priceRow{Price: 0, Email: "ops@shalean.co.za"}))
	})

	t.Run("reports per-field messages", func(t *testing.T) {
		fields := Validate(priceRow{ServiceType: "Pool", Price: -5})
		require.Len(t, fields, 3)
		assert.Equal(t, "is not a known service type", fields["ServiceType"])
		assert.Equal(t, "must be at least 0", fields["Price"])
		assert.Equal(t, "is required", fields["Email"])
	})

	t.Run("known service types pass", func(t *testing.T) {
		for _, st := range []string{"Standard", "Deep", "Move In/Out", "Airbnb", "Carpet"} {
			assert.Nil(t, Validate(priceRow{ServiceType: st, Email: "ops@shalean.co.za"}), st)
		}
	})
}
