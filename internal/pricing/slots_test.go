package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()

	require.Len(t, slots, 24)
	assert.Equal(t, "07:00", slots[0])
	assert.Equal(t, "18:30", slots[len(slots)-1])

	// Ordered at a fixed half-hour step.
	for i := 1; i < len(slots); i++ {
		prev, err := time.Parse("15:04", slots[i-1])
		require.NoError(t, err)
		cur, err := time.Parse("15:04", slots[i])
		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, cur.Sub(prev))
	}

	// Restartable: a second call yields the same sequence.
	assert.Equal(t, slots, TimeSlots())
}

func TestValidTimeSlot(t *testing.T) {
	assert.True(t, ValidTimeSlot("07:00"))
	assert.True(t, ValidTimeSlot("18:30"))
	assert.False(t, ValidTimeSlot("19:00"))
	assert.False(t, ValidTimeSlot("07:15"))
	assert.False(t, ValidTimeSlot(""))
}

func TestTimeSlotsFor_TodayDropsPastSlots(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 10, 0, 0, time.UTC)
	slots := TimeSlotsFor("2026-03-15", now)

	require.NotEmpty(t, slots)
	assert.Equal(t, "12:30", slots[0])
	assert.Equal(t, "18:30", slots[len(slots)-1])
}

func TestTimeSlotsFor_FutureDateKeepsAll(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 10, 0, 0, time.UTC)
	assert.Equal(t, TimeSlots(), TimeSlotsFor("2026-03-16", now))
}

func TestTimeSlotsFor_BadDateKeepsAll(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 10, 0, 0, time.UTC)
	assert.Equal(t, TimeSlots(), TimeSlotsFor("not-a-date", now))
}

func TestTimeSlotsFor_ExactSlotBoundaryKept(t *testing.T) {
	now := time.Date(2026, time.March, 15, 13, 0, 0, 0, time.UTC)
	slots := TimeSlotsFor("2026-03-15", now)
	require.NotEmpty(t, slots)
	assert.Equal(t, "13:00", slots[0])
}
