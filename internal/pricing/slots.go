package pricing

import (
	"fmt"
	"time"
)

// Operating window for bookable visits: first start 07:00, last start
// 18:30, every half hour.
const (
	slotOpenHour   = 7
	slotCloseHour  = 19
	slotStepMinute = 30
)

// TimeSlots returns the fixed set of bookable start times as "HH:MM"
// strings, ordered.
func TimeSlots() []string {
	slots := make([]string, 0, (slotCloseHour-slotOpenHour)*60/slotStepMinute)
	for h := slotOpenHour; h < slotCloseHour; h++ {
		for m := 0; m < 60; m += slotStepMinute {
			slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return slots
}

// ValidTimeSlot reports whether s is one of the offered start times.
func ValidTimeSlot(s string) bool {
	for _, slot := range TimeSlots() {
		if slot == s {
			return true
		}
	}
	return false
}

// TimeSlotsFor returns the slots offered for date ("2006-01-02"). When
// date is today in now's location, start times already in the past are
// dropped. An unparseable date returns the full set.
func TimeSlotsFor(date string, now time.Time) []string {
	all := TimeSlots()

	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return all
	}
	if day.Year() != now.Year() || day.YearDay() != now.YearDay() {
		return all
	}

	out := make([]string, 0, len(all))
	for _, s := range all {
		t, err := time.ParseInLocation("15:04", s, now.Location())
		if err != nil {
			continue
		}
		slot := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		if !slot.Before(now) {
			out = append(out, s)
		}
	}
	return out
}
