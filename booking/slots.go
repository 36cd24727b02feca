package booking

import (
	"fmt"
	"slices"
)

// Business hours: bookings start on the half hour between 08:00 and
// 20:00, so the last bookable start is 19:30.
const (
	openingHour = 8
	closingHour = 20
)

// BusinessSlots returns every bookable slot start of a day, in order:
// "08:00", "08:30", ... "19:30".
func BusinessSlots() []string {
	slots := make([]string, 0, (closingHour-openingHour)*2)

	for hour := openingHour; hour < closingHour; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour))
		slots = append(slots, fmt.Sprintf("%02d:30", hour))
	}

	return slots
}

func isBusinessSlot(t string) bool {
	return slices.Contains(BusinessSlots(), t)
}
