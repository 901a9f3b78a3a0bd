package pricing

import "time"

const (
	// bulkThreshold is the aggregate category quantity at which the
	// bulk discount kicks in.
	bulkThreshold = 10

	// freeShippingItemCount is the item count above which shipping is
	// free. At exactly this count the base rate still applies.
	freeShippingItemCount = 15

	// mondayDiscountHourEnd is the local hour before which the Monday
	// discount applies.
	mondayDiscountHourEnd = 10

	surchargeStartHour = 15 // Friday
	surchargeEndHour   = 3  // Monday
)

// weekendSurchargeActive reports whether the given local time falls in
// the surcharge window [Friday 15:00, Monday 03:00).
func weekendSurchargeActive(now time.Time) bool {
	switch now.Weekday() {
	case time.Friday:
		return now.Hour() >= surchargeStartHour
	case time.Saturday:
		return true
	case time.Sunday, time.Monday:
		return now.Hour() < surchargeEndHour
	default:
		return false
	}
}

// mondayDiscountActive reports whether the given local time qualifies
// for the early-Monday discount.
func mondayDiscountActive(now time.Time) bool {
	return now.Weekday() == time.Monday && now.Hour() < mondayDiscountHourEnd
}
