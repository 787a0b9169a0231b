package services

import "time"

// Date ranges are half-open [checkin, checkout): the checkout day itself is
// free, so a departure and an arrival may share a date (same-day turnover).

// RangesOverlap reports whether two half-open date ranges intersect.
func RangesOverlap(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// DateOccupied reports whether a single date falls inside the half-open
// range, i.e. the property is in use on that night.
func DateOccupied(date, checkin, checkout time.Time) bool {
	return !checkin.After(date) && checkout.After(date)
}
