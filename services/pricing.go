package services

import (
	"fmt"
	"math"
	"time"
)

// Nights returns the number of billable nights between checkin and checkout.
// Any partial day counts as a full night.
func Nights(checkin, checkout time.Time) int {
	hours := checkout.Sub(checkin).Hours()
	if hours <= 0 {
		return 0
	}
	return int(math.Ceil(hours / 24))
}

// TotalPrice computes nights × pricePerNight × guests. The rate is flat per
// guest per night, with no occupancy tiers.
func TotalPrice(checkin, checkout time.Time, guests int, pricePerNight float64) (float64, error) {
	if !checkout.After(checkin) {
		return 0, fmt.Errorf("checkout must be after checkin")
	}
	if guests < 1 {
		return 0, fmt.Errorf("guests must be at least 1")
	}
	if pricePerNight < 0 {
		return 0, fmt.Errorf("price per night cannot be negative")
	}
	return float64(Nights(checkin, checkout)) * pricePerNight * float64(guests), nil
}
