package models

import (
	"time"
)

type Reservation struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:255;not null;index" json:"email"`
	Phone string `gorm:"size:32" json:"phone,omitempty"`

	// Date-only values normalized to midnight UTC. Checkout is exclusive:
	// a guest leaving on the 4th frees the night of the 3rd-to-4th.
	CheckinDate  time.Time `gorm:"not null;index:idx_reservations_dates" json:"checkinDate"`
	CheckoutDate time.Time `gorm:"not null;index:idx_reservations_dates" json:"checkoutDate"`

	Guests  int    `gorm:"not null;default:1" json:"guests"`
	Message string `gorm:"type:text" json:"message,omitempty"`

	Status          string  `gorm:"size:32;not null;default:pending;index" json:"status"`
	TotalPrice      float64 `gorm:"type:decimal(10,2)" json:"totalPrice"`
	ConfirmationCode string `gorm:"size:64;uniqueIndex" json:"confirmationCode"`
	SpecialRequests string  `gorm:"type:text" json:"specialRequests,omitempty"`
}

// PublicView is the field subset exposed on confirmation-code lookup, so the
// code alone never leaks phone numbers or free-text messages.
func (r Reservation) PublicView() map[string]interface{} {
	return map[string]interface{}{
		"id":               r.ID,
		"confirmationCode": r.ConfirmationCode,
		"name":             r.Name,
		"checkinDate":      r.CheckinDate,
		"checkoutDate":     r.CheckoutDate,
		"guests":           r.Guests,
		"status":           r.Status,
		"totalPrice":       r.TotalPrice,
		"createdAt":        r.CreatedAt,
	}
}
