package services

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when an id or confirmation code matches nothing.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateReview is returned when an email already submitted a review
	// within the rolling 24-hour window.
	ErrDuplicateReview = errors.New("review already submitted in the last 24 hours")

	// ErrReviewNotApproved is returned when a helpful vote targets a review
	// that has not passed moderation.
	ErrReviewNotApproved = errors.New("review is not approved")
)

// ConflictError reports a reservation date conflict together with the range
// that blocks it, so the caller can surface alternative dates.
type ConflictError struct {
	CheckinDate  time.Time
	CheckoutDate time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("dates conflict with an existing reservation (%s - %s)",
		e.CheckinDate.Format("2006-01-02"), e.CheckoutDate.Format("2006-01-02"))
}
