package services

import "fmt"

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

// reservationTransitions defines the state machine for reservations.
// Completed and cancelled are terminal.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCancelled, ReservationCompleted},
	ReservationCancelled: {},
	ReservationCompleted: {},
}

// IsValid returns true if the status is a recognized reservation status.
func (s ReservationStatus) IsValid() bool {
	_, exists := reservationTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the
// target is allowed.
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	allowed, exists := reservationTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func (s ReservationStatus) IsTerminal() bool {
	allowed, exists := reservationTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

func (s ReservationStatus) String() string { return string(s) }

// Blocking reports whether a reservation in this status occupies its date
// range. Cancelled and completed stays never block new bookings.
func (s ReservationStatus) Blocking() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

// ParseReservationStatus converts a string to a ReservationStatus, returning
// an error if invalid.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid reservation status: %s", s)
	}
	return status, nil
}

// InvalidTransitionError reports a rejected reservation status change.
type InvalidTransitionError struct {
	From ReservationStatus
	To   ReservationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition reservation from %s to %s", e.From, e.To)
}

// ContactStatus is the handling state of a contact message. Contacts are
// deliberately permissive: staff may set any status directly, the only
// enforced rule being that "replied" stamps the replied flag and timestamp.
type ContactStatus string

const (
	ContactNew      ContactStatus = "new"
	ContactRead     ContactStatus = "read"
	ContactReplied  ContactStatus = "replied"
	ContactArchived ContactStatus = "archived"
)

func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactNew, ContactRead, ContactReplied, ContactArchived:
		return true
	}
	return false
}

func (s ContactStatus) String() string { return string(s) }

// ContactPriority orders the admin inbox.
type ContactPriority string

const (
	PriorityLow    ContactPriority = "low"
	PriorityMedium ContactPriority = "medium"
	PriorityHigh   ContactPriority = "high"
	PriorityUrgent ContactPriority = "urgent"
)

func (p ContactPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func (p ContactPriority) String() string { return string(p) }

// ReviewStatus is the moderation state of a review. Moderators may move a
// review between any of the three states, so there is no transition table.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) IsValid() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}

func (s ReviewStatus) String() string { return string(s) }
