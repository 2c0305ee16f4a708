package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "Pending"
	BookingConfirmed  BookingStatus = "Confirmed"
	BookingCheckedIn  BookingStatus = "CheckedIn"
	BookingCheckedOut BookingStatus = "CheckedOut"
	BookingCancelled  BookingStatus = "Cancelled"
	BookingNoShow     BookingStatus = "NoShow"
)

// Booking is a reservation on one physical room. CheckOut is exclusive:
// the room is free again on the check-out day itself.
// CheckOut > CheckIn is guaranteed by the writer, not re-validated here.
type Booking struct {
	ID       int64
	RoomID   int64
	CheckIn  time.Time
	CheckOut time.Time
	Status   BookingStatus
}
