// Package availability decides whether physical rooms are free, either for an
// explicit date window or "as of today". The two modes use different blocking
// status sets on purpose; do not unify them.
package availability

import (
	"context"
	"time"

	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/domain"
)

// Window is a half-open stay interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window from a check-in date and an optional check-out.
// A missing check-out means a one-night stay.
func NewWindow(checkIn time.Time, checkOut *time.Time) Window {
	if checkOut == nil {
		return Window{Start: checkIn, End: checkIn.AddDate(0, 0, 1)}
	}
	return Window{Start: checkIn, End: *checkOut}
}

// ConflictsWithWindow is the window-mode policy: every status except
// Cancelled, CheckedOut and NoShow blocks. The overlap test is the union of
// the three half-open sub-cases; a booking ending exactly at Window.Start or
// starting exactly at Window.End does not conflict.
func ConflictsWithWindow(b domain.Booking, win Window) bool {
	switch b.Status {
	case domain.BookingCancelled, domain.BookingCheckedOut, domain.BookingNoShow:
		return false
	}

	startsDuring := !b.CheckIn.Before(win.Start) && b.CheckIn.Before(win.End)
	endsDuring := b.CheckOut.After(win.Start) && !b.CheckOut.After(win.End)
	covers := !b.CheckIn.After(win.Start) && !b.CheckOut.Before(win.End)

	return startsDuring || endsDuring || covers
}

// IsCurrentlyOccupying is the no-window policy: only Pending, Confirmed and
// CheckedIn bookings block, and only while their check-out is still ahead of
// today. A stay that fully elapsed never blocks, whatever its status.
func IsCurrentlyOccupying(b domain.Booking, today time.Time) bool {
	switch b.Status {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingCheckedIn:
		return b.CheckOut.After(today)
	}
	return false
}

// RoomSource is the slice of the catalog repository the resolver needs.
type RoomSource interface {
	ListRooms(ctx context.Context, roomTypeID int64) ([]domain.Room, error)
}

type Resolver struct {
	rooms RoomSource
	now   func() time.Time
}

func NewResolver(rooms RoomSource, now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{rooms: rooms, now: now}
}

// Today is the no-window reference point: the current UTC day at midnight.
func (r *Resolver) Today() time.Time {
	y, m, d := r.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CountAvailable counts rooms of the given type that are free. With a window
// it applies ConflictsWithWindow; without one it applies IsCurrentlyOccupying
// against today. Recomputed fresh on every call so freshly written bookings
// are observed immediately.
func (r *Resolver) CountAvailable(ctx context.Context, roomTypeID int64, win *Window) (int, error) {
	rooms, err := r.rooms.ListRooms(ctx, roomTypeID)
	if err != nil {
		return 0, err
	}

	today := r.Today()
	n := 0
	for _, rm := range rooms {
		if rm.Status != domain.RoomAvailable {
			continue
		}
		if roomBlocked(rm, win, today) {
			continue
		}
		n++
	}
	return n, nil
}

func roomBlocked(rm domain.Room, win *Window, today time.Time) bool {
	for _, b := range rm.Bookings {
		if win != nil {
			if ConflictsWithWindow(b, *win) {
				return true
			}
		} else if IsCurrentlyOccupying(b, today) {
			return true
		}
	}
	return false
}
