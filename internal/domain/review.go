package domain

import "time"

type Review struct {
	ID        int64
	BookingID int64
	Author    *string
	Rating    *float64
	Title     *string
	Text      *string
	CreatedAt time.Time
}

type ReviewStats struct {
	Average float64
	Count   int
}
