package app

import (
	"strings"

	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/adapters/feed"
	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/domain"
)

func mapHotel(h feed.Hotel) domain.Hotel {
	return domain.Hotel{
		ID:      h.ID,
		Name:    strings.TrimSpace(h.Name),
		City:    strings.TrimSpace(h.City),
		Country: strings.TrimSpace(h.Country),
		Image:   ptrStr(h.Image),
	}
}

func mapRoomType(hotelID int64, rt feed.RoomType) domain.RoomType {
	return domain.RoomType{
		ID:          rt.ID,
		HotelID:     &hotelID,
		Name:        strings.TrimSpace(rt.Name),
		Description: ptrStr(rt.Description),
		BasePrice:   rt.BasePrice,
		Occupancy:   rt.Occupancy,
		Images:      rt.Images,
		Amenities:   rt.Amenities,
	}
}

func mapRoom(roomTypeID int64, rm feed.Room) domain.Room {
	status := domain.RoomStatus(rm.Status)
	if status == "" {
		status = domain.RoomAvailable
	}
	return domain.Room{
		ID:         rm.ID,
		RoomTypeID: roomTypeID,
		Number:     ptrStr(rm.Number),
		Status:     status,
	}
}

func mapBooking(roomID int64, b feed.Booking) domain.Booking {
	return domain.Booking{
		ID:       b.ID,
		RoomID:   roomID,
		CheckIn:  b.CheckIn.Time,
		CheckOut: b.CheckOut.Time,
		Status:   domain.BookingStatus(b.Status),
	}
}

func mapReview(bookingID int64, rv feed.Review) domain.Review {
	return domain.Review{
		ID:        rv.ID,
		BookingID: bookingID,
		Author:    ptrStr(rv.Author),
		Rating:    rv.Rating,
		Title:     ptrStr(rv.Title),
		Text:      ptrStr(rv.Text),
		CreatedAt: rv.CreatedAt,
	}
}

func ptrStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
