package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/adapters/feed"
	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/app"
	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/domain"
)

// recordingRepo counts upserts; reads are unused by the seeder.
type recordingRepo struct {
	fakeRepo
	gotHotels    []domain.Hotel
	gotRoomTypes []domain.RoomType
	gotRooms     []domain.Room
	gotBookings  []domain.Booking
	gotReviews   []domain.Review
}

func (r *recordingRepo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	r.gotHotels = append(r.gotHotels, h)
	return nil
}
func (r *recordingRepo) UpsertRoomType(ctx context.Context, rt domain.RoomType) error {
	r.gotRoomTypes = append(r.gotRoomTypes, rt)
	return nil
}
func (r *recordingRepo) UpsertRoom(ctx context.Context, rm domain.Room) error {
	r.gotRooms = append(r.gotRooms, rm)
	return nil
}
func (r *recordingRepo) UpsertBookings(ctx context.Context, bs []domain.Booking) error {
	r.gotBookings = append(r.gotBookings, bs...)
	return nil
}
func (r *recordingRepo) UpsertReviews(ctx context.Context, rs []domain.Review) error {
	r.gotReviews = append(r.gotReviews, rs...)
	return nil
}

func TestSeedHotel_UpsertsAndInvalidatesMeta(t *testing.T) {
	repo := &recordingRepo{}
	cache := &fakeCache{}
	_ = cache.Set(context.Background(), "catalog:meta", app.CatalogMeta{MaxPrice: 1}, 60)

	rating := 8.5
	doc := feed.Hotel{
		ID: 1, Name: "Pearl Towers", City: "Kuala Lumpur", Country: "Malaysia",
		RoomTypes: []feed.RoomType{{
			ID: 10, Name: "Deluxe Suite", BasePrice: 150, Occupancy: 4,
			Rooms: []feed.Room{{
				ID: 1, Status: "Available",
				Bookings: []feed.Booking{{
					ID:       100,
					CheckIn:  feed.Date{Time: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)},
					CheckOut: feed.Date{Time: time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)},
					Status:   "Confirmed",
					Reviews:  []feed.Review{{ID: 7, Author: "Ana", Rating: &rating}},
				}},
			}},
		}},
	}

	s := app.NewSeedService(repo, cache)
	if err := s.SeedHotel(context.Background(), doc); err != nil {
		t.Fatalf("err: %v", err)
	}

	if len(repo.gotHotels) != 1 || len(repo.gotRoomTypes) != 1 || len(repo.gotRooms) != 1 {
		t.Fatalf("unexpected upsert counts: %+v", repo)
	}
	if len(repo.gotBookings) != 1 || repo.gotBookings[0].Status != domain.BookingConfirmed {
		t.Fatalf("unexpected bookings: %+v", repo.gotBookings)
	}
	if len(repo.gotReviews) != 1 || repo.gotReviews[0].BookingID != 100 {
		t.Fatalf("unexpected reviews: %+v", repo.gotReviews)
	}
	if rt := repo.gotRoomTypes[0]; rt.HotelID == nil || *rt.HotelID != 1 {
		t.Fatalf("room type not linked to hotel: %+v", rt)
	}

	// metadata cache must be dropped so dropdowns see the new catalog
	if _, ok := cache.store["catalog:meta"]; ok {
		t.Fatalf("expected catalog meta cache to be invalidated")
	}
}
