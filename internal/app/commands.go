package app

import (
	"context"
	"fmt"

	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/adapters/feed"
	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/domain"
)

// SeedService loads catalog feed documents into storage. It is the only
// write path in the system; the query engine stays read-only.
type SeedService struct {
	repo  domain.CatalogRepository
	cache domain.Cache
}

func NewSeedService(r domain.CatalogRepository, c domain.Cache) *SeedService {
	return &SeedService{repo: r, cache: c}
}

// SeedHotel upserts one hotel document parent-first (hotel, room types,
// rooms, bookings, reviews) so foreign keys always resolve, then drops the
// catalog metadata cache so dropdowns pick up the new data.
func (s *SeedService) SeedHotel(ctx context.Context, h feed.Hotel) error {
	if err := s.repo.UpsertHotel(ctx, mapHotel(h)); err != nil {
		return fmt.Errorf("upsert hotel %d: %w", h.ID, err)
	}

	for _, rt := range h.RoomTypes {
		if err := s.repo.UpsertRoomType(ctx, mapRoomType(h.ID, rt)); err != nil {
			return fmt.Errorf("upsert room type %d: %w", rt.ID, err)
		}

		var bookings []domain.Booking
		var reviews []domain.Review
		for _, rm := range rt.Rooms {
			if err := s.repo.UpsertRoom(ctx, mapRoom(rt.ID, rm)); err != nil {
				return fmt.Errorf("upsert room %d: %w", rm.ID, err)
			}
			for _, b := range rm.Bookings {
				bookings = append(bookings, mapBooking(rm.ID, b))
				for _, rv := range b.Reviews {
					reviews = append(reviews, mapReview(b.ID, rv))
				}
			}
		}

		if err := s.repo.UpsertBookings(ctx, bookings); err != nil {
			return fmt.Errorf("upsert bookings for room type %d: %w", rt.ID, err)
		}
		if err := s.repo.UpsertReviews(ctx, reviews); err != nil {
			return fmt.Errorf("upsert reviews for room type %d: %w", rt.ID, err)
		}
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, metaCacheKey)
	}
	return nil
}
