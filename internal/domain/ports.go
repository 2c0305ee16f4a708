package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("catalog: not found")

type CatalogRepository interface {
	// Write paths (seeder only; the query engine never mutates)
	UpsertHotel(ctx context.Context, h Hotel) error
	UpsertRoomType(ctx context.Context, rt RoomType) error
	UpsertRoom(ctx context.Context, rm Room) error
	UpsertBookings(ctx context.Context, bs []Booking) error
	UpsertReviews(ctx context.Context, rs []Review) error

	// Read paths
	ListRoomTypeSummaries(ctx context.Context) ([]RoomTypeSummary, error)
	GetRoomType(ctx context.Context, id int64) (RoomTypeView, error)
	ListRooms(ctx context.Context, roomTypeID int64) ([]Room, error)
	ListHotels(ctx context.Context) ([]Hotel, error)
	ListReviews(ctx context.Context, roomTypeID int64, pg PageQuery) (ReviewsPage, error)
	ReviewStats(ctx context.Context, roomTypeID int64) (ReviewStats, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models & queries

// RoomTypeSummary is one room type denormalized with its hotel, exactly the
// fields the search predicates evaluate. One row per room type: joins never
// fan out to callers.
type RoomTypeSummary struct {
	ID           int64
	Name         string
	BasePrice    float64
	Occupancy    int
	HotelID      *int64
	HotelName    string
	HotelCity    string
	HotelCountry string
}

type RoomTypeView struct {
	RoomTypeSummary
	Description *string
	Images      []string
	Amenities   []string
}

type PageQuery struct {
	Page     int
	PageSize int
}

type ReviewsPage struct {
	Items      []Review
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
}
