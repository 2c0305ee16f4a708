package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/app"
	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/domain"
	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/search"
)

// ---- fakes ----

type fakeRepo struct {
	summaries []domain.RoomTypeSummary
	views     map[int64]domain.RoomTypeView
	rooms     map[int64][]domain.Room
	hotels    []domain.Hotel
	reviews   map[int64]domain.ReviewsPage
	stats     map[int64]domain.ReviewStats
}

func (f *fakeRepo) UpsertHotel(ctx context.Context, h domain.Hotel) error        { return nil }
func (f *fakeRepo) UpsertRoomType(ctx context.Context, rt domain.RoomType) error { return nil }
func (f *fakeRepo) UpsertRoom(ctx context.Context, rm domain.Room) error         { return nil }
func (f *fakeRepo) UpsertBookings(ctx context.Context, bs []domain.Booking) error {
	return nil
}
func (f *fakeRepo) UpsertReviews(ctx context.Context, rs []domain.Review) error { return nil }

func (f *fakeRepo) ListRoomTypeSummaries(ctx context.Context) ([]domain.RoomTypeSummary, error) {
	return f.summaries, nil
}
func (f *fakeRepo) GetRoomType(ctx context.Context, id int64) (domain.RoomTypeView, error) {
	v, ok := f.views[id]
	if !ok {
		return domain.RoomTypeView{}, domain.ErrNotFound
	}
	return v, nil
}
func (f *fakeRepo) ListRooms(ctx context.Context, roomTypeID int64) ([]domain.Room, error) {
	return f.rooms[roomTypeID], nil
}
func (f *fakeRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return f.hotels, nil
}
func (f *fakeRepo) ListReviews(ctx context.Context, roomTypeID int64, pg domain.PageQuery) (domain.ReviewsPage, error) {
	return f.reviews[roomTypeID], nil
}
func (f *fakeRepo) ReviewStats(ctx context.Context, roomTypeID int64) (domain.ReviewStats, error) {
	return f.stats[roomTypeID], nil
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok2 := dst.(*app.CatalogMeta); ok2 {
		*d = v.(app.CatalogMeta)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

// ---- helpers ----

func ptr[T any](v T) *T { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedNow(t time.Time) func() time.Time { return func() time.Time { return t } }

func newService(repo *fakeRepo, now time.Time) *app.CatalogService {
	return app.NewCatalogService(repo, &fakeCache{}, 10*time.Minute, fixedNow(now))
}

// ---- tests ----

func TestCatalog_DeluxeSuiteScenario(t *testing.T) {
	// Deluxe Suite: 3 physical rooms, one Confirmed for [Jun 10, Jun 12).
	repo := &fakeRepo{
		summaries: []domain.RoomTypeSummary{
			{ID: 10, Name: "Deluxe Suite", BasePrice: 150, Occupancy: 4, HotelName: "Pearl Towers", HotelCity: "Kuala Lumpur", HotelCountry: "Malaysia"},
		},
		rooms: map[int64][]domain.Room{
			10: {
				{ID: 1, RoomTypeID: 10, Status: domain.RoomAvailable, Bookings: []domain.Booking{
					{ID: 100, RoomID: 1, CheckIn: day(2024, 6, 10), CheckOut: day(2024, 6, 12), Status: domain.BookingConfirmed},
				}},
				{ID: 2, RoomTypeID: 10, Status: domain.RoomAvailable},
				{ID: 3, RoomTypeID: 10, Status: domain.RoomAvailable},
			},
		},
	}
	q := newService(repo, day(2024, 6, 1))

	out, err := q.Catalog(context.Background(),
		search.Params{CheckIn: ptr(day(2024, 6, 10)), Guests: ptr(2)}, 1, 9)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if out.TotalCount != 1 || len(out.Items) != 1 {
		t.Fatalf("unexpected result shape: %+v", out)
	}
	if got := out.Items[0].AvailableRooms; got != 2 {
		t.Fatalf("expected 2 available rooms, got %d", got)
	}
}

func TestCatalog_PaginationIdempotence(t *testing.T) {
	repo := &fakeRepo{rooms: map[int64][]domain.Room{}}
	for i := int64(1); i <= 25; i++ {
		repo.summaries = append(repo.summaries, domain.RoomTypeSummary{
			ID: i, Name: "Room Type", BasePrice: float64(50 + i), Occupancy: 2,
		})
	}
	q := newService(repo, day(2026, 3, 1))

	first, err := q.Catalog(context.Background(), search.Params{}, 1, 9)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if first.TotalCount != 25 || first.TotalPages != 3 {
		t.Fatalf("unexpected totals: count=%d pages=%d", first.TotalCount, first.TotalPages)
	}

	seen := map[int64]bool{}
	var ids []int64
	for page := 1; page <= first.TotalPages; page++ {
		out, err := q.Catalog(context.Background(), search.Params{}, page, 9)
		if err != nil {
			t.Fatalf("page %d err: %v", page, err)
		}
		for _, it := range out.Items {
			if seen[it.ID] {
				t.Fatalf("room type %d repeated across pages", it.ID)
			}
			seen[it.ID] = true
			ids = append(ids, it.ID)
		}
	}
	if len(ids) != 25 {
		t.Fatalf("expected 25 distinct ids across pages, got %d", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("ids not strictly ascending at %d: %v", i, ids)
		}
	}

	// pages past the end are empty, not an error
	empty, err := q.Catalog(context.Background(), search.Params{}, 4, 9)
	if err != nil || len(empty.Items) != 0 {
		t.Fatalf("expected empty page, got %d items, err %v", len(empty.Items), err)
	}
}

func TestCatalog_HugePageNumber(t *testing.T) {
	// page arrives straight from a query string; a value near MaxInt must not
	// wrap the skip offset negative.
	repo := &fakeRepo{
		summaries: []domain.RoomTypeSummary{
			{ID: 10, Name: "Deluxe Suite", BasePrice: 150, Occupancy: 4},
		},
		rooms: map[int64][]domain.Room{},
	}
	q := newService(repo, day(2026, 3, 1))

	out, err := q.Catalog(context.Background(), search.Params{}, (1<<60)+1, 9)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out.Items) != 0 || out.TotalCount != 1 {
		t.Fatalf("expected empty page far past the end, got %+v", out)
	}
}

func TestCatalog_DeduplicatesByRoomTypeID(t *testing.T) {
	// A join fan-out upstream may hand back the same room type twice; it must
	// be counted and paged once.
	repo := &fakeRepo{
		summaries: []domain.RoomTypeSummary{
			{ID: 10, Name: "Deluxe Suite", BasePrice: 150, Occupancy: 4},
			{ID: 10, Name: "Deluxe Suite", BasePrice: 150, Occupancy: 4},
		},
		rooms: map[int64][]domain.Room{},
	}
	q := newService(repo, day(2026, 3, 1))

	out, err := q.Catalog(context.Background(), search.Params{}, 1, 9)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if out.TotalCount != 1 || len(out.Items) != 1 {
		t.Fatalf("expected single deduplicated hit, got count=%d items=%d", out.TotalCount, len(out.Items))
	}
}

func TestCatalog_ShortTermShortCircuits(t *testing.T) {
	repo := &fakeRepo{
		summaries: []domain.RoomTypeSummary{
			{ID: 10, Name: "Deluxe Suite", BasePrice: 150, Occupancy: 4},
		},
		rooms: map[int64][]domain.Room{},
	}
	q := newService(repo, day(2026, 3, 1))

	// other filters supplied alongside must not matter
	out, err := q.Catalog(context.Background(),
		search.Params{Term: "a", Guests: ptr(2), MaxPrice: ptr(500.0)}, 1, 9)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !out.TooShort || len(out.Items) != 0 || out.TotalCount != 0 {
		t.Fatalf("expected short-term state with zero items, got %+v", out)
	}
	if out.Prompt != search.ShortTermPrompt {
		t.Fatalf("expected prompt %q, got %q", search.ShortTermPrompt, out.Prompt)
	}
}

func TestCatalog_MetaAssembly(t *testing.T) {
	repo := &fakeRepo{
		summaries: []domain.RoomTypeSummary{
			{ID: 11, Name: "Standard Room", BasePrice: 80, Occupancy: 2},
			{ID: 10, Name: "Deluxe Suite", BasePrice: 150, Occupancy: 4},
		},
		rooms: map[int64][]domain.Room{},
		hotels: []domain.Hotel{
			{ID: 1, Name: "Pearl Towers", City: "Kuala Lumpur", Country: "Malaysia"},
			{ID: 2, Name: "Harbor Inn", City: "Lisbon", Country: "Portugal"},
			{ID: 3, Name: "Pearl Annex", City: "Kuala Lumpur", Country: "Malaysia"}, // duplicate destination
		},
	}
	q := newService(repo, day(2026, 3, 1))

	out, err := q.Catalog(context.Background(), search.Params{}, 1, 9)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if out.Meta.MaxPrice != 150 {
		t.Fatalf("expected max price 150, got %v", out.Meta.MaxPrice)
	}
	wantDest := []string{"Kuala Lumpur, Malaysia", "Lisbon, Portugal"}
	if len(out.Meta.Destinations) != len(wantDest) {
		t.Fatalf("destinations: %v", out.Meta.Destinations)
	}
	for i := range wantDest {
		if out.Meta.Destinations[i] != wantDest[i] {
			t.Fatalf("destinations out of order: %v", out.Meta.Destinations)
		}
	}
	// alphabetical by name: Deluxe Suite before Standard Room
	if out.Meta.RoomTypes[0].ID != 10 {
		t.Fatalf("room type options out of order: %+v", out.Meta.RoomTypes)
	}
}

func TestMeta_FallbackPriceAndCaching(t *testing.T) {
	repo := &fakeRepo{rooms: map[int64][]domain.Room{}}
	cache := &fakeCache{}
	q := app.NewCatalogService(repo, cache, 10*time.Minute, fixedNow(day(2026, 3, 1)))

	meta, err := q.Meta(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if meta.MaxPrice != 500 {
		t.Fatalf("expected fallback max price 500 on empty catalog, got %v", meta.MaxPrice)
	}

	// Mutate repo; second read must come from cache.
	repo.summaries = []domain.RoomTypeSummary{{ID: 1, Name: "New", BasePrice: 999, Occupancy: 2}}
	meta2, err := q.Meta(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if meta2.MaxPrice != 500 {
		t.Fatalf("expected cached meta, got %+v", meta2)
	}

	// Invalidation makes the new catalog visible.
	if err := q.InvalidateMeta(context.Background()); err != nil {
		t.Fatalf("err: %v", err)
	}
	meta3, err := q.Meta(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if meta3.MaxPrice != 999 {
		t.Fatalf("expected fresh meta after invalidation, got %+v", meta3)
	}
}

func TestTypeaheadSearch_PriceOrderAndCap(t *testing.T) {
	repo := &fakeRepo{
		rooms: map[int64][]domain.Room{},
		stats: map[int64]domain.ReviewStats{
			1: {Average: 8.6, Count: 12},
		},
	}
	for i := int64(1); i <= 12; i++ {
		repo.summaries = append(repo.summaries, domain.RoomTypeSummary{
			ID: i, Name: "Suite", BasePrice: float64(1000 - i*10), Occupancy: 2,
		})
		repo.rooms[i] = []domain.Room{{ID: i, RoomTypeID: i, Status: domain.RoomAvailable}}
	}
	q := newService(repo, day(2026, 3, 1))

	out, err := q.TypeaheadSearch(context.Background(), search.Params{Term: "suite"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out.Items) != 9 {
		t.Fatalf("expected the 9-item cap, got %d", len(out.Items))
	}
	for i := 1; i < len(out.Items); i++ {
		if out.Items[i].BasePrice < out.Items[i-1].BasePrice {
			t.Fatalf("items not price-ascending: %+v", out.Items)
		}
	}
	// cheapest first means the highest ids here
	if out.Items[0].ID != 12 {
		t.Fatalf("expected cheapest room type first, got id %d", out.Items[0].ID)
	}
	if out.Items[0].AvailableRooms != 1 {
		t.Fatalf("expected live availability annotation, got %+v", out.Items[0])
	}

	// short term applies to typeahead too
	short, err := q.TypeaheadSearch(context.Background(), search.Params{Term: "x"})
	if err != nil || !short.TooShort || len(short.Items) != 0 {
		t.Fatalf("expected short-term state, got %+v err %v", short, err)
	}
}

func TestCheckAvailability(t *testing.T) {
	repo := &fakeRepo{
		rooms: map[int64][]domain.Room{
			10: {
				{ID: 1, RoomTypeID: 10, Status: domain.RoomAvailable, Bookings: []domain.Booking{
					{ID: 100, RoomID: 1, CheckIn: day(2026, 6, 10), CheckOut: day(2026, 6, 12), Status: domain.BookingConfirmed},
				}},
				{ID: 2, RoomTypeID: 10, Status: domain.RoomAvailable},
			},
		},
	}
	q := newService(repo, day(2026, 6, 1))

	t.Run("checkout before checkin rejected with message", func(t *testing.T) {
		out, err := q.CheckAvailability(context.Background(), 10, day(2026, 6, 12), day(2026, 6, 10))
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if out.Available || out.Message == "" {
			t.Fatalf("expected structured rejection, got %+v", out)
		}
	})

	t.Run("past checkin rejected with message", func(t *testing.T) {
		out, err := q.CheckAvailability(context.Background(), 10, day(2026, 5, 20), day(2026, 5, 22))
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if out.Available || out.Message == "" {
			t.Fatalf("expected structured rejection, got %+v", out)
		}
	})

	t.Run("valid window counts free rooms", func(t *testing.T) {
		out, err := q.CheckAvailability(context.Background(), 10, day(2026, 6, 10), day(2026, 6, 12))
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if !out.Available || out.Count != 1 || out.Message != "" {
			t.Fatalf("expected 1 free room, got %+v", out)
		}
	})

	t.Run("adjacent window sees both rooms", func(t *testing.T) {
		out, err := q.CheckAvailability(context.Background(), 10, day(2026, 6, 12), day(2026, 6, 14))
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if out.Count != 2 {
			t.Fatalf("expected 2 free rooms for the adjacent window, got %+v", out)
		}
	})
}

func TestRoomTypeDetails(t *testing.T) {
	author := "Ana"
	repo := &fakeRepo{
		views: map[int64]domain.RoomTypeView{
			10: {RoomTypeSummary: domain.RoomTypeSummary{ID: 10, Name: "Deluxe Suite", BasePrice: 150, Occupancy: 4}},
		},
		rooms: map[int64][]domain.Room{
			10: {{ID: 1, RoomTypeID: 10, Status: domain.RoomAvailable}},
		},
		reviews: map[int64]domain.ReviewsPage{
			10: {Items: []domain.Review{{ID: 1, BookingID: 100, Author: &author}}, TotalCount: 1, TotalPages: 1, Page: 1, PageSize: 9},
		},
		stats: map[int64]domain.ReviewStats{10: {Average: 9.0, Count: 1}},
	}
	q := newService(repo, day(2026, 3, 1))

	out, err := q.RoomTypeDetails(context.Background(), 10, 1, 9)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if out.Name != "Deluxe Suite" || out.AvailableRooms != 1 {
		t.Fatalf("unexpected details: %+v", out)
	}
	if len(out.Reviews.Items) != 1 || out.Stats.Count != 1 {
		t.Fatalf("unexpected reviews: %+v", out.Reviews)
	}

	if _, err := q.RoomTypeDetails(context.Background(), 999, 1, 9); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
