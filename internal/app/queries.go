package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/availability"
	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/domain"
	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/search"
)

const (
	DefaultPageSize = 9
	TypeaheadLimit  = 9

	// slider upper bound when the catalog has no room types yet
	fallbackMaxPrice = 500

	metaCacheKey = "catalog:meta"
)

type CatalogService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	avail    *availability.Resolver
	cacheTTL time.Duration
}

// NewCatalogService wires the engine. now is injectable for tests; pass nil
// for the wall clock.
func NewCatalogService(r domain.CatalogRepository, c domain.Cache, ttl time.Duration, now func() time.Time) *CatalogService {
	return &CatalogService{
		repo:     r,
		cache:    c,
		avail:    availability.NewResolver(r, now),
		cacheTTL: ttl,
	}
}

// ---- result shapes ----

type RoomTypeResult struct {
	domain.RoomTypeSummary
	AvailableRooms int
}

type RoomTypeOption struct {
	ID   int64
	Name string
}

// CatalogMeta is the catalog-wide data filter UIs need: the distinct
// room-type list, the price-slider bound and the destination picker entries.
type CatalogMeta struct {
	RoomTypes    []RoomTypeOption
	MaxPrice     float64
	Destinations []string
}

type CatalogPage struct {
	Items      []RoomTypeResult
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int

	Filters  search.Filters
	Warnings []search.Warning

	// TooShort mirrors the short-term state; Prompt is set alongside it.
	TooShort bool
	Prompt   string

	Meta CatalogMeta
}

type TypeaheadItem struct {
	domain.RoomTypeSummary
	AvgRating      float64
	ReviewCount    int
	AvailableRooms int
}

type TypeaheadResult struct {
	Items    []TypeaheadItem
	TooShort bool
	Prompt   string
	Warnings []search.Warning
}

type AvailabilityResult struct {
	Available bool `json:"available"`
	Count     int  `json:"count"`
	// Message explains a structured negative result (bad date range); empty on success.
	Message string `json:"message,omitempty"`
}

type RoomTypeDetails struct {
	domain.RoomTypeView
	AvailableRooms int
	Stats          domain.ReviewStats
	Reviews        domain.ReviewsPage
}

// ---- operations ----

// Catalog resolves the composed predicate over the whole room-type
// population, dedupes by room-type id, orders by id ascending, pages, and
// annotates each hit with a live available-room count. A supplied check-in
// date switches availability to window mode (one-night window).
func (s *CatalogService) Catalog(ctx context.Context, p search.Params, page, pageSize int) (CatalogPage, error) {
	page, pageSize = sanitizePage(page, pageSize)

	filters, warns := search.Normalize(p, s.avail.Today())

	meta, err := s.Meta(ctx)
	if err != nil {
		return CatalogPage{}, err
	}

	out := CatalogPage{
		Page:     page,
		PageSize: pageSize,
		Filters:  filters,
		Warnings: warns,
		Meta:     meta,
	}

	if filters.TooShort {
		out.TooShort = true
		out.Prompt = search.ShortTermPrompt
		return out, nil
	}

	summaries, err := s.repo.ListRoomTypeSummaries(ctx)
	if err != nil {
		return CatalogPage{}, err
	}

	matched := filterDistinct(summaries, filters)
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	out.TotalCount = len(matched)
	out.TotalPages = totalPages(out.TotalCount, pageSize)

	var win *availability.Window
	if filters.CheckIn != nil {
		w := availability.NewWindow(*filters.CheckIn, nil)
		win = &w
	}

	for _, rt := range pageSlice(matched, page, pageSize) {
		n, err := s.avail.CountAvailable(ctx, rt.ID, win)
		if err != nil {
			return CatalogPage{}, fmt.Errorf("count available for room type %d: %w", rt.ID, err)
		}
		out.Items = append(out.Items, RoomTypeResult{RoomTypeSummary: rt, AvailableRooms: n})
	}

	return out, nil
}

// TypeaheadSearch is the lightweight variant: price-ascending, capped at
// TypeaheadLimit, annotated with review stats and a no-window availability
// count.
func (s *CatalogService) TypeaheadSearch(ctx context.Context, p search.Params) (TypeaheadResult, error) {
	p.CheckIn = nil // typeahead is always date-less
	filters, warns := search.Normalize(p, s.avail.Today())

	out := TypeaheadResult{Warnings: warns}
	if filters.TooShort {
		out.TooShort = true
		out.Prompt = search.ShortTermPrompt
		return out, nil
	}

	summaries, err := s.repo.ListRoomTypeSummaries(ctx)
	if err != nil {
		return TypeaheadResult{}, err
	}

	matched := filterDistinct(summaries, filters)
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].BasePrice != matched[j].BasePrice {
			return matched[i].BasePrice < matched[j].BasePrice
		}
		return matched[i].ID < matched[j].ID
	})
	if len(matched) > TypeaheadLimit {
		matched = matched[:TypeaheadLimit]
	}

	for _, rt := range matched {
		n, err := s.avail.CountAvailable(ctx, rt.ID, nil)
		if err != nil {
			return TypeaheadResult{}, err
		}
		stats, err := s.repo.ReviewStats(ctx, rt.ID)
		if err != nil {
			return TypeaheadResult{}, err
		}
		out.Items = append(out.Items, TypeaheadItem{
			RoomTypeSummary: rt,
			AvgRating:       stats.Average,
			ReviewCount:     stats.Count,
			AvailableRooms:  n,
		})
	}

	return out, nil
}

// CheckAvailability answers "how many rooms of this type are free for
// [checkIn, checkOut)". Bad date ranges come back as a structured negative
// result with a message, never as an error.
func (s *CatalogService) CheckAvailability(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time) (AvailabilityResult, error) {
	if !checkOut.After(checkIn) {
		return AvailabilityResult{Message: "check-out date must be after check-in date"}, nil
	}
	if checkIn.Before(s.avail.Today()) {
		return AvailabilityResult{Message: "check-in date cannot be in the past"}, nil
	}

	win := availability.Window{Start: checkIn, End: checkOut}
	n, err := s.avail.CountAvailable(ctx, roomTypeID, &win)
	if err != nil {
		return AvailabilityResult{}, err
	}
	return AvailabilityResult{Available: n > 0, Count: n}, nil
}

// RoomTypeDetails returns one room type with its current (no-window)
// available-room count and a page of its reviews, newest first. Unknown ids
// surface domain.ErrNotFound.
func (s *CatalogService) RoomTypeDetails(ctx context.Context, id int64, reviewPage, reviewPageSize int) (RoomTypeDetails, error) {
	reviewPage, reviewPageSize = sanitizePage(reviewPage, reviewPageSize)

	rt, err := s.repo.GetRoomType(ctx, id)
	if err != nil {
		return RoomTypeDetails{}, err
	}

	n, err := s.avail.CountAvailable(ctx, id, nil)
	if err != nil {
		return RoomTypeDetails{}, err
	}
	stats, err := s.repo.ReviewStats(ctx, id)
	if err != nil {
		return RoomTypeDetails{}, err
	}
	reviews, err := s.repo.ListReviews(ctx, id, domain.PageQuery{Page: reviewPage, PageSize: reviewPageSize})
	if err != nil {
		return RoomTypeDetails{}, err
	}

	return RoomTypeDetails{
		RoomTypeView:   rt,
		AvailableRooms: n,
		Stats:          stats,
		Reviews:        reviews,
	}, nil
}

// Meta serves the catalog-wide dropdown data through a read-through cache.
// Seeder writes call InvalidateMeta; page results and availability counts are
// never cached.
func (s *CatalogService) Meta(ctx context.Context) (CatalogMeta, error) {
	var meta CatalogMeta
	if ok, _ := s.cache.Get(ctx, metaCacheKey, &meta); ok {
		return meta, nil
	}

	summaries, err := s.repo.ListRoomTypeSummaries(ctx)
	if err != nil {
		return CatalogMeta{}, err
	}
	hotels, err := s.repo.ListHotels(ctx)
	if err != nil {
		return CatalogMeta{}, err
	}

	meta = assembleMeta(summaries, hotels)
	_ = s.cache.Set(ctx, metaCacheKey, meta, int(s.cacheTTL.Seconds()))
	return meta, nil
}

func (s *CatalogService) InvalidateMeta(ctx context.Context) error {
	return s.cache.Del(ctx, metaCacheKey)
}

// ---- assembly helpers ----

func assembleMeta(summaries []domain.RoomTypeSummary, hotels []domain.Hotel) CatalogMeta {
	meta := CatalogMeta{MaxPrice: fallbackMaxPrice}

	if len(summaries) > 0 {
		meta.MaxPrice = 0
		for _, rt := range summaries {
			meta.RoomTypes = append(meta.RoomTypes, RoomTypeOption{ID: rt.ID, Name: rt.Name})
			if rt.BasePrice > meta.MaxPrice {
				meta.MaxPrice = rt.BasePrice
			}
		}
		sort.Slice(meta.RoomTypes, func(i, j int) bool {
			if meta.RoomTypes[i].Name != meta.RoomTypes[j].Name {
				return meta.RoomTypes[i].Name < meta.RoomTypes[j].Name
			}
			return meta.RoomTypes[i].ID < meta.RoomTypes[j].ID
		})
	}

	seen := make(map[string]struct{}, len(hotels))
	for _, h := range hotels {
		d := h.City + ", " + h.Country
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		meta.Destinations = append(meta.Destinations, d)
	}
	sort.Strings(meta.Destinations)

	return meta
}

// filterDistinct applies the predicate and dedupes by room-type id; the id is
// the pagination and counting key throughout.
func filterDistinct(summaries []domain.RoomTypeSummary, f search.Filters) []domain.RoomTypeSummary {
	seen := make(map[int64]struct{}, len(summaries))
	var out []domain.RoomTypeSummary
	for _, rt := range summaries {
		if _, dup := seen[rt.ID]; dup {
			continue
		}
		if !f.Match(rt) {
			continue
		}
		seen[rt.ID] = struct{}{}
		out = append(out, rt)
	}
	return out
}

func sanitizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

func pageSlice(items []domain.RoomTypeSummary, page, pageSize int) []domain.RoomTypeSummary {
	// (page-1)*pageSize must not overflow int; such a page is past the end anyway
	if page > math.MaxInt/pageSize {
		return nil
	}
	skip := (page - 1) * pageSize
	if skip >= len(items) {
		return nil
	}
	end := skip + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

func totalPages(total, pageSize int) int {
	if total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
