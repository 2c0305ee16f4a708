package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/app"
	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/domain"
	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/search"
)

const dateLayout = "2006-01-02"

type Handlers struct{ Q *app.CatalogService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/catalog", h.catalog)
	s.mux.Get("/v1/search", h.typeahead)
	s.mux.Get("/v1/room-types/{id}", h.roomTypeDetails)
	s.mux.Get("/v1/room-types/{id}/availability", h.checkAvailability)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSONWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// ---- query-string parsing ----

func queryInt(r *http.Request, key string) (*int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func queryInt64(r *http.Request, key string) (*int64, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func queryFloat(r *http.Request, key string) (*float64, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func queryDate(r *http.Request, key string) (*time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// searchParams collects the shared filter parameters; malformed values are a
// transport-level 400, distinct from the engine's own validation warnings.
func searchParams(r *http.Request) (search.Params, error) {
	p := search.Params{Term: r.URL.Query().Get("q")}

	id, err := queryInt64(r, "room_type")
	if err != nil {
		return p, errors.New("room_type must be a number")
	}
	p.RoomTypeID = id

	price, err := queryFloat(r, "max_price")
	if err != nil {
		return p, errors.New("max_price must be a number")
	}
	p.MaxPrice = price

	guests, err := queryInt(r, "guests")
	if err != nil {
		return p, errors.New("guests must be a number")
	}
	p.Guests = guests

	checkIn, err := queryDate(r, "check_in")
	if err != nil {
		return p, errors.New("check_in must be formatted as YYYY-MM-DD")
	}
	p.CheckIn = checkIn

	return p, nil
}

// ---- handlers ----

func (h *Handlers) catalog(w http.ResponseWriter, r *http.Request) {
	p, err := searchParams(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	page, err := queryInt(r, "page")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid page", "page must be a number")
		return
	}
	pageSize, err := queryInt(r, "page_size")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid page size", "page_size must be a number")
		return
	}

	out, err := h.Q.Catalog(r.Context(), p, intOr(page, 1), intOr(pageSize, app.DefaultPageSize))
	if err != nil {
		log.Error().Err(err).Msg("catalog query failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "catalog query failed")
		return
	}

	writeJSONWithETag(w, r, out)
}

func (h *Handlers) typeahead(w http.ResponseWriter, r *http.Request) {
	p, err := searchParams(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	out, err := h.Q.TypeaheadSearch(r.Context(), p)
	if err != nil {
		log.Error().Err(err).Msg("typeahead query failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "search failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Error().Err(err).Msg("failed to write typeahead body")
	}
}

func (h *Handlers) roomTypeDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}

	reviewPage, err := queryInt(r, "review_page")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid page", "review_page must be a number")
		return
	}
	reviewPageSize, err := queryInt(r, "review_page_size")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid page size", "review_page_size must be a number")
		return
	}

	out, err := h.Q.RoomTypeDetails(r.Context(), id, intOr(reviewPage, 1), intOr(reviewPageSize, app.DefaultPageSize))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "room type not found")
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("room type details failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "details query failed")
		return
	}

	writeJSONWithETag(w, r, out)
}

func (h *Handlers) checkAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}

	checkIn, err := queryDate(r, "check_in")
	if err != nil || checkIn == nil {
		writeProblem(w, http.StatusBadRequest, "Invalid dates", "check_in is required as YYYY-MM-DD")
		return
	}
	checkOut, err := queryDate(r, "check_out")
	if err != nil || checkOut == nil {
		writeProblem(w, http.StatusBadRequest, "Invalid dates", "check_out is required as YYYY-MM-DD")
		return
	}

	out, err := h.Q.CheckAvailability(r.Context(), id, *checkIn, *checkOut)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("availability check failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "availability check failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Error().Err(err).Msg("failed to write availability body")
	}
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
