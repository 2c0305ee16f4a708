// Package search turns raw query parameters into a composable room-type
// predicate plus non-fatal validation warnings. Bad inputs are corrected to a
// safe default and flagged, never rejected — except the dedicated "term too
// short" state, which short-circuits the whole query.
package search

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/domain"
)

const (
	MinGuests  = 1
	MaxGuests  = 20
	MaxTermLen = 200
	MinTermLen = 2

	// ShortTermPrompt is surfaced instead of results when the term is too short.
	ShortTermPrompt = "enter at least 2 characters"
)

var termChars = regexp.MustCompile(`^[A-Za-z0-9 ,.-]+$`)

// Params are the raw, caller-supplied filters. Nil pointer means "not supplied".
type Params struct {
	Term       string
	RoomTypeID *int64
	MaxPrice   *float64
	Guests     *int
	CheckIn    *time.Time
}

type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Filters is the validated, normalized predicate set.
type Filters struct {
	// TooShort marks the terminal short-term state: no predicate exists and
	// callers must present zero results with ShortTermPrompt.
	TooShort bool

	Term       string // trimmed, lowercased
	RoomTypeID *int64
	MaxPrice   *float64
	Guests     *int
	CheckIn    *time.Time

	// location mode, entered when the term splits into >=2 comma parts
	locationMode bool
	cityToken    string
	countryToken string
}

// Normalize validates and corrects the raw parameters. today gates the
// check-in date and must be midnight-truncated.
func Normalize(p Params, today time.Time) (Filters, []Warning) {
	var warns []Warning
	f := Filters{RoomTypeID: p.RoomTypeID}

	if p.Guests != nil {
		g := *p.Guests
		if g < MinGuests || g > MaxGuests {
			g = MinGuests
			warns = append(warns, Warning{Field: "guests", Message: "guest count out of range, using 1"})
		}
		f.Guests = &g
	}

	if p.MaxPrice != nil {
		if *p.MaxPrice < 0 {
			warns = append(warns, Warning{Field: "maxPrice", Message: "negative price ignored"})
		} else {
			mp := *p.MaxPrice
			f.MaxPrice = &mp
		}
	}

	if p.CheckIn != nil {
		ci := *p.CheckIn
		if ci.Before(today) {
			ci = today
			warns = append(warns, Warning{Field: "checkIn", Message: "check-in date is in the past, using today"})
		}
		f.CheckIn = &ci
	}

	term := strings.TrimSpace(p.Term)
	if term != "" {
		if !termChars.MatchString(term) {
			// warn but still attempt the filter
			warns = append(warns, Warning{Field: "term", Message: "search term contains unsupported characters"})
		}
		if len(term) > MaxTermLen {
			cut := MaxTermLen
			// back off to a rune boundary so the cut never leaves invalid UTF-8
			for cut > 0 && !utf8.RuneStart(term[cut]) {
				cut--
			}
			term = term[:cut]
			warns = append(warns, Warning{Field: "term", Message: "search term truncated to 200 characters"})
		}
		if len(term) < MinTermLen {
			f.TooShort = true
			return f, warns
		}
		f.Term = strings.ToLower(term)

		if city, country, ok := splitLocation(f.Term); ok {
			f.locationMode = true
			f.cityToken = city
			f.countryToken = country
		}
	}

	return f, warns
}

// splitLocation splits the lowercased term on commas, trims each part and
// drops empties. Two or more parts trigger location mode: part 0 is the city
// token, part 1 the country token.
func splitLocation(term string) (city, country string, ok bool) {
	var parts []string
	for _, p := range strings.Split(term, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Match evaluates the composed predicate against one room-type summary.
func (f Filters) Match(rt domain.RoomTypeSummary) bool {
	if f.TooShort {
		return false
	}
	if f.RoomTypeID != nil && rt.ID != *f.RoomTypeID {
		return false
	}
	if f.MaxPrice != nil && rt.BasePrice > *f.MaxPrice {
		return false
	}
	if f.Guests != nil && rt.Occupancy < *f.Guests {
		return false
	}
	if f.Term == "" {
		return true
	}
	if f.locationMode {
		return f.matchLocation(rt)
	}
	return f.matchKeyword(rt)
}

func (f Filters) matchLocation(rt domain.RoomTypeSummary) bool {
	city := strings.ToLower(rt.HotelCity)
	country := strings.ToLower(rt.HotelCountry)
	hotel := strings.ToLower(rt.HotelName)

	cityHit := strings.Contains(city, f.cityToken) || strings.Contains(hotel, f.cityToken)
	countryHit := strings.Contains(country, f.countryToken) || strings.Contains(hotel, f.countryToken)
	return cityHit && countryHit
}

func (f Filters) matchKeyword(rt domain.RoomTypeSummary) bool {
	for _, field := range []string{rt.Name, rt.HotelName, rt.HotelCity, rt.HotelCountry} {
		if keywordHit(strings.ToLower(field), f.Term) {
			return true
		}
	}
	return false
}

// keywordHit matches the term as a prefix of the field or as a mid-string
// occurrence preceded by a space. This is deliberately not a word-boundary
// tokenizer: a term at the very end of a field with no leading space is
// missed, and that behavior is load-bearing for callers.
func keywordHit(field, term string) bool {
	return strings.HasPrefix(field, term) || strings.Contains(field, " "+term)
}
