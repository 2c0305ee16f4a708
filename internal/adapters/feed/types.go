package feed

import "time"

// Wire types for the catalog feed: one Hotel per document, children nested.
// Dates are "2006-01-02"; booking/room statuses use the domain spellings.

type Hotel struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	City      string     `json:"city"`
	Country   string     `json:"country"`
	Image     string     `json:"image,omitempty"`
	RoomTypes []RoomType `json:"room_types"`
}

type RoomType struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	BasePrice   float64  `json:"base_price"`
	Occupancy   int      `json:"occupancy"`
	Images      []string `json:"images,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	Rooms       []Room   `json:"rooms,omitempty"`
}

type Room struct {
	ID       int64     `json:"id"`
	Number   string    `json:"number,omitempty"`
	Status   string    `json:"status"`
	Bookings []Booking `json:"bookings,omitempty"`
}

type Booking struct {
	ID       int64    `json:"id"`
	CheckIn  Date     `json:"check_in"`
	CheckOut Date     `json:"check_out"`
	Status   string   `json:"status"`
	Reviews  []Review `json:"reviews,omitempty"`
}

type Review struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author,omitempty"`
	Rating    *float64  `json:"rating,omitempty"`
	Title     string    `json:"title,omitempty"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Date unmarshals a bare "2006-01-02" day.
type Date struct{ time.Time }

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	t, err := time.Parse(`"2006-01-02"`, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(d.Format(`"2006-01-02"`)), nil
}
