package domain

type Hotel struct {
	ID      int64
	Name    string
	City    string
	Country string
	Image   *string
}

type RoomType struct {
	ID          int64
	HotelID     *int64 // a room type may be orphaned while its hotel is offboarded
	Name        string
	Description *string
	BasePrice   float64
	Occupancy   int
	Images      []string
	Amenities   []string
}

type RoomStatus string

const (
	RoomAvailable    RoomStatus = "Available"
	RoomOutOfService RoomStatus = "OutOfService"
	RoomCleaning     RoomStatus = "Cleaning"
)

type Room struct {
	ID         int64
	RoomTypeID int64
	Number     *string
	Status     RoomStatus
	Bookings   []Booking
}
