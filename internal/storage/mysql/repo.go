package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"strings"

	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- write paths (seeder) ----

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID, h.Name, h.City, h.Country, valStr(h.Image))
	return err
}

func (r *Repo) UpsertRoomType(ctx context.Context, rt domain.RoomType) error {
	imgs, _ := json.Marshal(rt.Images)
	amen, _ := json.Marshal(rt.Amenities)
	_, err := r.db.ExecContext(ctx, upsertRoomTypeSQL,
		rt.ID,
		valInt64(rt.HotelID),
		rt.Name,
		valStr(rt.Description),
		rt.BasePrice,
		rt.Occupancy,
		string(imgs),
		string(amen),
	)
	return err
}

func (r *Repo) UpsertRoom(ctx context.Context, rm domain.Room) error {
	_, err := r.db.ExecContext(ctx, upsertRoomSQL,
		rm.ID, rm.RoomTypeID, valStr(rm.Number), string(rm.Status))
	return err
}

func (r *Repo) UpsertBookings(ctx context.Context, bs []domain.Booking) error {
	if len(bs) == 0 {
		return nil
	}
	values := make([]string, 0, len(bs))
	args := make([]any, 0, len(bs)*5)
	for _, b := range bs {
		values = append(values, "(?,?,?,?,?)")
		args = append(args, b.ID, b.RoomID, b.CheckIn, b.CheckOut, string(b.Status))
	}
	sqlStr := insertBookingsPrefix + strings.Join(values, ",") + insertBookingsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) UpsertReviews(ctx context.Context, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*7)
	for _, rv := range rs {
		// created_at goes through COALESCE so an unknown timestamp falls back
		// to the row's insert time.
		values = append(values, "(?,?,?,?,?,?,COALESCE(?, CURRENT_TIMESTAMP))")
		var createdAt any
		if !rv.CreatedAt.IsZero() {
			createdAt = rv.CreatedAt
		}
		args = append(args,
			rv.ID,
			rv.BookingID,
			valStr(rv.Author),
			valF64(rv.Rating),
			valStr(rv.Title),
			valStr(rv.Text),
			createdAt,
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// ---- read paths ----

func (r *Repo) ListRoomTypeSummaries(ctx context.Context) ([]domain.RoomTypeSummary, error) {
	rows, err := r.db.QueryContext(ctx, listRoomTypeSummariesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RoomTypeSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type summaryScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row summaryScanner) (domain.RoomTypeSummary, error) {
	var s domain.RoomTypeSummary
	var hotelID sql.NullInt64
	var hName, hCity, hCountry sql.NullString
	if err := row.Scan(
		&s.ID, &s.Name, &s.BasePrice, &s.Occupancy,
		&hotelID, &hName, &hCity, &hCountry,
	); err != nil {
		return domain.RoomTypeSummary{}, err
	}
	if hotelID.Valid {
		id := hotelID.Int64
		s.HotelID = &id
	}
	s.HotelName = hName.String
	s.HotelCity = hCity.String
	s.HotelCountry = hCountry.String
	return s, nil
}

func (r *Repo) GetRoomType(ctx context.Context, id int64) (domain.RoomTypeView, error) {
	row := r.db.QueryRowContext(ctx, getRoomTypeSQL, id)

	var v domain.RoomTypeView
	var hotelID sql.NullInt64
	var hName, hCity, hCountry, desc sql.NullString
	var imagesJSON, amenitiesJSON []byte

	if err := row.Scan(
		&v.ID, &v.Name, &v.BasePrice, &v.Occupancy,
		&hotelID, &hName, &hCity, &hCountry,
		&desc, &imagesJSON, &amenitiesJSON,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.RoomTypeView{}, domain.ErrNotFound
		}
		return domain.RoomTypeView{}, err
	}

	if hotelID.Valid {
		hid := hotelID.Int64
		v.HotelID = &hid
	}
	v.HotelName = hName.String
	v.HotelCity = hCity.String
	v.HotelCountry = hCountry.String
	if desc.Valid {
		d := desc.String
		v.Description = &d
	}
	_ = json.Unmarshal(imagesJSON, &v.Images)
	_ = json.Unmarshal(amenitiesJSON, &v.Amenities)
	return v, nil
}

// ListRooms returns the physical rooms of one type with their full booking
// history attached; two queries, bookings joined in memory by room id.
func (r *Repo) ListRooms(ctx context.Context, roomTypeID int64) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, listRoomsSQL, roomTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	index := map[int64]int{}
	for rows.Next() {
		var rm domain.Room
		var number sql.NullString
		var status string
		if err := rows.Scan(&rm.ID, &rm.RoomTypeID, &number, &status); err != nil {
			return nil, err
		}
		if number.Valid {
			n := number.String
			rm.Number = &n
		}
		rm.Status = domain.RoomStatus(status)
		index[rm.ID] = len(out)
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}

	brows, err := r.db.QueryContext(ctx, listBookingsByRoomTypeSQL, roomTypeID)
	if err != nil {
		return nil, err
	}
	defer brows.Close()

	for brows.Next() {
		var b domain.Booking
		var status string
		if err := brows.Scan(&b.ID, &b.RoomID, &b.CheckIn, &b.CheckOut, &status); err != nil {
			return nil, err
		}
		b.Status = domain.BookingStatus(status)
		if i, ok := index[b.RoomID]; ok {
			out[i].Bookings = append(out[i].Bookings, b)
		}
	}
	return out, brows.Err()
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		var image sql.NullString
		if err := rows.Scan(&h.ID, &h.Name, &h.City, &h.Country, &image); err != nil {
			return nil, err
		}
		if image.Valid {
			img := image.String
			h.Image = &img
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) ListReviews(ctx context.Context, roomTypeID int64, pg domain.PageQuery) (domain.ReviewsPage, error) {
	if pg.Page < 1 {
		pg.Page = 1
	}
	if pg.PageSize < 1 {
		pg.PageSize = 9
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countReviewsSQL, roomTypeID).Scan(&total); err != nil {
		return domain.ReviewsPage{}, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + pg.PageSize - 1) / pg.PageSize
	}
	out := domain.ReviewsPage{
		TotalCount: total,
		TotalPages: totalPages,
		Page:       pg.Page,
		PageSize:   pg.PageSize,
	}

	// the OFFSET must not overflow int; pages out there are empty regardless
	if pg.Page > math.MaxInt/pg.PageSize {
		return out, nil
	}
	offset := (pg.Page - 1) * pg.PageSize
	rows, err := r.db.QueryContext(ctx, listReviewsSQL, roomTypeID, pg.PageSize, offset)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	defer rows.Close()

	var items []domain.Review
	for rows.Next() {
		var rv domain.Review
		var author, title, text sql.NullString
		var rating sql.NullFloat64
		var createdAt sql.NullTime
		if err := rows.Scan(&rv.ID, &rv.BookingID, &author, &rating, &title, &text, &createdAt); err != nil {
			return domain.ReviewsPage{}, err
		}
		if author.Valid {
			s := author.String
			rv.Author = &s
		}
		if rating.Valid {
			f := rating.Float64
			rv.Rating = &f
		}
		if title.Valid {
			s := title.String
			rv.Title = &s
		}
		if text.Valid {
			s := text.String
			rv.Text = &s
		}
		if createdAt.Valid {
			rv.CreatedAt = createdAt.Time
		}
		items = append(items, rv)
	}
	if err := rows.Err(); err != nil {
		return domain.ReviewsPage{}, err
	}

	out.Items = items
	return out, nil
}

func (r *Repo) ReviewStats(ctx context.Context, roomTypeID int64) (domain.ReviewStats, error) {
	var st domain.ReviewStats
	err := r.db.QueryRowContext(ctx, reviewStatsSQL, roomTypeID).Scan(&st.Average, &st.Count)
	return st, err
}
