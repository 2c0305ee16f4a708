package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, city, country, image)
VALUES
  (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name       = VALUES(name),
  city       = VALUES(city),
  country    = VALUES(country),
  image      = VALUES(image),
  updated_at = CURRENT_TIMESTAMP
`

const upsertRoomTypeSQL = `
INSERT INTO room_types
  (id, hotel_id, name, description, base_price, occupancy, images, amenities)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  hotel_id    = VALUES(hotel_id),
  name        = VALUES(name),
  description = VALUES(description),
  base_price  = VALUES(base_price),
  occupancy   = VALUES(occupancy),
  images      = VALUES(images),
  amenities   = VALUES(amenities),
  updated_at  = CURRENT_TIMESTAMP
`

const upsertRoomSQL = `
INSERT INTO rooms
  (id, room_type_id, room_number, status)
VALUES
  (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  room_type_id = VALUES(room_type_id),
  room_number  = VALUES(room_number),
  status       = VALUES(status)
`

const insertBookingsPrefix = "INSERT INTO bookings\n  (id, room_id, check_in, check_out, status)\nVALUES "

const insertBookingsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  room_id   = VALUES(room_id),\n" +
	"  check_in  = VALUES(check_in),\n" +
	"  check_out = VALUES(check_out),\n" +
	"  status    = VALUES(status)\n"

// Note: `text` is reserved; keep it quoted everywhere.
const insertReviewsPrefix = "INSERT INTO reviews\n  (id, booking_id, author, rating, title, `text`, created_at)\nVALUES "

// COALESCE keeps the old value when the new one is NULL.
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  author     = COALESCE(VALUES(author), reviews.author),\n" +
	"  rating     = COALESCE(VALUES(rating), reviews.rating),\n" +
	"  title      = COALESCE(VALUES(title), reviews.title),\n" +
	"  `text`     = COALESCE(VALUES(`text`), reviews.`text`),\n" +
	"  created_at = COALESCE(VALUES(created_at), reviews.created_at)\n"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// One row per room type with its hotel denormalized in; LEFT JOIN because a
// room type may temporarily have no hotel.
const listRoomTypeSummariesSQL = `
SELECT
  rt.id,
  rt.name,
  rt.base_price,
  rt.occupancy,
  rt.hotel_id,
  h.name,
  h.city,
  h.country
FROM room_types rt
LEFT JOIN hotels h ON h.id = rt.hotel_id
ORDER BY rt.id
`

const getRoomTypeSQL = `
SELECT
  rt.id,
  rt.name,
  rt.base_price,
  rt.occupancy,
  rt.hotel_id,
  h.name,
  h.city,
  h.country,
  rt.description,
  rt.images,
  rt.amenities
FROM room_types rt
LEFT JOIN hotels h ON h.id = rt.hotel_id
WHERE rt.id = ?
`

const listRoomsSQL = `
SELECT id, room_type_id, room_number, status
FROM rooms
WHERE room_type_id = ?
ORDER BY id
`

// All bookings of all rooms of one type in a single pass; attached to their
// rooms in Go.
const listBookingsByRoomTypeSQL = `
SELECT b.id, b.room_id, b.check_in, b.check_out, b.status
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE r.room_type_id = ?
ORDER BY b.room_id, b.check_in
`

const listHotelsSQL = `
SELECT id, name, city, country, image
FROM hotels
ORDER BY id
`

// Reviews reachable only through this room type's rooms -> bookings -> reviews.
const listReviewsSQL = `
SELECT rv.id, rv.booking_id, rv.author, rv.rating, rv.title, rv.` + "`text`" + `, rv.created_at
FROM reviews rv
JOIN bookings b ON b.id = rv.booking_id
JOIN rooms r ON r.id = b.room_id
WHERE r.room_type_id = ?
ORDER BY rv.created_at DESC, rv.id DESC
LIMIT ? OFFSET ?
`

const countReviewsSQL = `
SELECT COUNT(*)
FROM reviews rv
JOIN bookings b ON b.id = rv.booking_id
JOIN rooms r ON r.id = b.room_id
WHERE r.room_type_id = ?
`

const reviewStatsSQL = `
SELECT COALESCE(AVG(rv.rating), 0), COUNT(*)
FROM reviews rv
JOIN bookings b ON b.id = rv.booking_id
JOIN rooms r ON r.id = b.room_id
WHERE r.room_type_id = ?
`
