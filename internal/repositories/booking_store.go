package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"busbook/internal/domain/models"
)

// BookingStore mirrors committed bookings into MySQL. Passenger and seat
// lists are stored as JSON documents; no transactional guarantees are
// assumed beyond single-statement writes.
type BookingStore struct {
	DB *sql.DB
}

// EnsureSchema creates the bookings table when missing. The service owns
// this schema.
func (s BookingStore) EnsureSchema() error {
	ddl := `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	reference VARCHAR(64) NOT NULL,
	bus_id VARCHAR(64) NOT NULL DEFAULT '',
	route_from VARCHAR(255) NOT NULL,
	route_to VARCHAR(255) NOT NULL,
	trip_date VARCHAR(10) NOT NULL,
	departure_time VARCHAR(20) NOT NULL DEFAULT '',
	arrival_time VARCHAR(20) NOT NULL DEFAULT '',
	bus_operator VARCHAR(255) NOT NULL DEFAULT '',
	bus_type VARCHAR(64) NOT NULL DEFAULT '',
	seat_numbers TEXT NOT NULL,
	passengers TEXT NOT NULL,
	contact_email VARCHAR(255) NOT NULL DEFAULT '',
	contact_phone VARCHAR(64) NOT NULL DEFAULT '',
	payment_method VARCHAR(32) NOT NULL DEFAULT '',
	base_fare BIGINT NOT NULL DEFAULT 0,
	service_fee BIGINT NOT NULL DEFAULT 0,
	tax BIGINT NOT NULL DEFAULT 0,
	total_amount BIGINT NOT NULL DEFAULT 0,
	fare_policy VARCHAR(32) NOT NULL DEFAULT '',
	status VARCHAR(20) NOT NULL,
	cancel_reason TEXT,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	UNIQUE KEY uniq_reference (reference)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := s.DB.Exec(ddl)
	return err
}

// Insert appends one committed booking row.
func (s BookingStore) Insert(b models.Booking) error {
	seats, err := json.Marshal(b.SeatNumbers)
	if err != nil {
		return err
	}
	passengers, err := json.Marshal(b.Passengers)
	if err != nil {
		return err
	}

	_, err = s.DB.Exec(`
		INSERT INTO bookings
			(reference, bus_id, route_from, route_to, trip_date,
			 departure_time, arrival_time, bus_operator, bus_type,
			 seat_numbers, passengers, contact_email, contact_phone,
			 payment_method, base_fare, service_fee, tax, total_amount,
			 fare_policy, status, cancel_reason, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.Reference, b.BusID, b.From, b.To, b.Date,
		b.DepartureTime, b.ArrivalTime, b.BusOperator, b.BusType,
		string(seats), string(passengers), b.Contact.Email, b.Contact.Phone,
		string(b.PaymentMethod), b.BaseFare, b.ServiceFee, b.Tax, b.TotalAmount,
		b.FarePolicy, string(b.Status), b.CancelReason, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

// MarkCancelled mirrors a cancellation onto the stored row.
func (s BookingStore) MarkCancelled(reference, reason string, at time.Time) error {
	_, err := s.DB.Exec(`
		UPDATE bookings
		SET status=?, cancel_reason=?, updated_at=?
		WHERE reference=?`,
		string(models.StatusCancelled), strings.TrimSpace(reason), at, reference,
	)
	return err
}

// LoadAll reads every stored booking in insertion order.
func (s BookingStore) LoadAll() ([]models.Booking, error) {
	rows, err := s.DB.Query(`
		SELECT reference, bus_id, route_from, route_to, trip_date,
		       departure_time, arrival_time, bus_operator, bus_type,
		       seat_numbers, passengers, contact_email, contact_phone,
		       payment_method, base_fare, service_fee, tax, total_amount,
		       fare_policy, status, COALESCE(cancel_reason, ''), created_at, updated_at
		FROM bookings
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		var (
			b              models.Booking
			seats          string
			passengers     string
			method, status string
		)
		if err := rows.Scan(
			&b.Reference, &b.BusID, &b.From, &b.To, &b.Date,
			&b.DepartureTime, &b.ArrivalTime, &b.BusOperator, &b.BusType,
			&seats, &passengers, &b.Contact.Email, &b.Contact.Phone,
			&method, &b.BaseFare, &b.ServiceFee, &b.Tax, &b.TotalAmount,
			&b.FarePolicy, &status, &b.CancelReason, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(seats), &b.SeatNumbers); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(passengers), &b.Passengers); err != nil {
			return nil, err
		}
		b.PaymentMethod = models.PaymentMethod(method)
		b.Status = models.BookingStatus(status)
		out = append(out, b)
	}
	return out, rows.Err()
}
