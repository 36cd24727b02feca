package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct{ conn *pgx.Conn }

func NewRepository(conn *pgx.Conn) *Repository {
	return &Repository{conn: conn}
}

func (r *Repository) GetBookingsForEmail(ctx context.Context, email string) ([]Booking, error) {
	sql := `
			SELECT id, service, date, "time", name, email, phone, notes, status, COALESCE("ownerEmail", '')
			FROM "hotel-booking".booking
			WHERE status <> 'cancelled'
			AND ("ownerEmail" = $1 OR (COALESCE("ownerEmail", '') = '' AND email = $1))
			ORDER BY date, "time";
		`

	rows, err := r.conn.Query(ctx, sql, email)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for '%v': %w", email, err)
	}

	defer rows.Close()

	var bookings []Booking

	for rows.Next() {
		var booking Booking
		err := rows.Scan(
			&booking.ID,
			&booking.Service,
			&booking.Date,
			&booking.Time,
			&booking.Name,
			&booking.Email,
			&booking.Phone,
			&booking.Notes,
			&booking.Status,
			&booking.OwnerEmail,
		)

		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}

		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings rows: %w", err)
	}

	return bookings, nil
}

func (r *Repository) GetBookingByID(ctx context.Context, id string) (Booking, error) {
	sql := `
			SELECT id, service, date, "time", name, email, phone, notes, status, COALESCE("ownerEmail", '')
			FROM "hotel-booking".booking
			WHERE id=$1;
		`

	var booking Booking
	err := r.conn.QueryRow(ctx, sql, id).Scan(
		&booking.ID,
		&booking.Service,
		&booking.Date,
		&booking.Time,
		&booking.Name,
		&booking.Email,
		&booking.Phone,
		&booking.Notes,
		&booking.Status,
		&booking.OwnerEmail,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, ErrBookingNotFound
	}

	if err != nil {
		return Booking{}, fmt.Errorf("failed to fetch booking with id %v: %w", id, err)
	}

	return booking, nil
}

func (r *Repository) GetBookedTimes(ctx context.Context, date string) ([]string, error) {
	sql := `
			SELECT "time" FROM "hotel-booking".booking
			WHERE date=$1 AND status <> 'cancelled';
		`

	rows, err := r.conn.Query(ctx, sql, date)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch booked times for '%v': %w", date, err)
	}

	defer rows.Close()

	var times []string

	for rows.Next() {
		var t string

		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("error scanning booked time row: %w", err)
		}

		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booked times rows: %w", err)
	}

	return times, nil
}

func (r *Repository) InsertBooking(ctx context.Context, booking Booking) (Booking, error) {
	sql := `
			INSERT INTO "hotel-booking".booking(
			id, service, date, "time", name, email, phone, notes, status, "ownerEmail")
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`

	_, err := r.conn.Exec(ctx, sql,
		booking.ID,
		booking.Service,
		booking.Date,
		booking.Time,
		booking.Name,
		booking.Email,
		booking.Phone,
		booking.Notes,
		booking.Status,
		booking.OwnerEmail,
	)

	if isUniqueViolation(err) {
		return Booking{}, ErrSlotTaken
	}

	if err != nil {
		return Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}

	return booking, nil
}

func (r *Repository) UpdateBooking(ctx context.Context, booking Booking) error {
	sql := `
			UPDATE "hotel-booking".booking
			SET
				service=$1,
				date=$2,
				"time"=$3,
				name=$4,
				email=$5,
				phone=$6,
				notes=$7
			WHERE id=$8;
		`

	tag, err := r.conn.Exec(ctx, sql,
		booking.Service,
		booking.Date,
		booking.Time,
		booking.Name,
		booking.Email,
		booking.Phone,
		booking.Notes,
		booking.ID,
	)

	if isUniqueViolation(err) {
		return ErrSlotTaken
	}

	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) SetBookingStatus(ctx context.Context, id string, status string) error {
	sql := `
			UPDATE "hotel-booking".booking
			SET status=$1
			WHERE id=$2;
		`

	tag, err := r.conn.Exec(ctx, sql, status, id)

	if err != nil {
		return fmt.Errorf("failed to update booking '%v' status: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// isUniqueViolation reports whether err is a violation of the partial
// unique index over active (date, time) slots.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
