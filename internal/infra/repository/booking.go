package repository

import (
	"context"
	"time"

	"transfer-portal/internal/domain/booking"
	"transfer-portal/internal/infra"
	"transfer-portal/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `
	id, code, agency_id, status, payment_status, payment_method, direction,
	pickup_at, flight_number, pickup_address, dropoff_address, lead_passenger,
	contact_phone, special_requests, price_cents, paid_cents, currency,
	created_at, updated_at`

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// CodeExists backs the booking code generator's collision check.
func (r *BookingRepository) CodeExists(ctx context.Context, code booking.Code) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE code = $1)`, code.String(),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking code", err)
	}
	return exists, nil
}

func (r *BookingRepository) Create(ctx context.Context, q db.Querier, b *booking.Booking) error {
	_, err := q.Exec(ctx, `
		INSERT INTO bookings (
			id, code, agency_id, status, payment_status, payment_method, direction,
			pickup_at, flight_number, pickup_address, dropoff_address, lead_passenger,
			contact_phone, special_requests, price_cents, paid_cents, currency
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		b.ID(), b.Code().String(), b.AgencyID(), b.Status().String(),
		b.PaymentStatus().String(), b.PaymentMethod(), b.Direction(),
		b.PickupAt(), b.FlightNumber(), b.PickupAddress(), b.DropoffAddress(),
		b.LeadPassenger(), b.ContactPhone(), b.SpecialRequests(),
		b.PriceCents(), b.PaidCents(), b.Currency(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	return scanBooking(row)
}

func (r *BookingRepository) FindByCode(ctx context.Context, code booking.Code) (*booking.Booking, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE code = $1`, code.String())
	return scanBooking(row)
}

// FindByIDForUpdate loads a booking under a row lock so that concurrent
// transitions against the same booking serialize.
func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, q db.Querier, id uuid.UUID) (*booking.Booking, error) {
	row := q.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
	return scanBooking(row)
}

// UpdateStatus applies a transition only if the row still holds the expected
// current status; returns false when another request won the race.
func (r *BookingRepository) UpdateStatus(ctx context.Context, q db.Querier, id uuid.UUID, from, to booking.Status) (bool, error) {
	tag, err := q.Exec(ctx,
		`UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		to.String(), id, from.String(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update booking status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepository) UpdatePayment(ctx context.Context, q db.Querier, id uuid.UUID, status booking.PaymentStatus, paidCents int64) error {
	_, err := q.Exec(ctx,
		`UPDATE bookings SET payment_status = $1, paid_cents = $2, updated_at = now() WHERE id = $3`,
		status.String(), paidCents, id,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking payment", err)
	}
	return nil
}

// BookingChanges carries the mutable fields of a modification request; nil
// pointers leave the column untouched.
type BookingChanges struct {
	PickupAt        *time.Time
	FlightNumber    *string
	PickupAddress   *string
	DropoffAddress  *string
	ContactPhone    *string
	SpecialRequests *string
}

func (r *BookingRepository) UpdateDetails(ctx context.Context, q db.Querier, id uuid.UUID, ch BookingChanges) error {
	_, err := q.Exec(ctx, `
		UPDATE bookings SET
			pickup_at        = COALESCE($1, pickup_at),
			flight_number    = COALESCE($2, flight_number),
			pickup_address   = COALESCE($3, pickup_address),
			dropoff_address  = COALESCE($4, dropoff_address),
			contact_phone    = COALESCE($5, contact_phone),
			special_requests = COALESCE($6, special_requests),
			updated_at       = now()
		WHERE id = $7`,
		ch.PickupAt, ch.FlightNumber, ch.PickupAddress, ch.DropoffAddress,
		ch.ContactPhone, ch.SpecialRequests, id,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking details", err)
	}
	return nil
}

func (r *BookingRepository) FindByAgency(ctx context.Context, agencyID uuid.UUID, limit int32) ([]*booking.Booking, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE agency_id = $1 ORDER BY created_at DESC LIMIT $2`,
		agencyID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by agency", err)
	}
	defer rows.Close()

	var bookings []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id                                       uuid.UUID
		code, status, paymentStatus              string
		paymentMethod, direction                 string
		agencyID                                 *uuid.UUID
		pickupAt, createdAt, updatedAt           time.Time
		flightNumber, pickupAddr, dropoffAddr    string
		leadPassenger, contactPhone, specialReqs string
		priceCents, paidCents                    int64
		currency                                 string
	)
	err := row.Scan(
		&id, &code, &agencyID, &status, &paymentStatus, &paymentMethod, &direction,
		&pickupAt, &flightNumber, &pickupAddr, &dropoffAddr, &leadPassenger,
		&contactPhone, &specialReqs, &priceCents, &paidCents, &currency,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan booking", err)
	}

	return booking.ReconstructBooking(
		id, booking.Code(code), agencyID,
		booking.Status(status), booking.PaymentStatus(paymentStatus),
		booking.PaymentMethod(paymentMethod), booking.Direction(direction),
		pickupAt, flightNumber, pickupAddr, dropoffAddr, leadPassenger,
		contactPhone, specialReqs, priceCents, paidCents, currency,
		createdAt, updatedAt,
	), nil
}
