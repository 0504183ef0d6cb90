package repository

import (
	"context"
	"time"

	"transfer-portal/internal/domain/ride"
	"transfer-portal/internal/infra"
	"transfer-portal/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const rideColumns = `
	id, booking_id, supplier_id, driver_id, vehicle_id, status, created_at, updated_at`

type RideRepository struct {
	pool *pgxpool.Pool
}

func NewRideRepository(pool *pgxpool.Pool) *RideRepository {
	return &RideRepository{pool: pool}
}

func (r *RideRepository) Create(ctx context.Context, q db.Querier, rd *ride.Ride) error {
	_, err := q.Exec(ctx, `
		INSERT INTO rides (id, booking_id, supplier_id, driver_id, vehicle_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rd.ID(), rd.BookingID(), rd.SupplierID(), rd.DriverID(), rd.VehicleID(), rd.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create ride", err)
	}
	return nil
}

func (r *RideRepository) FindByID(ctx context.Context, id uuid.UUID) (*ride.Ride, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+rideColumns+` FROM rides WHERE id = $1`, id)
	return scanRide(row)
}

func (r *RideRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*ride.Ride, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+rideColumns+` FROM rides WHERE booking_id = $1`, bookingID)
	return scanRide(row)
}

func (r *RideRepository) FindByIDForUpdate(ctx context.Context, q db.Querier, id uuid.UUID) (*ride.Ride, error) {
	row := q.QueryRow(ctx, `SELECT `+rideColumns+` FROM rides WHERE id = $1 FOR UPDATE`, id)
	return scanRide(row)
}

func (r *RideRepository) FindByBookingIDForUpdate(ctx context.Context, q db.Querier, bookingID uuid.UUID) (*ride.Ride, error) {
	row := q.QueryRow(ctx, `SELECT `+rideColumns+` FROM rides WHERE booking_id = $1 FOR UPDATE`, bookingID)
	return scanRide(row)
}

// UpdateStatus is the atomic check-and-set on the ride's state column.
func (r *RideRepository) UpdateStatus(ctx context.Context, q db.Querier, id uuid.UUID, from, to ride.Status) (bool, error) {
	tag, err := q.Exec(ctx,
		`UPDATE rides SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		to.String(), id, from.String(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update ride status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RideRepository) UpdateAssignment(ctx context.Context, q db.Querier, rd *ride.Ride) error {
	_, err := q.Exec(ctx, `
		UPDATE rides SET supplier_id = $1, driver_id = $2, vehicle_id = $3, status = $4, updated_at = now()
		WHERE id = $5`,
		rd.SupplierID(), rd.DriverID(), rd.VehicleID(), rd.Status().String(), rd.ID(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update ride assignment", err)
	}
	return nil
}

func scanRide(row pgx.Row) (*ride.Ride, error) {
	var (
		id, bookingID                   uuid.UUID
		supplierID, driverID, vehicleID *uuid.UUID
		status                          string
		createdAt, updatedAt            time.Time
	)
	err := row.Scan(&id, &bookingID, &supplierID, &driverID, &vehicleID, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan ride", err)
	}
	return ride.ReconstructRide(id, bookingID, supplierID, driverID, vehicleID, ride.Status(status), createdAt, updatedAt), nil
}
