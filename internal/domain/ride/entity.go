package ride

import (
	"time"

	"transfer-portal/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errs.New("invalid ride status transition")
	ErrNoDriverAssigned  = errs.New("ride has no driver assigned")
	ErrRideTerminal      = errs.New("ride is in a terminal state")
)

// Ride is the dispatch counterpart to a booking, owned by a supplier once
// assigned. Exists in 1:1 correspondence with a booking past creation.
type Ride struct {
	id         uuid.UUID
	bookingID  uuid.UUID
	supplierID *uuid.UUID
	driverID   *uuid.UUID
	vehicleID  *uuid.UUID
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func NewRide(bookingID uuid.UUID) *Ride {
	return &Ride{
		id:        uuid.New(),
		bookingID: bookingID,
		status:    StatusPendingAssign,
	}
}

func ReconstructRide(
	id, bookingID uuid.UUID,
	supplierID, driverID, vehicleID *uuid.UUID,
	status Status,
	createdAt, updatedAt time.Time,
) *Ride {
	return &Ride{
		id:         id,
		bookingID:  bookingID,
		supplierID: supplierID,
		driverID:   driverID,
		vehicleID:  vehicleID,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (r *Ride) ID() uuid.UUID          { return r.id }
func (r *Ride) BookingID() uuid.UUID   { return r.bookingID }
func (r *Ride) SupplierID() *uuid.UUID { return r.supplierID }
func (r *Ride) DriverID() *uuid.UUID   { return r.driverID }
func (r *Ride) VehicleID() *uuid.UUID  { return r.vehicleID }
func (r *Ride) Status() Status         { return r.status }
func (r *Ride) CreatedAt() time.Time   { return r.createdAt }
func (r *Ride) UpdatedAt() time.Time   { return r.updatedAt }

// AssignDriver attaches (or replaces) the driver and optional vehicle. On
// first assignment the ride advances PENDING_ASSIGN -> ASSIGNED; reassignment
// at any later pre-terminal state only swaps the references and never
// advances the status.
func (r *Ride) AssignDriver(supplierID, driverID uuid.UUID, vehicleID *uuid.UUID) (Status, error) {
	if r.status.IsTerminal() {
		return r.status, ErrRideTerminal
	}

	r.supplierID = &supplierID
	r.driverID = &driverID
	r.vehicleID = vehicleID

	if r.status == StatusPendingAssign {
		r.status = StatusAssigned
	}
	return r.status, nil
}

// Advance moves the ride to the requested status after validating the
// adjacency table. Leaving PENDING_ASSIGN additionally requires a driver.
func (r *Ride) Advance(to Status) error {
	if !CanTransition(r.status, to) {
		return ErrInvalidTransition
	}
	if r.status == StatusPendingAssign && to == StatusAssigned && r.driverID == nil {
		return ErrNoDriverAssigned
	}
	r.status = to
	return nil
}
