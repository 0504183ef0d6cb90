package commands

import (
	"context"

	"transfer-portal/internal/domain/booking"
	"transfer-portal/internal/domain/ride"
	"transfer-portal/internal/domain/webhook"
	"transfer-portal/internal/infra/db"
	"transfer-portal/internal/pkg/errs"
	"transfer-portal/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrRideNotFound       = errs.New("ride not found")
	ErrRideNotProgressing = errs.New("ride status change not allowed")
)

type AssignDriverInput struct {
	RideID     uuid.UUID
	SupplierID uuid.UUID
	DriverID   uuid.UUID
	VehicleID  *uuid.UUID
}

type RideCommands interface {
	AssignDriver(ctx context.Context, in AssignDriverInput) error
	AdvanceRide(ctx context.Context, rideID uuid.UUID, to ride.Status) error
}

type rideCommandsImpl struct {
	pool     *pgxpool.Pool
	rides    RideRepository
	bookings BookingRepository
	events   EventEmitter
}

func NewRideCommands(
	pool *pgxpool.Pool,
	rides RideRepository,
	bookings BookingRepository,
	events EventEmitter,
) RideCommands {
	return &rideCommandsImpl{
		pool:     pool,
		rides:    rides,
		bookings: bookings,
		events:   events,
	}
}

// AssignDriver attaches the supplier's driver to a ride. A first assignment
// advances the booking to ASSIGNED and announces booking.assigned; a
// reassignment only swaps the driver references.
func (c *rideCommandsImpl) AssignDriver(ctx context.Context, in AssignDriverInput) error {
	type txOut struct {
		firstAssignment bool
		booking         *booking.Booking
	}

	out, err := shared.WithDefaultRetry(ctx, c.pool, func(q db.Querier) (txOut, error) {
		rd, err := c.rides.FindByIDForUpdate(ctx, q, in.RideID)
		if err != nil {
			return txOut{}, markNotFound(err, ErrRideNotFound)
		}

		before := rd.Status()
		if _, err := rd.AssignDriver(in.SupplierID, in.DriverID, in.VehicleID); err != nil {
			return txOut{}, errs.Mark(err, ErrRideNotProgressing)
		}
		if err := c.rides.UpdateAssignment(ctx, q, rd); err != nil {
			return txOut{}, err
		}

		res := txOut{firstAssignment: before == ride.StatusPendingAssign}
		if !res.firstAssignment {
			return res, nil
		}

		b, err := c.bookings.FindByIDForUpdate(ctx, q, rd.BookingID())
		if err != nil {
			return txOut{}, markNotFound(err, ErrBookingNotFound)
		}
		if !booking.CanTransition(b.Status(), booking.StatusAssigned) {
			return txOut{}, errs.Mark(booking.ErrInvalidTransition, ErrInvalidStatusChange)
		}
		ok, err := c.bookings.UpdateStatus(ctx, q, b.ID(), b.Status(), booking.StatusAssigned)
		if err != nil {
			return txOut{}, err
		}
		if !ok {
			return txOut{}, ErrConcurrentUpdate
		}
		res.booking = b
		return res, nil
	})
	if err != nil {
		return err
	}

	if out.firstAssignment {
		c.events.Emit(ctx, webhook.Event{
			Type:       webhook.EventBookingAssigned,
			AgencyID:   out.booking.AgencyID(),
			SupplierID: &in.SupplierID,
			Data: assignmentEventData{
				BookingID:   out.booking.ID(),
				BookingCode: out.booking.Code().String(),
				RideID:      in.RideID,
				SupplierID:  in.SupplierID,
				DriverID:    in.DriverID,
				VehicleID:   in.VehicleID,
			},
		})
	}
	return nil
}

// AdvanceRide moves a ride one step along its operational flow and keeps the
// booking in lockstep: IN_RIDE starts the booking, FINISHED completes it, and
// NO_SHOW cancels it.
func (c *rideCommandsImpl) AdvanceRide(ctx context.Context, rideID uuid.UUID, to ride.Status) error {
	type txOut struct {
		ride    *ride.Ride
		booking *booking.Booking
	}

	out, err := shared.WithDefaultRetry(ctx, c.pool, func(q db.Querier) (txOut, error) {
		rd, err := c.rides.FindByIDForUpdate(ctx, q, rideID)
		if err != nil {
			return txOut{}, markNotFound(err, ErrRideNotFound)
		}

		before := rd.Status()
		if err := rd.Advance(to); err != nil {
			return txOut{}, errs.Mark(err, ErrRideNotProgressing)
		}
		ok, err := c.rides.UpdateStatus(ctx, q, rideID, before, to)
		if err != nil {
			return txOut{}, err
		}
		if !ok {
			return txOut{}, ErrConcurrentUpdate
		}

		res := txOut{ride: rd}
		bookingTarget, tracked := bookingStatusFor(to)
		if !tracked {
			return res, nil
		}

		b, err := c.bookings.FindByIDForUpdate(ctx, q, rd.BookingID())
		if err != nil {
			return txOut{}, markNotFound(err, ErrBookingNotFound)
		}
		res.booking = b
		if !booking.CanTransition(b.Status(), bookingTarget) {
			return txOut{}, errs.Mark(booking.ErrInvalidTransition, ErrInvalidStatusChange)
		}
		ok, err = c.bookings.UpdateStatus(ctx, q, b.ID(), b.Status(), bookingTarget)
		if err != nil {
			return txOut{}, err
		}
		if !ok {
			return txOut{}, ErrConcurrentUpdate
		}
		return res, nil
	})
	if err != nil {
		return err
	}

	eventType, notify := rideEventFor(to)
	if !notify {
		return nil
	}

	var agencyID *uuid.UUID
	if out.booking != nil {
		agencyID = out.booking.AgencyID()
	}
	data := rideEventData{
		RideID:    out.ride.ID(),
		BookingID: out.ride.BookingID(),
		Status:    to.String(),
	}
	if out.booking != nil {
		data.BookingCode = out.booking.Code().String()
	}
	c.events.Emit(ctx, webhook.Event{
		Type:       eventType,
		AgencyID:   agencyID,
		SupplierID: out.ride.SupplierID(),
		Data:       data,
	})
	return nil
}

// bookingStatusFor maps ride milestones to the booking status that must move
// with them.
func bookingStatusFor(to ride.Status) (booking.Status, bool) {
	switch to {
	case ride.StatusInRide:
		return booking.StatusInProgress, true
	case ride.StatusFinished:
		return booking.StatusCompleted, true
	case ride.StatusNoShow:
		return booking.StatusCancelled, true
	default:
		return "", false
	}
}

func rideEventFor(to ride.Status) (webhook.EventType, bool) {
	switch to {
	case ride.StatusInRide:
		return webhook.EventRideStarted, true
	case ride.StatusFinished:
		return webhook.EventRideCompleted, true
	case ride.StatusNoShow:
		return webhook.EventRideNoShow, true
	default:
		return "", false
	}
}

type assignmentEventData struct {
	BookingID   uuid.UUID  `json:"booking_id"`
	BookingCode string     `json:"booking_code"`
	RideID      uuid.UUID  `json:"ride_id"`
	SupplierID  uuid.UUID  `json:"supplier_id"`
	DriverID    uuid.UUID  `json:"driver_id"`
	VehicleID   *uuid.UUID `json:"vehicle_id,omitempty"`
}

type rideEventData struct {
	RideID      uuid.UUID `json:"ride_id"`
	BookingID   uuid.UUID `json:"booking_id"`
	BookingCode string    `json:"booking_code,omitempty"`
	Status      string    `json:"status"`
}
