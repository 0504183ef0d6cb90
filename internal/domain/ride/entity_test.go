//go:build unit

package ride_test

import (
	"testing"
	"time"

	"transfer-portal/internal/domain/ride"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRideTransitions(t *testing.T) {
	cases := []struct {
		from, to ride.Status
		allowed  bool
	}{
		{ride.StatusPendingAssign, ride.StatusAssigned, true},
		{ride.StatusPendingAssign, ride.StatusOnWay, false},
		{ride.StatusPendingAssign, ride.StatusCancelled, true},
		{ride.StatusAssigned, ride.StatusOnWay, true},
		{ride.StatusAssigned, ride.StatusAtPickup, false},
		{ride.StatusAssigned, ride.StatusNoShow, true},
		{ride.StatusOnWay, ride.StatusAtPickup, true},
		{ride.StatusOnWay, ride.StatusInRide, false},
		{ride.StatusAtPickup, ride.StatusInRide, true},
		{ride.StatusAtPickup, ride.StatusNoShow, true},
		{ride.StatusInRide, ride.StatusFinished, true},
		{ride.StatusInRide, ride.StatusNoShow, false},
		{ride.StatusInRide, ride.StatusCancelled, false},
		{ride.StatusFinished, ride.StatusInRide, false},
		{ride.StatusNoShow, ride.StatusAssigned, false},
		{ride.StatusCancelled, ride.StatusAssigned, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, ride.CanTransition(tc.from, tc.to))
		})
	}
}

func TestAssignDriver(t *testing.T) {
	supplierID := uuid.New()
	driverID := uuid.New()

	t.Run("first assignment advances to ASSIGNED", func(t *testing.T) {
		r := ride.NewRide(uuid.New())
		require.Equal(t, ride.StatusPendingAssign, r.Status())

		status, err := r.AssignDriver(supplierID, driverID, nil)
		require.NoError(t, err)
		assert.Equal(t, ride.StatusAssigned, status)
		assert.Equal(t, &driverID, r.DriverID())
	})

	t.Run("reassignment keeps the current status", func(t *testing.T) {
		r := reconstructAt(ride.StatusOnWay, &supplierID, &driverID)

		newDriver := uuid.New()
		status, err := r.AssignDriver(supplierID, newDriver, nil)
		require.NoError(t, err)
		assert.Equal(t, ride.StatusOnWay, status)
		assert.Equal(t, &newDriver, r.DriverID())
	})

	t.Run("refused on a terminal ride", func(t *testing.T) {
		r := reconstructAt(ride.StatusFinished, &supplierID, &driverID)

		_, err := r.AssignDriver(supplierID, uuid.New(), nil)
		assert.ErrorIs(t, err, ride.ErrRideTerminal)
	})
}

func TestAdvance(t *testing.T) {
	supplierID := uuid.New()
	driverID := uuid.New()

	t.Run("walks the full flow", func(t *testing.T) {
		r := ride.NewRide(uuid.New())
		_, err := r.AssignDriver(supplierID, driverID, nil)
		require.NoError(t, err)

		for _, next := range []ride.Status{
			ride.StatusOnWay, ride.StatusAtPickup, ride.StatusInRide, ride.StatusFinished,
		} {
			require.NoError(t, r.Advance(next))
			assert.Equal(t, next, r.Status())
		}
	})

	t.Run("cannot skip a step", func(t *testing.T) {
		r := reconstructAt(ride.StatusAssigned, &supplierID, &driverID)
		assert.ErrorIs(t, r.Advance(ride.StatusInRide), ride.ErrInvalidTransition)
	})

	t.Run("cannot leave PENDING_ASSIGN without a driver", func(t *testing.T) {
		r := ride.NewRide(uuid.New())
		assert.ErrorIs(t, r.Advance(ride.StatusAssigned), ride.ErrNoDriverAssigned)
	})

	t.Run("no-show only before pickup", func(t *testing.T) {
		r := reconstructAt(ride.StatusAtPickup, &supplierID, &driverID)
		require.NoError(t, r.Advance(ride.StatusNoShow))

		inRide := reconstructAt(ride.StatusInRide, &supplierID, &driverID)
		assert.ErrorIs(t, inRide.Advance(ride.StatusNoShow), ride.ErrInvalidTransition)
	})
}

func reconstructAt(status ride.Status, supplierID, driverID *uuid.UUID) *ride.Ride {
	now := time.Now()
	return ride.ReconstructRide(uuid.New(), uuid.New(), supplierID, driverID, nil, status, now, now)
}
