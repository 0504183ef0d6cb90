//go:build unit

package booking_test

import (
	"testing"
	"time"

	"transfer-portal/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams(pickupAt time.Time) booking.NewBookingParams {
	return booking.NewBookingParams{
		Code:           booking.Code("ATPQ5CHM5"),
		PaymentMethod:  booking.PayCard,
		Direction:      booking.FromAirport,
		PickupAt:       pickupAt,
		PickupAddress:  "Terminal 2, Arrivals",
		DropoffAddress: "12 Harbour St",
		LeadPassenger:  "A. Traveller",
		PriceCents:     15000,
		Currency:       "EUR",
	}
}

func TestNewBooking(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("starts pending and unpaid", func(t *testing.T) {
		b, err := booking.NewBooking(validParams(now.Add(48*time.Hour)), now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, booking.PaymentUnpaid, b.PaymentStatus())
		assert.Zero(t, b.PaidCents())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(p *booking.NewBookingParams)
			errIs  error
		}{
			{
				name:   "unknown direction",
				mutate: func(p *booking.NewBookingParams) { p.Direction = "SIDEWAYS" },
				errIs:  booking.ErrInvalidDirection,
			},
			{
				name:   "unknown payment method",
				mutate: func(p *booking.NewBookingParams) { p.PaymentMethod = "BARTER" },
				errIs:  booking.ErrInvalidPaymentMethod,
			},
			{
				name:   "negative price",
				mutate: func(p *booking.NewBookingParams) { p.PriceCents = -1 },
				errIs:  booking.ErrNegativePrice,
			},
			{
				name:   "pickup in the past",
				mutate: func(p *booking.NewBookingParams) { p.PickupAt = now.Add(-time.Hour) },
				errIs:  booking.ErrPickupInPast,
			},
			{
				name:   "pickup exactly now",
				mutate: func(p *booking.NewBookingParams) { p.PickupAt = now },
				errIs:  booking.ErrPickupInPast,
			},
			{
				name:   "zero price is allowed",
				mutate: func(p *booking.NewBookingParams) { p.PriceCents = 0 },
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				p := validParams(now.Add(48 * time.Hour))
				tc.mutate(&p)
				_, err := booking.NewBooking(p, now)
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to booking.Status
		allowed  bool
	}{
		{booking.StatusPending, booking.StatusAwaitingPayment, true},
		{booking.StatusPending, booking.StatusCancelled, true},
		{booking.StatusPending, booking.StatusConfirmed, false},
		{booking.StatusAwaitingPayment, booking.StatusConfirmed, true},
		{booking.StatusAwaitingPayment, booking.StatusCancelled, true},
		{booking.StatusConfirmed, booking.StatusAssigned, true},
		{booking.StatusConfirmed, booking.StatusInProgress, false},
		{booking.StatusAssigned, booking.StatusInProgress, true},
		{booking.StatusAssigned, booking.StatusCancelled, true},
		{booking.StatusInProgress, booking.StatusCompleted, true},
		{booking.StatusInProgress, booking.StatusCancelled, false},
		{booking.StatusCompleted, booking.StatusCancelled, false},
		{booking.StatusCancelled, booking.StatusPending, false},
		{booking.StatusCompleted, booking.StatusPending, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, booking.CanTransition(tc.from, tc.to))
		})
	}

	t.Run("terminal states", func(t *testing.T) {
		assert.True(t, booking.StatusCompleted.IsTerminal())
		assert.True(t, booking.StatusCancelled.IsTerminal())
		assert.False(t, booking.StatusInProgress.IsTerminal())
		assert.False(t, booking.StatusPending.IsTerminal())
	})
}

func TestCanModify(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	const requiredHours = 4

	build := func(status booking.Status, pickupAt time.Time) *booking.Booking {
		return booking.ReconstructBooking(
			uuid.New(), booking.Code("ATPQ5CHM5"), nil,
			status, booking.PaymentPaid, booking.PayCard, booking.FromAirport,
			pickupAt, "", "Terminal 2", "12 Harbour St", "A. Traveller",
			"", "", 15000, 15000, "EUR",
			now.Add(-24*time.Hour), now.Add(-24*time.Hour),
		)
	}

	t.Run("allowed with enough notice", func(t *testing.T) {
		check := build(booking.StatusConfirmed, now.Add(10*time.Hour)).CanModify(now, requiredHours)
		assert.True(t, check.Allowed)
		assert.InDelta(t, 10.0, check.RemainingHours, 0.01)
	})

	t.Run("refused inside the window", func(t *testing.T) {
		check := build(booking.StatusConfirmed, now.Add(2*time.Hour)).CanModify(now, requiredHours)
		assert.False(t, check.Allowed)
		assert.NotEmpty(t, check.Reason)
	})

	t.Run("refused at the exact boundary minus a second", func(t *testing.T) {
		check := build(booking.StatusConfirmed, now.Add(4*time.Hour-time.Second)).CanModify(now, requiredHours)
		assert.False(t, check.Allowed)
	})

	t.Run("allowed at the exact boundary", func(t *testing.T) {
		check := build(booking.StatusConfirmed, now.Add(4*time.Hour)).CanModify(now, requiredHours)
		assert.True(t, check.Allowed)
	})

	t.Run("refused when terminal", func(t *testing.T) {
		check := build(booking.StatusCancelled, now.Add(10*time.Hour)).CanModify(now, requiredHours)
		assert.False(t, check.Allowed)
	})

	t.Run("refused while in progress", func(t *testing.T) {
		check := build(booking.StatusInProgress, now.Add(10*time.Hour)).CanModify(now, requiredHours)
		assert.False(t, check.Allowed)
		assert.Equal(t, "ride is already in progress", check.Reason)
	})
}
