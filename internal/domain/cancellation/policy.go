package cancellation

import (
	"sort"
	"time"

	"transfer-portal/internal/domain/booking"

	"github.com/google/uuid"
)

// Policy is one notice-period-to-refund rule. Policies form an ordered table
// of reference data; bookings never mutate them.
type Policy struct {
	ID            uuid.UUID
	Name          string
	HoursRequired float64
	RefundPercent int
}

// Result is the outcome of evaluating a cancellation request. RefundPercent
// is always one of the discrete percentages from the policy table, never
// interpolated.
type Result struct {
	CanCancel         bool
	Reason            string
	Policy            *Policy
	RefundPercent     int
	RefundCents       int64
	HoursBeforePickup float64
	IsPaid            bool
}

// Evaluate computes refund eligibility for cancelling a booking now. Among
// all policies whose notice threshold the booking still satisfies, the tier
// with the highest refund percentage wins (ties broken by the higher
// threshold). Zero or negative notice falls back to the strictest tier
// rather than erroring. Unpaid bookings always refund zero.
func Evaluate(
	policies []Policy,
	status booking.Status,
	paymentStatus booking.PaymentStatus,
	paidCents int64,
	pickupAt, now time.Time,
) Result {
	res := Result{
		HoursBeforePickup: pickupAt.Sub(now).Hours(),
		IsPaid:            paymentStatus.IsPaid(),
	}

	switch {
	case status == booking.StatusCancelled:
		res.Reason = "booking is already cancelled"
		return res
	case status == booking.StatusCompleted:
		res.Reason = "booking is already completed"
		return res
	case status == booking.StatusInProgress:
		res.Reason = "ride is in progress"
		return res
	}

	res.CanCancel = true

	selected := selectPolicy(policies, res.HoursBeforePickup)
	if selected == nil {
		// No tier satisfied and no zero-hour tier configured: cancellation is
		// still permitted, just without any refund.
		return res
	}

	res.Policy = selected
	res.RefundPercent = selected.RefundPercent
	if res.IsPaid && paidCents > 0 {
		res.RefundCents = paidCents * int64(selected.RefundPercent) / 100
	}
	return res
}

// selectPolicy picks the step of the notice -> refund step function the
// booking falls on: the highest refund among satisfied thresholds.
func selectPolicy(policies []Policy, hoursBefore float64) *Policy {
	satisfied := make([]Policy, 0, len(policies))
	for _, p := range policies {
		if hoursBefore >= p.HoursRequired {
			satisfied = append(satisfied, p)
		}
	}
	if len(satisfied) == 0 {
		// Pickup passed or imminent: the strictest tier applies.
		return strictest(policies)
	}

	sort.Slice(satisfied, func(i, j int) bool {
		if satisfied[i].RefundPercent != satisfied[j].RefundPercent {
			return satisfied[i].RefundPercent > satisfied[j].RefundPercent
		}
		return satisfied[i].HoursRequired > satisfied[j].HoursRequired
	})
	best := satisfied[0]
	return &best
}

func strictest(policies []Policy) *Policy {
	var min *Policy
	for i := range policies {
		p := policies[i]
		if p.HoursRequired > 0 {
			continue
		}
		if min == nil || p.RefundPercent < min.RefundPercent {
			min = &p
		}
	}
	return min
}
