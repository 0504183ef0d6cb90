package queries

import (
	"context"

	"transfer-portal/internal/domain/booking"
	"transfer-portal/internal/domain/cancellation"
	"transfer-portal/internal/domain/ride"
	"transfer-portal/internal/infra"
	"transfer-portal/internal/pkg/clock"
	"transfer-portal/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrRideNotFound    = errs.New("ride not found")
)

type BookingReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByCode(ctx context.Context, code booking.Code) (*booking.Booking, error)
	FindByAgency(ctx context.Context, agencyID uuid.UUID, limit int32) ([]*booking.Booking, error)
}

type RideReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ride.Ride, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*ride.Ride, error)
}

type PolicyReader interface {
	FindAll(ctx context.Context) ([]cancellation.Policy, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	GetByCode(ctx context.Context, code string) (*BookingView, error)
	ListByAgency(ctx context.Context, agencyID uuid.UUID, limit int) ([]*BookingView, error)
	GetRide(ctx context.Context, bookingID uuid.UUID) (*RideView, error)
	QuoteCancellation(ctx context.Context, id uuid.UUID) (*CancellationQuoteView, error)
}

type bookingQueriesImpl struct {
	bookings BookingReader
	rides    RideReader
	policies PolicyReader
	clock    clock.Clock
}

func NewBookingQueries(bookings BookingReader, rides RideReader, policies PolicyReader, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, rides: rides, policies: policies, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	b, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return BookingToView(b), nil
}

func (q *bookingQueriesImpl) GetByCode(ctx context.Context, code string) (*BookingView, error) {
	b, err := q.bookings.FindByCode(ctx, booking.ParseCode(code))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return BookingToView(b), nil
}

func (q *bookingQueriesImpl) ListByAgency(ctx context.Context, agencyID uuid.UUID, limit int) ([]*BookingView, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	bookings, err := q.bookings.FindByAgency(ctx, agencyID, int32(limit))
	if err != nil {
		return nil, err
	}
	views := make([]*BookingView, len(bookings))
	for i, b := range bookings {
		views[i] = BookingToView(b)
	}
	return views, nil
}

func (q *bookingQueriesImpl) GetRide(ctx context.Context, bookingID uuid.UUID) (*RideView, error) {
	r, err := q.rides.FindByBookingID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, err
	}
	return RideToView(r), nil
}

// QuoteCancellation runs the policy evaluator read-only so callers can show
// the refund before committing.
func (q *bookingQueriesImpl) QuoteCancellation(ctx context.Context, id uuid.UUID) (*CancellationQuoteView, error) {
	b, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	policies, err := q.policies.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := cancellation.Evaluate(
		policies, b.Status(), b.PaymentStatus(), b.PaidCents(),
		b.PickupAt(), q.clock.Now(),
	)
	view := &CancellationQuoteView{
		CanCancel:         result.CanCancel,
		Reason:            result.Reason,
		RefundPercent:     result.RefundPercent,
		RefundCents:       result.RefundCents,
		HoursBeforePickup: result.HoursBeforePickup,
	}
	if result.Policy != nil {
		view.PolicyName = result.Policy.Name
	}
	return view, nil
}

func BookingToView(b *booking.Booking) *BookingView {
	return &BookingView{
		ID:              b.ID(),
		Code:            b.Code().String(),
		CodeDisplay:     b.Code().Format(),
		AgencyID:        b.AgencyID(),
		Status:          b.Status().String(),
		PaymentStatus:   b.PaymentStatus().String(),
		PaymentMethod:   string(b.PaymentMethod()),
		Direction:       string(b.Direction()),
		PickupAt:        b.PickupAt(),
		FlightNumber:    b.FlightNumber(),
		PickupAddress:   b.PickupAddress(),
		DropoffAddress:  b.DropoffAddress(),
		LeadPassenger:   b.LeadPassenger(),
		ContactPhone:    b.ContactPhone(),
		SpecialRequests: b.SpecialRequests(),
		PriceCents:      b.PriceCents(),
		PaidCents:       b.PaidCents(),
		Currency:        b.Currency(),
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	}
}

func RideToView(r *ride.Ride) *RideView {
	return &RideView{
		ID:         r.ID(),
		BookingID:  r.BookingID(),
		SupplierID: r.SupplierID(),
		DriverID:   r.DriverID(),
		VehicleID:  r.VehicleID(),
		Status:     r.Status().String(),
		CreatedAt:  r.CreatedAt(),
		UpdatedAt:  r.UpdatedAt(),
	}
}
