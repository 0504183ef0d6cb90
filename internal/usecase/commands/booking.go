package commands

import (
	"context"
	"fmt"
	"time"

	"transfer-portal/internal/domain/booking"
	"transfer-portal/internal/domain/cancellation"
	"transfer-portal/internal/domain/ride"
	"transfer-portal/internal/domain/webhook"
	"transfer-portal/internal/infra"
	"transfer-portal/internal/infra/db"
	"transfer-portal/internal/infra/repository"
	"transfer-portal/internal/pkg/clock"
	"transfer-portal/internal/pkg/config"
	"transfer-portal/internal/pkg/errs"
	"transfer-portal/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrBookingNotFound         = errs.New("booking not found")
	ErrInvalidStatusChange     = errs.New("booking status change not allowed")
	ErrConcurrentUpdate        = errs.New("booking was updated concurrently")
	ErrCancellationRefused     = errs.New("cancellation not allowed")
	ErrModificationRefused     = errs.New("modification not allowed")
	ErrPaymentAlreadySettled   = errs.New("booking is already fully paid")
	ErrNonPositivePayment      = errs.New("payment amount must be positive")
	ErrPickupMustBeFuture      = errs.New("pickup time must be in the future")
	ErrCodeGenerationExhausted = errs.New("could not issue booking code")
)

// CancellationRefusedError carries the evaluator's verdict so callers can
// report why the booking cannot be cancelled.
type CancellationRefusedError struct {
	Reason string
}

func (e *CancellationRefusedError) Error() string { return e.Reason }

// ModificationWindowError reports the notice remaining against the notice
// the window requires.
type ModificationWindowError struct {
	Reason         string
	RemainingHours float64
	RequiredHours  float64
}

func (e *ModificationWindowError) Error() string {
	return fmt.Sprintf("%s (%.1f hours remaining, %.1f required)",
		e.Reason, e.RemainingHours, e.RequiredHours)
}

type CreateBookingInput struct {
	AgencyID        *uuid.UUID
	PaymentMethod   booking.PaymentMethod
	Direction       booking.Direction
	PickupAt        time.Time
	FlightNumber    string
	PickupAddress   string
	DropoffAddress  string
	LeadPassenger   string
	ContactPhone    string
	SpecialRequests string
	PriceCents      int64
	Currency        string
}

type CreateBookingResult struct {
	BookingID uuid.UUID
	RideID    uuid.UUID
	Code      string
}

type PaymentResult struct {
	PaymentStatus booking.PaymentStatus
	PaidCents     int64
	Confirmed     bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error)
	SubmitForPayment(ctx context.Context, id uuid.UUID) error
	MarkPaymentReceived(ctx context.Context, id uuid.UUID, amountCents int64) (*PaymentResult, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*cancellation.Result, error)
	ModifyBooking(ctx context.Context, id uuid.UUID, changes repository.BookingChanges) error
}

type bookingCommandsImpl struct {
	pool     *pgxpool.Pool
	bookings BookingRepository
	rides    RideRepository
	policies PolicyRepository
	codes    CodeIssuer
	events   EventEmitter
	clock    clock.Clock
	cfg      config.BookingConfig
}

func NewBookingCommands(
	pool *pgxpool.Pool,
	bookings BookingRepository,
	rides RideRepository,
	policies PolicyRepository,
	codes CodeIssuer,
	events EventEmitter,
	clk clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		pool:     pool,
		bookings: bookings,
		rides:    rides,
		policies: policies,
		codes:    codes,
		events:   events,
		clock:    clk,
		cfg:      cfg,
	}
}

// CreateBooking issues a collision-checked code, persists the booking together
// with its pending ride, and announces booking.created once the transaction
// commits.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error) {
	code, err := c.codes.Generate(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrCodeGenerationExhausted)
	}

	b, err := booking.NewBooking(booking.NewBookingParams{
		Code:            code,
		AgencyID:        in.AgencyID,
		PaymentMethod:   in.PaymentMethod,
		Direction:       in.Direction,
		PickupAt:        in.PickupAt,
		FlightNumber:    in.FlightNumber,
		PickupAddress:   in.PickupAddress,
		DropoffAddress:  in.DropoffAddress,
		LeadPassenger:   in.LeadPassenger,
		ContactPhone:    in.ContactPhone,
		SpecialRequests: in.SpecialRequests,
		PriceCents:      in.PriceCents,
		Currency:        in.Currency,
	}, c.clock.Now())
	if err != nil {
		return nil, err
	}

	rd := ride.NewRide(b.ID())

	_, err = shared.WithDefaultRetry(ctx, c.pool, func(q db.Querier) (struct{}, error) {
		if err := c.bookings.Create(ctx, q, b); err != nil {
			return struct{}{}, err
		}
		if err := c.rides.Create(ctx, q, rd); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}

	c.events.Emit(ctx, webhook.Event{
		Type:     webhook.EventBookingCreated,
		AgencyID: b.AgencyID(),
		Data:     bookingEventData(b),
	})

	return &CreateBookingResult{BookingID: b.ID(), RideID: rd.ID(), Code: b.Code().String()}, nil
}

// SubmitForPayment moves a fresh booking into AWAITING_PAYMENT.
func (c *bookingCommandsImpl) SubmitForPayment(ctx context.Context, id uuid.UUID) error {
	_, err := shared.WithDefaultRetry(ctx, c.pool, func(q db.Querier) (struct{}, error) {
		b, err := c.bookings.FindByIDForUpdate(ctx, q, id)
		if err != nil {
			return struct{}{}, markNotFound(err, ErrBookingNotFound)
		}
		if !booking.CanTransition(b.Status(), booking.StatusAwaitingPayment) {
			return struct{}{}, errs.Mark(booking.ErrInvalidTransition, ErrInvalidStatusChange)
		}
		ok, err := c.bookings.UpdateStatus(ctx, q, id, b.Status(), booking.StatusAwaitingPayment)
		if err != nil {
			return struct{}{}, err
		}
		if !ok {
			return struct{}{}, ErrConcurrentUpdate
		}
		return struct{}{}, nil
	})
	return err
}

// MarkPaymentReceived records an incoming payment. A booking that becomes
// fully paid while AWAITING_PAYMENT is confirmed in the same transaction, and
// both payment.received and booking.confirmed go out afterwards.
func (c *bookingCommandsImpl) MarkPaymentReceived(ctx context.Context, id uuid.UUID, amountCents int64) (*PaymentResult, error) {
	if amountCents <= 0 {
		return nil, ErrNonPositivePayment
	}

	type txOut struct {
		result  PaymentResult
		booking *booking.Booking
	}

	out, err := shared.WithDefaultRetry(ctx, c.pool, func(q db.Querier) (txOut, error) {
		b, err := c.bookings.FindByIDForUpdate(ctx, q, id)
		if err != nil {
			return txOut{}, markNotFound(err, ErrBookingNotFound)
		}
		if b.PaymentStatus().IsPaid() {
			return txOut{}, ErrPaymentAlreadySettled
		}
		if b.Status().IsTerminal() {
			return txOut{}, errs.Mark(booking.ErrInvalidTransition, ErrInvalidStatusChange)
		}

		newPaid := b.PaidCents() + amountCents
		paymentStatus := booking.PaymentPartiallyPaid
		if newPaid >= b.PriceCents() {
			paymentStatus = booking.PaymentPaid
		}
		if err := c.bookings.UpdatePayment(ctx, q, id, paymentStatus, newPaid); err != nil {
			return txOut{}, err
		}

		res := txOut{
			result:  PaymentResult{PaymentStatus: paymentStatus, PaidCents: newPaid},
			booking: b,
		}
		if paymentStatus == booking.PaymentPaid && b.Status() == booking.StatusAwaitingPayment {
			ok, err := c.bookings.UpdateStatus(ctx, q, id, booking.StatusAwaitingPayment, booking.StatusConfirmed)
			if err != nil {
				return txOut{}, err
			}
			res.result.Confirmed = ok
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}

	c.events.Emit(ctx, webhook.Event{
		Type:     webhook.EventPaymentReceived,
		AgencyID: out.booking.AgencyID(),
		Data: paymentEventData{
			BookingID:     out.booking.ID(),
			BookingCode:   out.booking.Code().String(),
			AmountCents:   amountCents,
			PaidCents:     out.result.PaidCents,
			PaymentStatus: out.result.PaymentStatus.String(),
			Currency:      out.booking.Currency(),
		},
	})
	if out.result.Confirmed {
		data := bookingEventData(out.booking)
		data.Status = booking.StatusConfirmed.String()
		data.PaymentStatus = booking.PaymentPaid.String()
		c.events.Emit(ctx, webhook.Event{
			Type:     webhook.EventBookingConfirmed,
			AgencyID: out.booking.AgencyID(),
			Data:     data,
		})
	}

	return &out.result, nil
}

// CancelBooking evaluates the policy table under a row lock, transitions the
// booking and its ride to CANCELLED, and applies the computed refund.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, id uuid.UUID) (*cancellation.Result, error) {
	policies, err := c.policies.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	type txOut struct {
		result  cancellation.Result
		booking *booking.Booking
		ride    *ride.Ride
	}

	out, err := shared.WithDefaultRetry(ctx, c.pool, func(q db.Querier) (txOut, error) {
		b, err := c.bookings.FindByIDForUpdate(ctx, q, id)
		if err != nil {
			return txOut{}, markNotFound(err, ErrBookingNotFound)
		}

		result := cancellation.Evaluate(
			policies, b.Status(), b.PaymentStatus(), b.PaidCents(),
			b.PickupAt(), c.clock.Now(),
		)
		if !result.CanCancel {
			return txOut{}, errs.Mark(&CancellationRefusedError{Reason: result.Reason}, ErrCancellationRefused)
		}

		ok, err := c.bookings.UpdateStatus(ctx, q, id, b.Status(), booking.StatusCancelled)
		if err != nil {
			return txOut{}, err
		}
		if !ok {
			return txOut{}, ErrConcurrentUpdate
		}

		if result.RefundCents > 0 {
			if err := c.bookings.UpdatePayment(ctx, q, id, booking.PaymentRefunded, b.PaidCents()); err != nil {
				return txOut{}, err
			}
		}

		rd, err := c.rides.FindByBookingIDForUpdate(ctx, q, id)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return txOut{}, err
		}
		if rd != nil && !rd.Status().IsTerminal() {
			if _, err := c.rides.UpdateStatus(ctx, q, rd.ID(), rd.Status(), ride.StatusCancelled); err != nil {
				return txOut{}, err
			}
		}

		return txOut{result: result, booking: b, ride: rd}, nil
	})
	if err != nil {
		return nil, err
	}

	var supplierID *uuid.UUID
	if out.ride != nil {
		supplierID = out.ride.SupplierID()
	}
	c.events.Emit(ctx, webhook.Event{
		Type:       webhook.EventBookingCancelled,
		AgencyID:   out.booking.AgencyID(),
		SupplierID: supplierID,
		Data: cancellationEventData{
			BookingID:     out.booking.ID(),
			BookingCode:   out.booking.Code().String(),
			RefundPercent: out.result.RefundPercent,
			RefundCents:   out.result.RefundCents,
			Currency:      out.booking.Currency(),
		},
	})
	if out.result.RefundCents > 0 {
		c.events.Emit(ctx, webhook.Event{
			Type:     webhook.EventPaymentRefunded,
			AgencyID: out.booking.AgencyID(),
			Data: refundEventData{
				BookingID:   out.booking.ID(),
				BookingCode: out.booking.Code().String(),
				RefundCents: out.result.RefundCents,
				Currency:    out.booking.Currency(),
			},
		})
	}

	return &out.result, nil
}

// ModifyBooking rewrites the mutable details of a booking while the
// modification window is still open.
func (c *bookingCommandsImpl) ModifyBooking(ctx context.Context, id uuid.UUID, changes repository.BookingChanges) error {
	if changes.PickupAt != nil && !changes.PickupAt.After(c.clock.Now()) {
		return ErrPickupMustBeFuture
	}

	b, err := shared.WithDefaultRetry(ctx, c.pool, func(q db.Querier) (*booking.Booking, error) {
		b, err := c.bookings.FindByIDForUpdate(ctx, q, id)
		if err != nil {
			return nil, markNotFound(err, ErrBookingNotFound)
		}
		check := b.CanModify(c.clock.Now(), c.cfg.ModificationNoticeHours)
		if !check.Allowed {
			return nil, errs.Mark(&ModificationWindowError{
				Reason:         check.Reason,
				RemainingHours: check.RemainingHours,
				RequiredHours:  check.RequiredHours,
			}, ErrModificationRefused)
		}
		if err := c.bookings.UpdateDetails(ctx, q, id, changes); err != nil {
			return nil, err
		}
		return b, nil
	})
	if err != nil {
		return err
	}

	data := bookingEventData(b)
	if changes.PickupAt != nil {
		data.PickupAt = *changes.PickupAt
	}
	c.events.Emit(ctx, webhook.Event{
		Type:     webhook.EventBookingModified,
		AgencyID: b.AgencyID(),
		Data:     data,
	})
	return nil
}

type bookingEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingCode   string    `json:"booking_code"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Direction     string    `json:"direction"`
	PickupAt      time.Time `json:"pickup_at"`
	PriceCents    int64     `json:"price_cents"`
	Currency      string    `json:"currency"`
}

type paymentEventData struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingCode   string    `json:"booking_code"`
	AmountCents   int64     `json:"amount_cents"`
	PaidCents     int64     `json:"paid_cents"`
	PaymentStatus string    `json:"payment_status"`
	Currency      string    `json:"currency"`
}

type cancellationEventData struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingCode   string    `json:"booking_code"`
	RefundPercent int       `json:"refund_percent"`
	RefundCents   int64     `json:"refund_cents"`
	Currency      string    `json:"currency"`
}

type refundEventData struct {
	BookingID   uuid.UUID `json:"booking_id"`
	BookingCode string    `json:"booking_code"`
	RefundCents int64     `json:"refund_cents"`
	Currency    string    `json:"currency"`
}

func bookingEventData(b *booking.Booking) bookingEvent {
	return bookingEvent{
		BookingID:     b.ID(),
		BookingCode:   b.Code().String(),
		Status:        b.Status().String(),
		PaymentStatus: b.PaymentStatus().String(),
		Direction:     string(b.Direction()),
		PickupAt:      b.PickupAt(),
		PriceCents:    b.PriceCents(),
		Currency:      b.Currency(),
	}
}

func markNotFound(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, sentinel)
	}
	return err
}
