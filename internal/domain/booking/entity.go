package booking

import (
	"time"

	"transfer-portal/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidDirection     = errs.New("invalid transfer direction")
	ErrInvalidPaymentMethod = errs.New("invalid payment method")
	ErrNegativePrice        = errs.New("price cannot be negative")
	ErrPickupInPast         = errs.New("pickup time is in the past")
	ErrInvalidTransition    = errs.New("invalid booking status transition")
)

// Booking is one transfer reservation. Created once per customer request,
// mutated only through status transitions, never physically deleted.
type Booking struct {
	id              uuid.UUID
	code            Code
	agencyID        *uuid.UUID
	status          Status
	paymentStatus   PaymentStatus
	paymentMethod   PaymentMethod
	direction       Direction
	pickupAt        time.Time
	flightNumber    string
	pickupAddress   string
	dropoffAddress  string
	leadPassenger   string
	contactPhone    string
	specialRequests string
	priceCents      int64
	paidCents       int64
	currency        string
	createdAt       time.Time
	updatedAt       time.Time
}

type NewBookingParams struct {
	Code            Code
	AgencyID        *uuid.UUID
	PaymentMethod   PaymentMethod
	Direction       Direction
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

func NewBooking(p NewBookingParams, now time.Time) (*Booking, error) {
	if !p.Direction.IsValid() {
		return nil, ErrInvalidDirection
	}
	if !p.PaymentMethod.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}
	if p.PriceCents < 0 {
		return nil, ErrNegativePrice
	}
	if !p.PickupAt.After(now) {
		return nil, ErrPickupInPast
	}

	return &Booking{
		id:              uuid.New(),
		code:            p.Code,
		agencyID:        p.AgencyID,
		status:          StatusPending,
		paymentStatus:   PaymentUnpaid,
		paymentMethod:   p.PaymentMethod,
		direction:       p.Direction,
		pickupAt:        p.PickupAt,
		flightNumber:    p.FlightNumber,
		pickupAddress:   p.PickupAddress,
		dropoffAddress:  p.DropoffAddress,
		leadPassenger:   p.LeadPassenger,
		contactPhone:    p.ContactPhone,
		specialRequests: p.SpecialRequests,
		priceCents:      p.PriceCents,
		paidCents:       0,
		currency:        p.Currency,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	code Code,
	agencyID *uuid.UUID,
	status Status,
	paymentStatus PaymentStatus,
	paymentMethod PaymentMethod,
	direction Direction,
	pickupAt time.Time,
	flightNumber, pickupAddress, dropoffAddress, leadPassenger, contactPhone, specialRequests string,
	priceCents, paidCents int64,
	currency string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		code:            code,
		agencyID:        agencyID,
		status:          status,
		paymentStatus:   paymentStatus,
		paymentMethod:   paymentMethod,
		direction:       direction,
		pickupAt:        pickupAt,
		flightNumber:    flightNumber,
		pickupAddress:   pickupAddress,
		dropoffAddress:  dropoffAddress,
		leadPassenger:   leadPassenger,
		contactPhone:    contactPhone,
		specialRequests: specialRequests,
		priceCents:      priceCents,
		paidCents:       paidCents,
		currency:        currency,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) Code() Code                   { return b.code }
func (b *Booking) AgencyID() *uuid.UUID         { return b.agencyID }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) PaymentMethod() PaymentMethod { return b.paymentMethod }
func (b *Booking) Direction() Direction         { return b.direction }
func (b *Booking) PickupAt() time.Time          { return b.pickupAt }
func (b *Booking) FlightNumber() string         { return b.flightNumber }
func (b *Booking) PickupAddress() string        { return b.pickupAddress }
func (b *Booking) DropoffAddress() string       { return b.dropoffAddress }
func (b *Booking) LeadPassenger() string        { return b.leadPassenger }
func (b *Booking) ContactPhone() string         { return b.contactPhone }
func (b *Booking) SpecialRequests() string      { return b.specialRequests }
func (b *Booking) PriceCents() int64            { return b.priceCents }
func (b *Booking) PaidCents() int64             { return b.paidCents }
func (b *Booking) Currency() string             { return b.currency }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }

// HoursUntilPickup can be negative once pickup has passed.
func (b *Booking) HoursUntilPickup(now time.Time) float64 {
	return b.pickupAt.Sub(now).Hours()
}

// ModificationCheck carries both the remaining and required notice so a
// caller can render an accurate refusal reason.
type ModificationCheck struct {
	Allowed        bool
	Reason         string
	RemainingHours float64
	RequiredHours  float64
}

// CanModify reports whether mutable fields may still change: the booking must
// be in a non-terminal state with at least requiredHours of notice left.
func (b *Booking) CanModify(now time.Time, requiredHours float64) ModificationCheck {
	check := ModificationCheck{
		RemainingHours: b.HoursUntilPickup(now),
		RequiredHours:  requiredHours,
	}
	if b.status.IsTerminal() {
		check.Reason = "booking is " + b.status.String()
		return check
	}
	if b.status == StatusInProgress {
		check.Reason = "ride is already in progress"
		return check
	}
	if check.RemainingHours < requiredHours {
		check.Reason = "modification window has closed"
		return check
	}
	check.Allowed = true
	return check
}
