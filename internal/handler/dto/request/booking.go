package request

import (
	"strings"
	"time"

	"transfer-portal/internal/domain/booking"
	"transfer-portal/internal/infra/repository"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	AgencyID        *uuid.UUID `json:"agency_id,omitempty"`
	PaymentMethod   string     `json:"payment_method" binding:"required"`
	Direction       string     `json:"direction" binding:"required"`
	PickupAt        time.Time  `json:"pickup_at" binding:"required"`
	FlightNumber    string     `json:"flight_number,omitempty"`
	PickupAddress   string     `json:"pickup_address" binding:"required"`
	DropoffAddress  string     `json:"dropoff_address" binding:"required"`
	LeadPassenger   string     `json:"lead_passenger" binding:"required"`
	ContactPhone    string     `json:"contact_phone,omitempty"`
	SpecialRequests string     `json:"special_requests,omitempty"`
	PriceCents      int64      `json:"price_cents" binding:"required"`
	Currency        string     `json:"currency" binding:"required,len=3"`
}

func (r CreateBookingRequest) PaymentMethodDomain() booking.PaymentMethod {
	return booking.PaymentMethod(strings.ToUpper(r.PaymentMethod))
}

func (r CreateBookingRequest) DirectionDomain() booking.Direction {
	return booking.Direction(strings.ToUpper(r.Direction))
}

type ModifyBookingRequest struct {
	PickupAt        *time.Time `json:"pickup_at,omitempty"`
	FlightNumber    *string    `json:"flight_number,omitempty"`
	PickupAddress   *string    `json:"pickup_address,omitempty"`
	DropoffAddress  *string    `json:"dropoff_address,omitempty"`
	ContactPhone    *string    `json:"contact_phone,omitempty"`
	SpecialRequests *string    `json:"special_requests,omitempty"`
}

func (r ModifyBookingRequest) ToChanges() repository.BookingChanges {
	return repository.BookingChanges{
		PickupAt:        r.PickupAt,
		FlightNumber:    trimmed(r.FlightNumber),
		PickupAddress:   trimmed(r.PickupAddress),
		DropoffAddress:  trimmed(r.DropoffAddress),
		ContactPhone:    trimmed(r.ContactPhone),
		SpecialRequests: trimmed(r.SpecialRequests),
	}
}

func (r ModifyBookingRequest) IsEmpty() bool {
	return r.PickupAt == nil && r.FlightNumber == nil && r.PickupAddress == nil &&
		r.DropoffAddress == nil && r.ContactPhone == nil && r.SpecialRequests == nil
}

type RecordPaymentRequest struct {
	AmountCents int64 `json:"amount_cents" binding:"required,gt=0"`
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
