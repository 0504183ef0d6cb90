package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID              uuid.UUID  `json:"id"`
	Code            string     `json:"code"`
	CodeDisplay     string     `json:"code_display"`
	AgencyID        *uuid.UUID `json:"agency_id,omitempty"`
	Status          string     `json:"status"`
	PaymentStatus   string     `json:"payment_status"`
	PaymentMethod   string     `json:"payment_method"`
	Direction       string     `json:"direction"`
	PickupAt        time.Time  `json:"pickup_at"`
	FlightNumber    string     `json:"flight_number,omitempty"`
	PickupAddress   string     `json:"pickup_address"`
	DropoffAddress  string     `json:"dropoff_address"`
	LeadPassenger   string     `json:"lead_passenger"`
	ContactPhone    string     `json:"contact_phone,omitempty"`
	SpecialRequests string     `json:"special_requests,omitempty"`
	PriceCents      int64      `json:"price_cents"`
	PaidCents       int64      `json:"paid_cents"`
	Currency        string     `json:"currency"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type RideView struct {
	ID         uuid.UUID  `json:"id"`
	BookingID  uuid.UUID  `json:"booking_id"`
	SupplierID *uuid.UUID `json:"supplier_id,omitempty"`
	DriverID   *uuid.UUID `json:"driver_id,omitempty"`
	VehicleID  *uuid.UUID `json:"vehicle_id,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CancellationQuoteView answers "what would cancelling right now cost"
// without touching the booking.
type CancellationQuoteView struct {
	CanCancel         bool    `json:"can_cancel"`
	Reason            string  `json:"reason,omitempty"`
	PolicyName        string  `json:"policy_name,omitempty"`
	RefundPercent     int     `json:"refund_percent"`
	RefundCents       int64   `json:"refund_cents"`
	HoursBeforePickup float64 `json:"hours_before_pickup"`
}

type SubscriptionView struct {
	ID            uuid.UUID  `json:"id"`
	URL           string     `json:"url"`
	EventTypes    []string   `json:"event_types"`
	AgencyID      *uuid.UUID `json:"agency_id,omitempty"`
	SupplierID    *uuid.UUID `json:"supplier_id,omitempty"`
	IsActive      bool       `json:"is_active"`
	FailureCount  int        `json:"failure_count"`
	LastSuccessAt *time.Time `json:"last_success_at,omitempty"`
	LastFailureAt *time.Time `json:"last_failure_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type DeliveryView struct {
	ID             uuid.UUID  `json:"id"`
	SubscriptionID uuid.UUID  `json:"subscription_id"`
	EventType      string     `json:"event_type"`
	ResponseStatus *int       `json:"response_status,omitempty"`
	ResponseBody   *string    `json:"response_body,omitempty"`
	Attempt        int        `json:"attempt"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	IsActive  bool       `json:"is_active"`
}
