package response

import (
	"transfer-portal/internal/domain/cancellation"
	"transfer-portal/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingResponse struct {
	BookingID uuid.UUID `json:"booking_id"`
	RideID    uuid.UUID `json:"ride_id"`
	Code      string    `json:"code"`
}

func FromCreateBookingResult(r *commands.CreateBookingResult) CreateBookingResponse {
	return CreateBookingResponse{
		BookingID: r.BookingID,
		RideID:    r.RideID,
		Code:      r.Code,
	}
}

type PaymentResponse struct {
	PaymentStatus string `json:"payment_status"`
	PaidCents     int64  `json:"paid_cents"`
	Confirmed     bool   `json:"confirmed"`
}

func FromPaymentResult(r *commands.PaymentResult) PaymentResponse {
	return PaymentResponse{
		PaymentStatus: r.PaymentStatus.String(),
		PaidCents:     r.PaidCents,
		Confirmed:     r.Confirmed,
	}
}

type CancellationResponse struct {
	Cancelled         bool    `json:"cancelled"`
	PolicyName        string  `json:"policy_name,omitempty"`
	RefundPercent     int     `json:"refund_percent"`
	RefundCents       int64   `json:"refund_cents"`
	HoursBeforePickup float64 `json:"hours_before_pickup"`
}

func FromCancellationResult(r *cancellation.Result) CancellationResponse {
	resp := CancellationResponse{
		Cancelled:         true,
		RefundPercent:     r.RefundPercent,
		RefundCents:       r.RefundCents,
		HoursBeforePickup: r.HoursBeforePickup,
	}
	if r.Policy != nil {
		resp.PolicyName = r.Policy.Name
	}
	return resp
}
