package commands

import (
	"context"

	"transfer-portal/internal/domain/booking"
	"transfer-portal/internal/domain/cancellation"
	"transfer-portal/internal/domain/ride"
	"transfer-portal/internal/domain/webhook"
	"transfer-portal/internal/infra/db"
	"transfer-portal/internal/infra/repository"

	"github.com/google/uuid"
)

// Write-side ports. Implemented by internal/infra/repository; mocked in
// tests.

type BookingRepository interface {
	Create(ctx context.Context, q db.Querier, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByIDForUpdate(ctx context.Context, q db.Querier, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, q db.Querier, id uuid.UUID, from, to booking.Status) (bool, error)
	UpdatePayment(ctx context.Context, q db.Querier, id uuid.UUID, status booking.PaymentStatus, paidCents int64) error
	UpdateDetails(ctx context.Context, q db.Querier, id uuid.UUID, ch repository.BookingChanges) error
}

type RideRepository interface {
	Create(ctx context.Context, q db.Querier, r *ride.Ride) error
	FindByIDForUpdate(ctx context.Context, q db.Querier, id uuid.UUID) (*ride.Ride, error)
	FindByBookingIDForUpdate(ctx context.Context, q db.Querier, bookingID uuid.UUID) (*ride.Ride, error)
	UpdateStatus(ctx context.Context, q db.Querier, id uuid.UUID, from, to ride.Status) (bool, error)
	UpdateAssignment(ctx context.Context, q db.Querier, r *ride.Ride) error
}

type PolicyRepository interface {
	FindAll(ctx context.Context) ([]cancellation.Policy, error)
}

type SubscriptionRepository interface {
	Create(ctx context.Context, s *webhook.Subscription) error
	FindByID(ctx context.Context, id uuid.UUID) (*webhook.Subscription, error)
	UpdateSecret(ctx context.Context, id uuid.UUID, secret string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// EventEmitter decouples commands from the webhook dispatcher. Emit never
// blocks on delivery outcomes.
type EventEmitter interface {
	Emit(ctx context.Context, e webhook.Event)
}

// CodeIssuer issues collision-checked booking codes.
type CodeIssuer interface {
	Generate(ctx context.Context) (booking.Code, error)
}
