package api

import (
	"errors"

	"transfer-portal/internal/domain/booking"
	"transfer-portal/internal/domain/webhook"
)

// isDomainValidationError covers entity constructor failures that map to 422
// rather than 500.
func isDomainValidationError(err error) bool {
	return errors.Is(err, booking.ErrInvalidDirection) ||
		errors.Is(err, booking.ErrInvalidPaymentMethod) ||
		errors.Is(err, booking.ErrNegativePrice) ||
		errors.Is(err, booking.ErrPickupInPast) ||
		errors.Is(err, webhook.ErrInvalidEndpoint) ||
		errors.Is(err, webhook.ErrNoEventTypes) ||
		errors.Is(err, webhook.ErrUnknownEvent) ||
		errors.Is(err, webhook.ErrOwnerRequired)
}
