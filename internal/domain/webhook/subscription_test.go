//go:build unit

package webhook_test

import (
	"testing"
	"time"

	"transfer-portal/internal/domain/webhook"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubscription(t *testing.T) {
	agencyID := uuid.New()
	supplierID := uuid.New()
	events := []webhook.EventType{webhook.EventBookingCreated}

	t.Run("valid subscription starts active", func(t *testing.T) {
		sub, err := webhook.NewSubscription("https://example.com/hooks", "secret", events, &agencyID, nil)
		require.NoError(t, err)
		assert.True(t, sub.IsActive())
		assert.Zero(t, sub.FailureCount())
		assert.Equal(t, &agencyID, sub.AgencyID())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name                 string
			url                  string
			events               []webhook.EventType
			agencyID, supplierID *uuid.UUID
			errIs                error
		}{
			{"bad scheme", "ftp://example.com", events, &agencyID, nil, webhook.ErrInvalidEndpoint},
			{"no host", "https://", events, &agencyID, nil, webhook.ErrInvalidEndpoint},
			{"not a url", "::::", events, &agencyID, nil, webhook.ErrInvalidEndpoint},
			{"no event types", "https://example.com", nil, &agencyID, nil, webhook.ErrNoEventTypes},
			{"unknown event type", "https://example.com", []webhook.EventType{"booking.teleported"}, &agencyID, nil, webhook.ErrUnknownEvent},
			{"no owner", "https://example.com", events, nil, nil, webhook.ErrOwnerRequired},
			{"two owners", "https://example.com", events, &agencyID, &supplierID, webhook.ErrOwnerRequired},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := webhook.NewSubscription(tc.url, "secret", tc.events, tc.agencyID, tc.supplierID)
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestMatches(t *testing.T) {
	agencyID := uuid.New()
	supplierID := uuid.New()
	otherAgency := uuid.New()

	newSub := func(events []webhook.EventType, agency, supplier *uuid.UUID) *webhook.Subscription {
		sub, err := webhook.NewSubscription("https://example.com/hooks", "secret", events, agency, supplier)
		require.NoError(t, err)
		return sub
	}

	event := webhook.Event{
		Type:       webhook.EventBookingCreated,
		AgencyID:   &agencyID,
		SupplierID: &supplierID,
		OccurredAt: time.Now(),
	}

	t.Run("matching agency subscription", func(t *testing.T) {
		sub := newSub([]webhook.EventType{webhook.EventBookingCreated}, &agencyID, nil)
		assert.True(t, sub.Matches(event))
	})

	t.Run("matching supplier subscription", func(t *testing.T) {
		sub := newSub([]webhook.EventType{webhook.EventBookingCreated}, nil, &supplierID)
		assert.True(t, sub.Matches(event))
	})

	t.Run("different agency is filtered", func(t *testing.T) {
		sub := newSub([]webhook.EventType{webhook.EventBookingCreated}, &otherAgency, nil)
		assert.False(t, sub.Matches(event))
	})

	t.Run("undeclared event type is filtered", func(t *testing.T) {
		sub := newSub([]webhook.EventType{webhook.EventRideStarted}, &agencyID, nil)
		assert.False(t, sub.Matches(event))
	})

	t.Run("inactive subscription never matches", func(t *testing.T) {
		sub := newSub([]webhook.EventType{webhook.EventBookingCreated}, &agencyID, nil)
		sub.Deactivate()
		assert.False(t, sub.Matches(event))
	})

	t.Run("event without agency scope skips agency subscriptions", func(t *testing.T) {
		sub := newSub([]webhook.EventType{webhook.EventBookingCreated}, &agencyID, nil)
		unscoped := event
		unscoped.AgencyID = nil
		assert.False(t, sub.Matches(unscoped))
	})
}

func TestFailureCircuitBreaker(t *testing.T) {
	agencyID := uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newSub := func() *webhook.Subscription {
		sub, err := webhook.NewSubscription(
			"https://example.com/hooks", "secret",
			[]webhook.EventType{webhook.EventBookingCreated}, &agencyID, nil,
		)
		require.NoError(t, err)
		return sub
	}

	t.Run("deactivates on the tenth consecutive failure", func(t *testing.T) {
		sub := newSub()
		for i := 1; i < webhook.MaxConsecutiveFailures; i++ {
			assert.False(t, sub.RecordFailure(now), "failure %d should not trip the breaker", i)
			assert.True(t, sub.IsActive())
		}
		assert.True(t, sub.RecordFailure(now))
		assert.False(t, sub.IsActive())
		assert.Equal(t, webhook.MaxConsecutiveFailures, sub.FailureCount())
	})

	t.Run("success resets the counter", func(t *testing.T) {
		sub := newSub()
		for range 9 {
			sub.RecordFailure(now)
		}
		sub.RecordSuccess(now)
		assert.Zero(t, sub.FailureCount())
		require.NotNil(t, sub.LastSuccessAt())
		assert.Equal(t, now, *sub.LastSuccessAt())

		assert.False(t, sub.RecordFailure(now))
		assert.True(t, sub.IsActive())
	})

	t.Run("reactivate clears the breaker", func(t *testing.T) {
		sub := newSub()
		for range webhook.MaxConsecutiveFailures {
			sub.RecordFailure(now)
		}
		require.False(t, sub.IsActive())

		sub.Reactivate()
		assert.True(t, sub.IsActive())
		assert.Zero(t, sub.FailureCount())
	})
}
