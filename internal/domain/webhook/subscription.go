package webhook

import (
	"net/url"
	"time"

	"transfer-portal/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidEndpoint = errs.New("invalid endpoint URL")
	ErrNoEventTypes    = errs.New("subscription declares no event types")
	ErrUnknownEvent    = errs.New("unknown event type")
	ErrOwnerRequired   = errs.New("subscription needs exactly one owner")
)

// MaxConsecutiveFailures is the circuit-breaker threshold: a subscription
// failing this many deliveries in a row is deactivated until manually
// reactivated.
const MaxConsecutiveFailures = 10

// Subscription is a registered endpoint for signed event notifications,
// owned by exactly one agency or supplier.
type Subscription struct {
	id            uuid.UUID
	url           string
	secret        string
	eventTypes    []EventType
	agencyID      *uuid.UUID
	supplierID    *uuid.UUID
	isActive      bool
	failureCount  int
	lastSuccessAt *time.Time
	lastFailureAt *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewSubscription(endpoint string, secret string, eventTypes []EventType, agencyID, supplierID *uuid.UUID) (*Subscription, error) {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidEndpoint
	}
	if len(eventTypes) == 0 {
		return nil, ErrNoEventTypes
	}
	for _, t := range eventTypes {
		if !t.IsValid() {
			return nil, ErrUnknownEvent
		}
	}
	// Agency and supplier ownership are mutually exclusive.
	if (agencyID == nil) == (supplierID == nil) {
		return nil, ErrOwnerRequired
	}

	return &Subscription{
		id:         uuid.New(),
		url:        endpoint,
		secret:     secret,
		eventTypes: eventTypes,
		agencyID:   agencyID,
		supplierID: supplierID,
		isActive:   true,
	}, nil
}

func ReconstructSubscription(
	id uuid.UUID,
	endpoint, secret string,
	eventTypes []EventType,
	agencyID, supplierID *uuid.UUID,
	isActive bool,
	failureCount int,
	lastSuccessAt, lastFailureAt *time.Time,
	createdAt, updatedAt time.Time,
) *Subscription {
	return &Subscription{
		id:            id,
		url:           endpoint,
		secret:        secret,
		eventTypes:    eventTypes,
		agencyID:      agencyID,
		supplierID:    supplierID,
		isActive:      isActive,
		failureCount:  failureCount,
		lastSuccessAt: lastSuccessAt,
		lastFailureAt: lastFailureAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (s *Subscription) ID() uuid.UUID             { return s.id }
func (s *Subscription) URL() string               { return s.url }
func (s *Subscription) Secret() string            { return s.secret }
func (s *Subscription) EventTypes() []EventType   { return s.eventTypes }
func (s *Subscription) AgencyID() *uuid.UUID      { return s.agencyID }
func (s *Subscription) SupplierID() *uuid.UUID    { return s.supplierID }
func (s *Subscription) IsActive() bool            { return s.isActive }
func (s *Subscription) FailureCount() int         { return s.failureCount }
func (s *Subscription) LastSuccessAt() *time.Time { return s.lastSuccessAt }
func (s *Subscription) LastFailureAt() *time.Time { return s.lastFailureAt }
func (s *Subscription) CreatedAt() time.Time      { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time      { return s.updatedAt }

// WantsEvent is the server-side containment filter applied before any
// network call.
func (s *Subscription) WantsEvent(t EventType) bool {
	for _, et := range s.eventTypes {
		if et == t {
			return true
		}
	}
	return false
}

// Matches reports whether this subscription should receive the event: it
// must be active, declare the event type, and be owned by one of the parties
// the event is scoped to.
func (s *Subscription) Matches(e Event) bool {
	if !s.isActive || !s.WantsEvent(e.Type) {
		return false
	}
	if s.agencyID != nil {
		return e.AgencyID != nil && *e.AgencyID == *s.agencyID
	}
	if s.supplierID != nil {
		return e.SupplierID != nil && *e.SupplierID == *s.supplierID
	}
	return false
}

// RecordSuccess resets the consecutive-failure counter.
func (s *Subscription) RecordSuccess(now time.Time) {
	s.failureCount = 0
	s.lastSuccessAt = &now
}

// RecordFailure increments the counter and reports whether the subscription
// crossed the threshold and must be deactivated.
func (s *Subscription) RecordFailure(now time.Time) (deactivated bool) {
	s.failureCount++
	s.lastFailureAt = &now
	if s.failureCount >= MaxConsecutiveFailures {
		s.isActive = false
		return true
	}
	return false
}

// Reactivate re-enables deliveries and resets the failure counter to zero.
func (s *Subscription) Reactivate() {
	s.isActive = true
	s.failureCount = 0
}

func (s *Subscription) Deactivate() {
	s.isActive = false
}

// RotateSecret replaces the shared secret; old signatures become invalid
// immediately.
func (s *Subscription) RotateSecret(secret string) {
	s.secret = secret
}
