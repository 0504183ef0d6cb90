package webhook

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
	EventBookingModified  EventType = "booking.modified"
	EventBookingAssigned  EventType = "booking.assigned"
	EventRideStarted      EventType = "ride.started"
	EventRideCompleted    EventType = "ride.completed"
	EventRideNoShow       EventType = "ride.no_show"
	EventPaymentReceived  EventType = "payment.received"
	EventPaymentRefunded  EventType = "payment.refunded"
)

func (t EventType) String() string {
	return string(t)
}

func (t EventType) IsValid() bool {
	switch t {
	case EventBookingCreated, EventBookingConfirmed, EventBookingCancelled,
		EventBookingModified, EventBookingAssigned,
		EventRideStarted, EventRideCompleted, EventRideNoShow,
		EventPaymentReceived, EventPaymentRefunded:
		return true
	default:
		return false
	}
}

// AllEventTypes lists every event a subscription may declare.
func AllEventTypes() []EventType {
	return []EventType{
		EventBookingCreated, EventBookingConfirmed, EventBookingCancelled,
		EventBookingModified, EventBookingAssigned,
		EventRideStarted, EventRideCompleted, EventRideNoShow,
		EventPaymentReceived, EventPaymentRefunded,
	}
}

// Event is one lifecycle notification before fan-out. Scope limits delivery
// to subscriptions owned by the given agency or supplier; a nil scope field
// means the event has no owner of that kind, so subscriptions bound to such
// an owner are skipped.
type Event struct {
	Type       EventType
	Data       any
	AgencyID   *uuid.UUID
	SupplierID *uuid.UUID
	OccurredAt time.Time
}

// Envelope is the wire body: {"event": ..., "timestamp": ISO8601, "data": ...}.
type Envelope struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data"`
}

func (e Event) MarshalEnvelope() ([]byte, error) {
	return json.Marshal(Envelope{
		Event:     string(e.Type),
		Timestamp: e.OccurredAt.UTC().Format(time.RFC3339),
		Data:      e.Data,
	})
}
