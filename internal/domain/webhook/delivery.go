package webhook

import (
	"time"

	"github.com/google/uuid"
)

// MaxResponseBodyLength bounds how much of an endpoint's response is kept in
// the audit trail.
const MaxResponseBodyLength = 1024

// Delivery is one attempted delivery: an append-only audit record, created
// before the network call and mutated only to record its own outcome.
type Delivery struct {
	ID             uuid.UUID
	SubscriptionID uuid.UUID
	EventType      EventType
	Payload        []byte
	ResponseStatus *int
	ResponseBody   *string
	Attempt        int
	DeliveredAt    *time.Time
	CreatedAt      time.Time
}

func NewDelivery(subscriptionID uuid.UUID, eventType EventType, payload []byte) *Delivery {
	return &Delivery{
		ID:             uuid.New(),
		SubscriptionID: subscriptionID,
		EventType:      eventType,
		Payload:        payload,
		Attempt:        1,
	}
}

// RecordOutcome stamps the delivery with the endpoint's response. A nil
// status means the call never completed (timeout or network failure) and
// body carries the error string instead.
func (d *Delivery) RecordOutcome(status *int, body string, at time.Time) {
	if len(body) > MaxResponseBodyLength {
		body = body[:MaxResponseBodyLength]
	}
	d.ResponseStatus = status
	d.ResponseBody = &body
	d.DeliveredAt = &at
}

// Succeeded reports whether the endpoint acknowledged with a 2xx.
func (d *Delivery) Succeeded() bool {
	return d.ResponseStatus != nil && *d.ResponseStatus >= 200 && *d.ResponseStatus < 300
}
