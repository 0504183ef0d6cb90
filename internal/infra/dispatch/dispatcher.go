package dispatch

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"transfer-portal/internal/domain/webhook"
	"transfer-portal/internal/pkg/clock"
	"transfer-portal/internal/pkg/config"

	"github.com/google/uuid"
)

const userAgent = "AirportTransferPortal-Webhook/1.0"

type SubscriptionStore interface {
	FindActiveForEvent(ctx context.Context, eventType webhook.EventType, agencyID, supplierID *uuid.UUID) ([]*webhook.Subscription, error)
	RecordSuccess(ctx context.Context, id uuid.UUID, at time.Time) error
	RecordFailure(ctx context.Context, id uuid.UUID, at time.Time, maxFailures int) (bool, error)
}

type DeliveryStore interface {
	Create(ctx context.Context, d *webhook.Delivery) error
	RecordOutcome(ctx context.Context, d *webhook.Delivery) error
}

// Dispatcher fans lifecycle events out to subscribed endpoints. Emit is
// fire-and-forget: delivery failures are recorded in the audit trail and the
// subscription health counters, never surfaced to the booking operation that
// triggered the event.
type Dispatcher struct {
	subs       SubscriptionStore
	deliveries DeliveryStore
	client     *http.Client
	clock      clock.Clock
	cfg        config.WebhookConfig
	logger     *slog.Logger

	wg sync.WaitGroup
}

func NewDispatcher(
	subs SubscriptionStore,
	deliveries DeliveryStore,
	clk clock.Clock,
	cfg config.WebhookConfig,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		subs:       subs,
		deliveries: deliveries,
		client:     &http.Client{Timeout: cfg.DeliveryTimeout},
		clock:      clk,
		cfg:        cfg,
		logger:     logger,
	}
}

// Emit looks up the matching active subscriptions and dispatches one
// delivery attempt per subscription in parallel. It returns as soon as the
// attempts are started; each delivery runs detached from the caller's
// request context so an in-flight POST survives the request ending.
func (d *Dispatcher) Emit(ctx context.Context, event webhook.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = d.clock.Now()
	}

	subs, err := d.subs.FindActiveForEvent(ctx, event.Type, event.AgencyID, event.SupplierID)
	if err != nil {
		d.logger.Error("webhook subscription lookup failed",
			"event", event.Type.String(), "error", err.Error())
		return
	}

	payload, err := event.MarshalEnvelope()
	if err != nil {
		d.logger.Error("webhook payload marshal failed",
			"event", event.Type.String(), "error", err.Error())
		return
	}

	for _, sub := range subs {
		if !sub.Matches(event) {
			continue
		}
		d.wg.Add(1)
		go func(sub *webhook.Subscription) {
			defer d.wg.Done()
			d.deliver(context.WithoutCancel(ctx), sub, event.Type, payload)
		}(sub)
	}
}

// Wait blocks until all in-flight deliveries settle. Used on shutdown and in
// tests; callers on the request path never wait.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, sub *webhook.Subscription, eventType webhook.EventType, payload []byte) {
	delivery := webhook.NewDelivery(sub.ID(), eventType, payload)

	// The audit record exists before the network call, so a crash or hang
	// mid-flight still leaves a trace.
	if err := d.deliveries.Create(ctx, delivery); err != nil {
		d.logger.Error("webhook delivery record creation failed",
			"subscription_id", sub.ID().String(), "error", err.Error())
		return
	}

	status, body, err := d.post(ctx, sub, payload, eventType)
	now := d.clock.Now()
	if err != nil {
		delivery.RecordOutcome(nil, err.Error(), now)
	} else {
		delivery.RecordOutcome(&status, body, now)
	}

	if err := d.deliveries.RecordOutcome(ctx, delivery); err != nil {
		d.logger.Error("webhook delivery outcome not recorded",
			"delivery_id", delivery.ID.String(), "error", err.Error())
	}

	if delivery.Succeeded() {
		if err := d.subs.RecordSuccess(ctx, sub.ID(), now); err != nil {
			d.logger.Error("webhook success bookkeeping failed",
				"subscription_id", sub.ID().String(), "error", err.Error())
		}
		return
	}

	deactivated, err := d.subs.RecordFailure(ctx, sub.ID(), now, d.cfg.MaxFailures)
	if err != nil {
		d.logger.Error("webhook failure bookkeeping failed",
			"subscription_id", sub.ID().String(), "error", err.Error())
		return
	}
	if deactivated {
		d.logger.Warn("webhook subscription deactivated after consecutive failures",
			"subscription_id", sub.ID().String(), "url", sub.URL(), "failures", d.cfg.MaxFailures)
	}
}

func (d *Dispatcher) post(ctx context.Context, sub *webhook.Subscription, payload []byte, eventType webhook.EventType) (int, string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.DeliveryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.URL(), bytes.NewReader(payload))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Signature", webhook.Sign(payload, sub.Secret(), d.clock.Now()))
	req.Header.Set("X-Webhook-Event", eventType.String())
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, webhook.MaxResponseBodyLength))
	return resp.StatusCode, string(body), nil
}
