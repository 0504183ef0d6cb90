package queries

import (
	"context"

	"transfer-portal/internal/domain/webhook"
	"transfer-portal/internal/infra"
	"transfer-portal/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrSubscriptionNotFound = errs.New("webhook subscription not found")

type SubscriptionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*webhook.Subscription, error)
	FindByOwner(ctx context.Context, agencyID, supplierID *uuid.UUID) ([]*webhook.Subscription, error)
}

type DeliveryReader interface {
	FindBySubscription(ctx context.Context, subscriptionID uuid.UUID, limit int32) ([]*webhook.Delivery, error)
}

type WebhookQueries interface {
	GetSubscription(ctx context.Context, id uuid.UUID) (*SubscriptionView, error)
	ListSubscriptions(ctx context.Context, agencyID, supplierID *uuid.UUID) ([]*SubscriptionView, error)
	ListDeliveries(ctx context.Context, subscriptionID uuid.UUID, limit int) ([]*DeliveryView, error)
}

type webhookQueriesImpl struct {
	subs       SubscriptionReader
	deliveries DeliveryReader
}

func NewWebhookQueries(subs SubscriptionReader, deliveries DeliveryReader) WebhookQueries {
	return &webhookQueriesImpl{subs: subs, deliveries: deliveries}
}

func (q *webhookQueriesImpl) GetSubscription(ctx context.Context, id uuid.UUID) (*SubscriptionView, error) {
	s, err := q.subs.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return SubscriptionToView(s), nil
}

func (q *webhookQueriesImpl) ListSubscriptions(ctx context.Context, agencyID, supplierID *uuid.UUID) ([]*SubscriptionView, error) {
	subs, err := q.subs.FindByOwner(ctx, agencyID, supplierID)
	if err != nil {
		return nil, err
	}
	views := make([]*SubscriptionView, len(subs))
	for i, s := range subs {
		views[i] = SubscriptionToView(s)
	}
	return views, nil
}

func (q *webhookQueriesImpl) ListDeliveries(ctx context.Context, subscriptionID uuid.UUID, limit int) ([]*DeliveryView, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	deliveries, err := q.deliveries.FindBySubscription(ctx, subscriptionID, int32(limit))
	if err != nil {
		return nil, err
	}
	views := make([]*DeliveryView, len(deliveries))
	for i, d := range deliveries {
		views[i] = &DeliveryView{
			ID:             d.ID,
			SubscriptionID: d.SubscriptionID,
			EventType:      d.EventType.String(),
			ResponseStatus: d.ResponseStatus,
			ResponseBody:   d.ResponseBody,
			Attempt:        d.Attempt,
			DeliveredAt:    d.DeliveredAt,
			CreatedAt:      d.CreatedAt,
		}
	}
	return views, nil
}

// SubscriptionToView never exposes the shared secret; it is shown exactly
// once, on creation or rotation.
func SubscriptionToView(s *webhook.Subscription) *SubscriptionView {
	types := make([]string, len(s.EventTypes()))
	for i, t := range s.EventTypes() {
		types[i] = t.String()
	}
	return &SubscriptionView{
		ID:            s.ID(),
		URL:           s.URL(),
		EventTypes:    types,
		AgencyID:      s.AgencyID(),
		SupplierID:    s.SupplierID(),
		IsActive:      s.IsActive(),
		FailureCount:  s.FailureCount(),
		LastSuccessAt: s.LastSuccessAt(),
		LastFailureAt: s.LastFailureAt(),
		CreatedAt:     s.CreatedAt(),
	}
}
