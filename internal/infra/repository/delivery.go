package repository

import (
	"context"
	"time"

	"transfer-portal/internal/domain/webhook"
	"transfer-portal/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeliveryRepository struct {
	pool *pgxpool.Pool
}

func NewDeliveryRepository(pool *pgxpool.Pool) *DeliveryRepository {
	return &DeliveryRepository{pool: pool}
}

// Create persists the audit record before the outbound call is made, so an
// entry exists even if the call hangs or the process dies mid-flight.
func (r *DeliveryRepository) Create(ctx context.Context, d *webhook.Delivery) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO webhook_deliveries (id, subscription_id, event_type, payload, attempt)
		VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.SubscriptionID, d.EventType.String(), d.Payload, d.Attempt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create webhook delivery", err)
	}
	return nil
}

// RecordOutcome is the only mutation a delivery record ever sees.
func (r *DeliveryRepository) RecordOutcome(ctx context.Context, d *webhook.Delivery) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE webhook_deliveries
		SET response_status = $1, response_body = $2, delivered_at = $3
		WHERE id = $4`,
		d.ResponseStatus, d.ResponseBody, d.DeliveredAt, d.ID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record webhook delivery outcome", err)
	}
	return nil
}

func (r *DeliveryRepository) FindBySubscription(ctx context.Context, subscriptionID uuid.UUID, limit int32) ([]*webhook.Delivery, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, subscription_id, event_type, payload, response_status, response_body,
		       attempt, delivered_at, created_at
		FROM webhook_deliveries
		WHERE subscription_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		subscriptionID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list webhook deliveries", err)
	}
	defer rows.Close()

	var deliveries []*webhook.Delivery
	for rows.Next() {
		var (
			d         webhook.Delivery
			eventType string
			createdAt time.Time
		)
		err := rows.Scan(
			&d.ID, &d.SubscriptionID, &eventType, &d.Payload,
			&d.ResponseStatus, &d.ResponseBody, &d.Attempt, &d.DeliveredAt, &createdAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan webhook delivery", err)
		}
		d.EventType = webhook.EventType(eventType)
		d.CreatedAt = createdAt
		deliveries = append(deliveries, &d)
	}
	return deliveries, rows.Err()
}
