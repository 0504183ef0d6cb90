package repository

import (
	"context"
	"time"

	"transfer-portal/internal/domain/webhook"
	"transfer-portal/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const subscriptionColumns = `
	id, url, secret, event_types, agency_id, supplier_id, is_active,
	failure_count, last_success_at, last_failure_at, created_at, updated_at`

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *webhook.Subscription) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO webhook_subscriptions (id, url, secret, event_types, agency_id, supplier_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID(), s.URL(), s.Secret(), eventTypeStrings(s.EventTypes()),
		s.AgencyID(), s.SupplierID(), s.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create webhook subscription", err)
	}
	return nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*webhook.Subscription, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+subscriptionColumns+` FROM webhook_subscriptions WHERE id = $1`, id)
	return scanSubscription(row)
}

func (r *SubscriptionRepository) FindByOwner(ctx context.Context, agencyID, supplierID *uuid.UUID) ([]*webhook.Subscription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+subscriptionColumns+` FROM webhook_subscriptions
		WHERE (agency_id = $1 OR supplier_id = $2)
		ORDER BY created_at`,
		agencyID, supplierID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list webhook subscriptions", err)
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

// FindActiveForEvent returns the active subscriptions matching the event
// type and owner scope; delivery filtering happens here, before any network
// call is attempted.
func (r *SubscriptionRepository) FindActiveForEvent(ctx context.Context, eventType webhook.EventType, agencyID, supplierID *uuid.UUID) ([]*webhook.Subscription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+subscriptionColumns+` FROM webhook_subscriptions
		WHERE is_active = TRUE
		  AND $1 = ANY(event_types)
		  AND (agency_id = $2 OR supplier_id = $3)`,
		eventType.String(), agencyID, supplierID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find subscriptions for event", err)
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

// RecordSuccess resets the consecutive-failure counter after a 2xx.
func (r *SubscriptionRepository) RecordSuccess(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE webhook_subscriptions
		SET failure_count = 0, last_success_at = $1, updated_at = now()
		WHERE id = $2`,
		at, id,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record delivery success", err)
	}
	return nil
}

// RecordFailure bumps the counter and trips the circuit breaker in the same
// statement, so concurrent deliveries cannot both miss the threshold. The
// breaker only ever clears is_active: a subscription deactivated by hand must
// stay inactive even when an in-flight delivery fails afterwards.
func (r *SubscriptionRepository) RecordFailure(ctx context.Context, id uuid.UUID, at time.Time, maxFailures int) (deactivated bool, err error) {
	var isActive bool
	err = r.pool.QueryRow(ctx, `
		UPDATE webhook_subscriptions
		SET failure_count = failure_count + 1,
		    last_failure_at = $1,
		    is_active = is_active AND (failure_count + 1 < $2),
		    updated_at = now()
		WHERE id = $3
		RETURNING is_active`,
		at, maxFailures, id,
	).Scan(&isActive)
	if err != nil {
		return false, infra.WrapRepoErr("failed to record delivery failure", err)
	}
	return !isActive, nil
}

func (r *SubscriptionRepository) UpdateSecret(ctx context.Context, id uuid.UUID, secret string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE webhook_subscriptions SET secret = $1, updated_at = now() WHERE id = $2`,
		secret, id,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to rotate subscription secret", err)
	}
	return nil
}

// SetActive toggles delivery; reactivation also resets the failure counter.
func (r *SubscriptionRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE webhook_subscriptions
		SET is_active = $1,
		    failure_count = CASE WHEN $1 THEN 0 ELSE failure_count END,
		    updated_at = now()
		WHERE id = $2`,
		active, id,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update subscription state", err)
	}
	return nil
}

func scanSubscriptions(rows pgx.Rows) ([]*webhook.Subscription, error) {
	var subs []*webhook.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func scanSubscription(row pgx.Row) (*webhook.Subscription, error) {
	var (
		id                           uuid.UUID
		url, secret                  string
		eventTypes                   []string
		agencyID, supplierID         *uuid.UUID
		isActive                     bool
		failureCount                 int
		lastSuccessAt, lastFailureAt *time.Time
		createdAt, updatedAt         time.Time
	)
	err := row.Scan(
		&id, &url, &secret, &eventTypes, &agencyID, &supplierID, &isActive,
		&failureCount, &lastSuccessAt, &lastFailureAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan webhook subscription", err)
	}

	types := make([]webhook.EventType, len(eventTypes))
	for i, t := range eventTypes {
		types[i] = webhook.EventType(t)
	}
	return webhook.ReconstructSubscription(
		id, url, secret, types, agencyID, supplierID, isActive,
		failureCount, lastSuccessAt, lastFailureAt, createdAt, updatedAt,
	), nil
}

func eventTypeStrings(types []webhook.EventType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}
