package commands

import (
	"context"

	"transfer-portal/internal/domain/webhook"
	"transfer-portal/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrSubscriptionNotFound = errs.New("webhook subscription not found")

type CreateSubscriptionInput struct {
	URL        string
	EventTypes []webhook.EventType
	AgencyID   *uuid.UUID
	SupplierID *uuid.UUID
}

// SubscriptionSecret is returned exactly once, on creation or rotation. It is
// never readable again through any query.
type SubscriptionSecret struct {
	SubscriptionID uuid.UUID
	Secret         string
}

type WebhookCommands interface {
	CreateSubscription(ctx context.Context, in CreateSubscriptionInput) (*SubscriptionSecret, error)
	RotateSecret(ctx context.Context, id uuid.UUID) (*SubscriptionSecret, error)
	DeactivateSubscription(ctx context.Context, id uuid.UUID) error
	ReactivateSubscription(ctx context.Context, id uuid.UUID) error
}

type webhookCommandsImpl struct {
	subs SubscriptionRepository
}

func NewWebhookCommands(subs SubscriptionRepository) WebhookCommands {
	return &webhookCommandsImpl{subs: subs}
}

func (c *webhookCommandsImpl) CreateSubscription(ctx context.Context, in CreateSubscriptionInput) (*SubscriptionSecret, error) {
	secret, err := webhook.NewSecret()
	if err != nil {
		return nil, err
	}

	sub, err := webhook.NewSubscription(in.URL, secret, in.EventTypes, in.AgencyID, in.SupplierID)
	if err != nil {
		return nil, err
	}

	if err := c.subs.Create(ctx, sub); err != nil {
		return nil, err
	}
	return &SubscriptionSecret{SubscriptionID: sub.ID(), Secret: secret}, nil
}

// RotateSecret invalidates the old signing secret immediately; in-flight
// deliveries signed with it will fail the receiver's verification.
func (c *webhookCommandsImpl) RotateSecret(ctx context.Context, id uuid.UUID) (*SubscriptionSecret, error) {
	if _, err := c.subs.FindByID(ctx, id); err != nil {
		return nil, markNotFound(err, ErrSubscriptionNotFound)
	}

	secret, err := webhook.NewSecret()
	if err != nil {
		return nil, err
	}
	if err := c.subs.UpdateSecret(ctx, id, secret); err != nil {
		return nil, err
	}
	return &SubscriptionSecret{SubscriptionID: id, Secret: secret}, nil
}

func (c *webhookCommandsImpl) DeactivateSubscription(ctx context.Context, id uuid.UUID) error {
	if _, err := c.subs.FindByID(ctx, id); err != nil {
		return markNotFound(err, ErrSubscriptionNotFound)
	}
	return c.subs.SetActive(ctx, id, false)
}

// ReactivateSubscription re-enables a tripped subscription and resets its
// consecutive-failure counter.
func (c *webhookCommandsImpl) ReactivateSubscription(ctx context.Context, id uuid.UUID) error {
	if _, err := c.subs.FindByID(ctx, id); err != nil {
		return markNotFound(err, ErrSubscriptionNotFound)
	}
	return c.subs.SetActive(ctx, id, true)
}
