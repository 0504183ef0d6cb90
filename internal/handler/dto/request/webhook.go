package request

import (
	"transfer-portal/internal/domain/webhook"

	"github.com/google/uuid"
)

type CreateSubscriptionRequest struct {
	URL        string     `json:"url" binding:"required,url"`
	EventTypes []string   `json:"event_types" binding:"required,min=1"`
	AgencyID   *uuid.UUID `json:"agency_id,omitempty"`
	SupplierID *uuid.UUID `json:"supplier_id,omitempty"`
}

func (r CreateSubscriptionRequest) EventTypesDomain() []webhook.EventType {
	types := make([]webhook.EventType, len(r.EventTypes))
	for i, t := range r.EventTypes {
		types[i] = webhook.EventType(t)
	}
	return types
}
