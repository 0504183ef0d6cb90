package response

import (
	"transfer-portal/internal/usecase/commands"

	"github.com/google/uuid"
)

// SubscriptionSecretResponse is the only place the signing secret ever leaves
// the server.
type SubscriptionSecretResponse struct {
	SubscriptionID uuid.UUID `json:"subscription_id"`
	Secret         string    `json:"secret"`
}

func FromSubscriptionSecret(s *commands.SubscriptionSecret) SubscriptionSecretResponse {
	return SubscriptionSecretResponse{
		SubscriptionID: s.SubscriptionID,
		Secret:         s.Secret,
	}
}
