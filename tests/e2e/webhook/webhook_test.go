//go:build e2e

package webhook_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	stdhttptest "net/http/httptest"
	"testing"
	"time"

	"transfer-portal/internal/domain/user"
	"transfer-portal/internal/domain/webhook"
	"transfer-portal/internal/infra/repository"
	resdto "transfer-portal/internal/handler/dto/response"
	"transfer-portal/internal/usecase/queries"
	"transfer-portal/tests/common/dbtest"
	"transfer-portal/tests/common/httptest"
	"transfer-portal/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL         = "/api/auth/login"
	bookingsURL      = "/api/bookings"
	subscriptionsURL = "/api/webhooks/subscriptions"
)

type webhookSuite struct {
	e2e.SharedSuite
}

func TestWebhookSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(webhookSuite))
}

func (s *webhookSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "agency@example.com", string(user.RoleAgency), nil)
}

func (s *webhookSuite) login(email string) string {
	body := map[string]any{"email": email, "password": dbtest.TestUserPassword}
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL, body, "")

	var resp resdto.LoginResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	return resp.AccessToken
}

func (s *webhookSuite) createSubscription(token, url string, agencyID uuid.UUID, eventTypes []string) resdto.SubscriptionSecretResponse {
	body := map[string]any{"url": url, "event_types": eventTypes, "agency_id": agencyID.String()}
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, subscriptionsURL, body, token)

	var resp resdto.SubscriptionSecretResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
	return resp
}

func (s *webhookSuite) TestSubscriptionManagement() {
	s.Run("secret is returned once and never again", func() {
		token := s.login("agency@example.com")
		created := s.createSubscription(token, "https://hooks.example.com/transfers", uuid.New(), []string{"booking.created"})
		s.Require().Len(created.Secret, 64)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			subscriptionsURL+"/"+created.SubscriptionID.String(), nil, token)
		var view queries.SubscriptionView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &view)
		s.True(view.IsActive)
		s.Equal([]string{"booking.created"}, view.EventTypes)
		s.NotContains(w.Body.String(), created.Secret)
	})

	s.Run("rotate replaces the secret", func() {
		token := s.login("agency@example.com")
		created := s.createSubscription(token, "https://hooks.example.com/transfers", uuid.New(), []string{"booking.created"})

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			subscriptionsURL+"/"+created.SubscriptionID.String()+"/rotate-secret", nil, token)
		var rotated resdto.SubscriptionSecretResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &rotated)
		s.NotEqual(created.Secret, rotated.Secret)
		s.Equal(created.SubscriptionID, rotated.SubscriptionID)
	})

	s.Run("deactivate and reactivate round trip", func() {
		token := s.login("agency@example.com")
		created := s.createSubscription(token, "https://hooks.example.com/transfers", uuid.New(), []string{"booking.created"})
		subURL := subscriptionsURL + "/" + created.SubscriptionID.String()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, subURL, nil, token)
		s.Require().Equal(http.StatusNoContent, w.Code)

		var view queries.SubscriptionView
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, subURL, nil, token)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &view)
		s.False(view.IsActive)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, subURL+"/reactivate", nil, token)
		s.Require().Equal(http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, subURL, nil, token)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &view)
		s.True(view.IsActive)
		s.Zero(view.FailureCount)
	})

	s.Run("unknown event type is rejected", func() {
		token := s.login("agency@example.com")
		body := map[string]any{
			"url":         "https://hooks.example.com/transfers",
			"event_types": []string{"booking.levitated"},
			"agency_id":   uuid.New().String(),
		}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, subscriptionsURL, body, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "unknown event type")
	})
}

func (s *webhookSuite) TestFailureBookkeeping() {
	s.Run("failure after manual deactivation keeps the subscription off", func() {
		token := s.login("agency@example.com")
		created := s.createSubscription(token, "https://hooks.example.com/transfers", uuid.New(), []string{"booking.created"})
		subURL := subscriptionsURL + "/" + created.SubscriptionID.String()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, subURL, nil, token)
		s.Require().Equal(http.StatusNoContent, w.Code)

		// An in-flight delivery failing against a deactivated subscription
		// must not bring it back below the threshold.
		repo := repository.NewSubscriptionRepository(s.DB)
		_, err := repo.RecordFailure(context.Background(), created.SubscriptionID, time.Now(), s.Config.Webhook.MaxFailures)
		s.Require().NoError(err)

		var view queries.SubscriptionView
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, subURL, nil, token)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &view)
		s.False(view.IsActive)
		s.Equal(1, view.FailureCount)
		s.NotNil(view.LastFailureAt)
	})
}

func (s *webhookSuite) TestDelivery() {
	s.Run("booking creation triggers a signed delivery", func() {
		type received struct {
			body    []byte
			headers http.Header
		}
		hits := make(chan received, 4)

		receiver := stdhttptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			hits <- received{body: body, headers: r.Header.Clone()}
			w.WriteHeader(http.StatusOK)
		}))
		defer receiver.Close()

		token := s.login("agency@example.com")
		agencyID := uuid.New()
		sub := s.createSubscription(token, receiver.URL, agencyID, []string{"booking.created"})

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, map[string]any{
			"agency_id":       agencyID.String(),
			"payment_method":  "CARD",
			"direction":       "TO_AIRPORT",
			"pickup_at":       time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
			"pickup_address":  "Hotel Miramar",
			"dropoff_address": "Terminal 1, Departures",
			"lead_passenger":  "B. Traveller",
			"price_cents":     9000,
			"currency":        "EUR",
		}, token)
		s.Require().Equal(http.StatusCreated, w.Code)

		select {
		case hit := <-hits:
			s.Equal("booking.created", hit.headers.Get("X-Webhook-Event"))
			s.Equal("AirportTransferPortal-Webhook/1.0", hit.headers.Get("User-Agent"))
			s.True(webhook.Verify(hit.body, hit.headers.Get("X-Webhook-Signature"),
				sub.Secret, s.Config.Webhook.SignatureTolerance, time.Now()))
		case <-time.After(10 * time.Second):
			s.Fail("no webhook delivery received")
		}

		// The delivery shows up in the audit trail.
		s.Eventually(func() bool {
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
				subscriptionsURL+"/"+sub.SubscriptionID.String()+"/deliveries", nil, token)
			if w.Code != http.StatusOK {
				return false
			}
			var views []queries.DeliveryView
			if err := json.Unmarshal(w.Body.Bytes(), &views); err != nil {
				return false
			}
			return len(views) == 1 && views[0].EventType == "booking.created" &&
				views[0].ResponseStatus != nil && *views[0].ResponseStatus == http.StatusOK
		}, 10*time.Second, 200*time.Millisecond)
	})
}
