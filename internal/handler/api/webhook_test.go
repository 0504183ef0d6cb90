//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"transfer-portal/internal/domain/webhook"
	"transfer-portal/internal/handler/api"
	resdto "transfer-portal/internal/handler/dto/response"
	"transfer-portal/internal/usecase/commands"
	"transfer-portal/internal/usecase/queries"
	"transfer-portal/tests/common/httptest"
	commandsmock "transfer-portal/tests/mock/commands"
	queriesmock "transfer-portal/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WebhookHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockWebhookCommands
	mockQueries  *queriesmock.MockWebhookQueries
	handler      *api.WebhookHandler
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockWebhookCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockWebhookQueries(s.mockCtrl)
	s.handler = api.NewWebhookHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/webhooks/subscriptions", s.handler.CreateSubscription)
	s.router.GET("/webhooks/subscriptions", s.handler.ListSubscriptions)
	s.router.GET("/webhooks/subscriptions/:id", s.handler.GetSubscription)
	s.router.DELETE("/webhooks/subscriptions/:id", s.handler.DeactivateSubscription)
	s.router.POST("/webhooks/subscriptions/:id/reactivate", s.handler.ReactivateSubscription)
	s.router.POST("/webhooks/subscriptions/:id/rotate-secret", s.handler.RotateSecret)
	s.router.GET("/webhooks/subscriptions/:id/deliveries", s.handler.ListDeliveries)
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) TestCreateSubscription() {
	agencyID := uuid.New()

	s.Run("returns the secret exactly once", func() {
		secret := &commands.SubscriptionSecret{
			SubscriptionID: uuid.New(),
			Secret:         "c0ffee00c0ffee00",
		}
		s.mockCommands.EXPECT().
			CreateSubscription(gomock.Any(), gomock.Any()).
			Return(secret, nil)

		body := map[string]any{
			"url":         "https://example.com/hooks",
			"event_types": []string{"booking.created", "booking.cancelled"},
			"agency_id":   agencyID.String(),
		}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/webhooks/subscriptions", body, "")

		var resp resdto.SubscriptionSecretResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(secret.SubscriptionID, resp.SubscriptionID)
		s.Equal("c0ffee00c0ffee00", resp.Secret)
	})

	s.Run("unknown event type maps to 422", func() {
		s.mockCommands.EXPECT().
			CreateSubscription(gomock.Any(), gomock.Any()).
			Return(nil, webhook.ErrUnknownEvent)

		body := map[string]any{
			"url":         "https://example.com/hooks",
			"event_types": []string{"booking.teleported"},
			"agency_id":   agencyID.String(),
		}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/webhooks/subscriptions", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "unknown event type")
	})

	s.Run("missing url rejected by binding", func() {
		body := map[string]any{
			"event_types": []string{"booking.created"},
			"agency_id":   agencyID.String(),
		}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/webhooks/subscriptions", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *WebhookHandlerTestSuite) TestGetSubscription() {
	s.Run("found, secret never exposed", func() {
		id := uuid.New()
		view := &queries.SubscriptionView{
			ID:         id,
			URL:        "https://example.com/hooks",
			EventTypes: []string{"booking.created"},
			IsActive:   true,
		}
		s.mockQueries.EXPECT().GetSubscription(gomock.Any(), id).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/webhooks/subscriptions/"+id.String(), nil, "")

		var resp queries.SubscriptionView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.URL, resp.URL)
		s.NotContains(w.Body.String(), "secret")
	})

	s.Run("not found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetSubscription(gomock.Any(), id).Return(nil, queries.ErrSubscriptionNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/webhooks/subscriptions/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Subscription not found")
	})
}

func (s *WebhookHandlerTestSuite) TestListSubscriptions() {
	agencyID := uuid.New()
	views := []*queries.SubscriptionView{{ID: uuid.New(), AgencyID: &agencyID}}
	s.mockQueries.EXPECT().
		ListSubscriptions(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(views, nil)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/webhooks/subscriptions?agency_id="+agencyID.String(), nil, "")

	var resp []*queries.SubscriptionView
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Len(resp, 1)
}

func (s *WebhookHandlerTestSuite) TestListDeliveries() {
	id := uuid.New()
	status := 200
	views := []*queries.DeliveryView{{
		ID:             uuid.New(),
		SubscriptionID: id,
		EventType:      "booking.created",
		ResponseStatus: &status,
		Attempt:        1,
	}}
	s.mockQueries.EXPECT().ListDeliveries(gomock.Any(), id, 10).Return(views, nil)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/webhooks/subscriptions/"+id.String()+"/deliveries?limit=10", nil, "")

	var resp []*queries.DeliveryView
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Len(resp, 1)
	s.Equal("booking.created", resp[0].EventType)
}

func (s *WebhookHandlerTestSuite) TestRotateSecret() {
	id := uuid.New()
	secret := &commands.SubscriptionSecret{SubscriptionID: id, Secret: "fresh-secret"}
	s.mockCommands.EXPECT().RotateSecret(gomock.Any(), id).Return(secret, nil)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/webhooks/subscriptions/"+id.String()+"/rotate-secret", nil, "")

	var resp resdto.SubscriptionSecretResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Equal("fresh-secret", resp.Secret)
}

func (s *WebhookHandlerTestSuite) TestDeactivateAndReactivate() {
	id := uuid.New()

	s.Run("deactivate", func() {
		s.mockCommands.EXPECT().DeactivateSubscription(gomock.Any(), id).Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/webhooks/subscriptions/"+id.String(), nil, "")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("reactivate", func() {
		s.mockCommands.EXPECT().ReactivateSubscription(gomock.Any(), id).Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/webhooks/subscriptions/"+id.String()+"/reactivate", nil, "")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("reactivate unknown subscription", func() {
		s.mockCommands.EXPECT().ReactivateSubscription(gomock.Any(), id).Return(commands.ErrSubscriptionNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/webhooks/subscriptions/"+id.String()+"/reactivate", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Subscription not found")
	})
}
