package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "transfer-portal/internal/handler/dto/request"
	resdto "transfer-portal/internal/handler/dto/response"
	"transfer-portal/internal/usecase/commands"
	"transfer-portal/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WebhookHandler struct {
	commands commands.WebhookCommands
	queries  queries.WebhookQueries
}

func NewWebhookHandler(cmds commands.WebhookCommands, qs queries.WebhookQueries) *WebhookHandler {
	return &WebhookHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Create webhook subscription
// @Description Register an endpoint for signed event notifications. The signing secret is returned only in this response.
// @Tags webhooks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSubscriptionRequest true "Subscription"
// @Success 201 {object} resdto.SubscriptionSecretResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /webhooks/subscriptions [post]
func (h *WebhookHandler) CreateSubscription(c *gin.Context) {
	var req reqdto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	secret, err := h.commands.CreateSubscription(c.Request.Context(), commands.CreateSubscriptionInput{
		URL:        req.URL,
		EventTypes: req.EventTypesDomain(),
		AgencyID:   req.AgencyID,
		SupplierID: req.SupplierID,
	})
	if err != nil {
		handleWebhookError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSubscriptionSecret(secret))
}

// @Summary Get webhook subscription
// @Description Get a subscription without its secret
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Success 200 {object} queries.SubscriptionView
// @Failure 404 {object} map[string]string
// @Router /webhooks/subscriptions/{id} [get]
func (h *WebhookHandler) GetSubscription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid subscription ID format",
		})
		return
	}

	view, err := h.queries.GetSubscription(c.Request.Context(), id)
	if err != nil {
		handleWebhookError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary List webhook subscriptions
// @Description List subscriptions owned by an agency or supplier
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param agency_id query string false "Agency ID"
// @Param supplier_id query string false "Supplier ID"
// @Success 200 {array} queries.SubscriptionView
// @Failure 400 {object} map[string]string
// @Router /webhooks/subscriptions [get]
func (h *WebhookHandler) ListSubscriptions(c *gin.Context) {
	agencyID, err := parseOptionalUUID(c.Query("agency_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid agency ID format",
		})
		return
	}
	supplierID, err := parseOptionalUUID(c.Query("supplier_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid supplier ID format",
		})
		return
	}

	views, err := h.queries.ListSubscriptions(c.Request.Context(), agencyID, supplierID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary List deliveries
// @Description List the delivery audit trail for a subscription, newest first
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Param limit query int false "Page size"
// @Success 200 {array} queries.DeliveryView
// @Failure 400 {object} map[string]string
// @Router /webhooks/subscriptions/{id}/deliveries [get]
func (h *WebhookHandler) ListDeliveries(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid subscription ID format",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	views, err := h.queries.ListDeliveries(c.Request.Context(), id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Rotate subscription secret
// @Description Replace the signing secret; the new one is returned only in this response
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Success 200 {object} resdto.SubscriptionSecretResponse
// @Failure 404 {object} map[string]string
// @Router /webhooks/subscriptions/{id}/rotate-secret [post]
func (h *WebhookHandler) RotateSecret(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid subscription ID format",
		})
		return
	}

	secret, err := h.commands.RotateSecret(c.Request.Context(), id)
	if err != nil {
		handleWebhookError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSubscriptionSecret(secret))
}

// @Summary Deactivate subscription
// @Description Stop deliveries to a subscription
// @Tags webhooks
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /webhooks/subscriptions/{id} [delete]
func (h *WebhookHandler) DeactivateSubscription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid subscription ID format",
		})
		return
	}

	if err := h.commands.DeactivateSubscription(c.Request.Context(), id); err != nil {
		handleWebhookError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Reactivate subscription
// @Description Re-enable a deactivated subscription and reset its failure counter
// @Tags webhooks
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /webhooks/subscriptions/{id}/reactivate [post]
func (h *WebhookHandler) ReactivateSubscription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid subscription ID format",
		})
		return
	}

	if err := h.commands.ReactivateSubscription(c.Request.Context(), id); err != nil {
		handleWebhookError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func handleWebhookError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrSubscriptionNotFound), errors.Is(err, queries.ErrSubscriptionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Subscription not found",
		})
	default:
		if isDomainValidationError(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
