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

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, qs queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Create booking
// @Description Create a new transfer booking with a generated booking code
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.commands.CreateBooking(c.Request.Context(), commands.CreateBookingInput{
		AgencyID:        req.AgencyID,
		PaymentMethod:   req.PaymentMethodDomain(),
		Direction:       req.DirectionDomain(),
		PickupAt:        req.PickupAt,
		FlightNumber:    req.FlightNumber,
		PickupAddress:   req.PickupAddress,
		DropoffAddress:  req.DropoffAddress,
		LeadPassenger:   req.LeadPassenger,
		ContactPhone:    req.ContactPhone,
		SpecialRequests: req.SpecialRequests,
		PriceCents:      req.PriceCents,
		Currency:        req.Currency,
	})
	if err != nil {
		handleBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateBookingResult(result))
}

// @Summary Get booking
// @Description Get booking by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		handleBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Get booking by code
// @Description Look a booking up by its booking code (dashes and case ignored)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param code path string true "Booking code"
// @Success 200 {object} queries.BookingView
// @Failure 404 {object} map[string]string
// @Router /bookings/code/{code} [get]
func (h *BookingHandler) GetBookingByCode(c *gin.Context) {
	view, err := h.queries.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		handleBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary List agency bookings
// @Description List bookings created by an agency, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param agency_id query string true "Agency ID"
// @Param limit query int false "Page size"
// @Success 200 {array} queries.BookingView
// @Failure 400 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	agencyID, err := uuid.Parse(c.Query("agency_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid agency ID format",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	views, err := h.queries.ListByAgency(c.Request.Context(), agencyID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Submit booking for payment
// @Description Move a pending booking into AWAITING_PAYMENT
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/submit [post]
func (h *BookingHandler) SubmitForPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	if err := h.commands.SubmitForPayment(c.Request.Context(), id); err != nil {
		handleBookingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Record payment
// @Description Record an incoming payment against a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RecordPaymentRequest true "Payment amount"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/payments [post]
func (h *BookingHandler) RecordPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.commands.MarkPaymentReceived(c.Request.Context(), id, req.AmountCents)
	if err != nil {
		handleBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentResult(result))
}

// @Summary Quote cancellation
// @Description Preview the refund a cancellation would yield right now
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.CancellationQuoteView
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/cancellation-quote [get]
func (h *BookingHandler) QuoteCancellation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.queries.QuoteCancellation(c.Request.Context(), id)
	if err != nil {
		handleBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Cancel booking
// @Description Cancel a booking and apply the refund policy
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.CancellationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	result, err := h.commands.CancelBooking(c.Request.Context(), id)
	if err != nil {
		handleBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCancellationResult(result))
}

// @Summary Modify booking
// @Description Change booking details while the modification window is open
// @Tags bookings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ModifyBookingRequest true "Fields to change"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id} [patch]
func (h *BookingHandler) ModifyBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.ModifyBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	if req.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No fields to modify",
		})
		return
	}

	if err := h.commands.ModifyBooking(c.Request.Context(), id, req.ToChanges()); err != nil {
		handleBookingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func handleBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookingNotFound), errors.Is(err, queries.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, commands.ErrCancellationRefused):
		msg := "Cancellation not allowed"
		var refusal *commands.CancellationRefusedError
		if errors.As(err, &refusal) {
			msg = "Cancellation not allowed: " + refusal.Reason
		}
		c.JSON(http.StatusConflict, gin.H{
			"error": msg,
		})
	case errors.Is(err, commands.ErrModificationRefused):
		body := gin.H{"error": "Modification not allowed"}
		var window *commands.ModificationWindowError
		if errors.As(err, &window) {
			body["error"] = "Modification not allowed: " + window.Reason
			body["remaining_hours"] = window.RemainingHours
			body["required_hours"] = window.RequiredHours
		}
		c.JSON(http.StatusConflict, body)
	case errors.Is(err, commands.ErrInvalidStatusChange):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking status does not allow this operation",
		})
	case errors.Is(err, commands.ErrConcurrentUpdate):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking was updated concurrently, retry the request",
		})
	case errors.Is(err, commands.ErrPaymentAlreadySettled):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking is already fully paid",
		})
	case errors.Is(err, commands.ErrNonPositivePayment),
		errors.Is(err, commands.ErrPickupMustBeFuture):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, commands.ErrCodeGenerationExhausted):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Could not issue a booking code, retry the request",
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
