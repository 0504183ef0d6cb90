package api

import (
	"errors"
	"net/http"

	reqdto "transfer-portal/internal/handler/dto/request"
	"transfer-portal/internal/usecase/commands"
	"transfer-portal/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RideHandler struct {
	commands commands.RideCommands
	queries  queries.BookingQueries
}

func NewRideHandler(cmds commands.RideCommands, qs queries.BookingQueries) *RideHandler {
	return &RideHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Get ride for booking
// @Description Get the ride attached to a booking
// @Tags rides
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.RideView
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/ride [get]
func (h *RideHandler) GetRideForBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.queries.GetRide(c.Request.Context(), bookingID)
	if err != nil {
		handleRideError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Assign driver
// @Description Assign or reassign a supplier's driver to a ride
// @Tags rides
// @Accept json
// @Security BearerAuth
// @Param id path string true "Ride ID"
// @Param request body reqdto.AssignDriverRequest true "Assignment"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rides/{id}/assign [post]
func (h *RideHandler) AssignDriver(c *gin.Context) {
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ride ID format",
		})
		return
	}

	var req reqdto.AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err = h.commands.AssignDriver(c.Request.Context(), commands.AssignDriverInput{
		RideID:     rideID,
		SupplierID: req.SupplierID,
		DriverID:   req.DriverID,
		VehicleID:  req.VehicleID,
	})
	if err != nil {
		handleRideError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Advance ride status
// @Description Move a ride one step along its operational flow
// @Tags rides
// @Accept json
// @Security BearerAuth
// @Param id path string true "Ride ID"
// @Param request body reqdto.AdvanceRideRequest true "Target status"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rides/{id}/status [post]
func (h *RideHandler) AdvanceRide(c *gin.Context) {
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ride ID format",
		})
		return
	}

	var req reqdto.AdvanceRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	target := req.StatusDomain()
	if !target.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown ride status",
		})
		return
	}

	if err := h.commands.AdvanceRide(c.Request.Context(), rideID, target); err != nil {
		handleRideError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func handleRideError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrRideNotFound), errors.Is(err, queries.ErrRideNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Ride not found",
		})
	case errors.Is(err, commands.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, commands.ErrRideNotProgressing), errors.Is(err, commands.ErrInvalidStatusChange):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Ride status does not allow this operation",
		})
	case errors.Is(err, commands.ErrConcurrentUpdate):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Ride was updated concurrently, retry the request",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
