//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"transfer-portal/internal/handler/api"
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

type RideHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRideCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.RideHandler
}

func (s *RideHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRideCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewRideHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/bookings/:id/ride", s.handler.GetRideForBooking)
	s.router.POST("/rides/:id/assign", s.handler.AssignDriver)
	s.router.POST("/rides/:id/status", s.handler.AdvanceRide)
}

func (s *RideHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRideHandlerSuite(t *testing.T) {
	suite.Run(t, new(RideHandlerTestSuite))
}

func (s *RideHandlerTestSuite) TestGetRideForBooking() {
	bookingID := uuid.New()

	s.Run("found", func() {
		view := &queries.RideView{ID: uuid.New(), BookingID: bookingID, Status: "PENDING_ASSIGN"}
		s.mockQueries.EXPECT().GetRide(gomock.Any(), bookingID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String()+"/ride", nil, "")

		var resp queries.RideView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(bookingID, resp.BookingID)
	})

	s.Run("not found", func() {
		s.mockQueries.EXPECT().GetRide(gomock.Any(), bookingID).Return(nil, queries.ErrRideNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String()+"/ride", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Ride not found")
	})
}

func (s *RideHandlerTestSuite) TestAssignDriver() {
	rideID := uuid.New()
	supplierID := uuid.New()
	driverID := uuid.New()

	s.Run("assigns", func() {
		s.mockCommands.EXPECT().
			AssignDriver(gomock.Any(), commands.AssignDriverInput{
				RideID:     rideID,
				SupplierID: supplierID,
				DriverID:   driverID,
			}).
			Return(nil)

		body := map[string]any{
			"supplier_id": supplierID.String(),
			"driver_id":   driverID.String(),
		}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rides/"+rideID.String()+"/assign", body, "")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("missing driver rejected by binding", func() {
		body := map[string]any{"supplier_id": supplierID.String()}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rides/"+rideID.String()+"/assign", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("ride not found", func() {
		s.mockCommands.EXPECT().AssignDriver(gomock.Any(), gomock.Any()).Return(commands.ErrRideNotFound)

		body := map[string]any{
			"supplier_id": supplierID.String(),
			"driver_id":   driverID.String(),
		}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rides/"+rideID.String()+"/assign", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Ride not found")
	})
}

func (s *RideHandlerTestSuite) TestAdvanceRide() {
	rideID := uuid.New()

	s.Run("advances with lowercase input", func() {
		s.mockCommands.EXPECT().
			AdvanceRide(gomock.Any(), rideID, gomock.Any()).
			Return(nil)

		body := map[string]any{"status": "on_way"}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rides/"+rideID.String()+"/status", body, "")
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("unknown status rejected", func() {
		body := map[string]any{"status": "TELEPORTING"}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rides/"+rideID.String()+"/status", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Unknown ride status")
	})

	s.Run("illegal transition maps to 409", func() {
		s.mockCommands.EXPECT().
			AdvanceRide(gomock.Any(), rideID, gomock.Any()).
			Return(commands.ErrRideNotProgressing)

		body := map[string]any{"status": "IN_RIDE"}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rides/"+rideID.String()+"/status", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")
	})
}
