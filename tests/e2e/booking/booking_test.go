//go:build e2e

package booking_test

import (
	"net/http"
	"testing"
	"time"

	"transfer-portal/internal/domain/user"
	resdto "transfer-portal/internal/handler/dto/response"
	"transfer-portal/internal/usecase/queries"
	"transfer-portal/tests/common/dbtest"
	"transfer-portal/tests/common/httptest"
	"transfer-portal/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL    = "/api/auth/login"
	bookingsURL = "/api/bookings"
	ridesURL    = "/api/rides"
)

type bookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "agency@example.com", string(user.RoleAgency), nil)
	dbtest.CreateTestUser(s.T(), s.DB, "supplier@example.com", string(user.RoleSupplier), nil)
}

func (s *bookingSuite) login(email string) string {
	body := map[string]any{"email": email, "password": dbtest.TestUserPassword}
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL, body, "")

	var resp resdto.LoginResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	return resp.AccessToken
}

func (s *bookingSuite) createBooking(token string, pickupAt time.Time) resdto.CreateBookingResponse {
	body := map[string]any{
		"payment_method":  "CARD",
		"direction":       "FROM_AIRPORT",
		"pickup_at":       pickupAt.Format(time.RFC3339),
		"flight_number":   "BA2490",
		"pickup_address":  "Terminal 2, Arrivals",
		"dropoff_address": "12 Harbour St",
		"lead_passenger":  "A. Traveller",
		"price_cents":     15000,
		"currency":        "EUR",
	}
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, body, token)

	var resp resdto.CreateBookingResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
	return resp
}

func (s *bookingSuite) getBooking(token, id string) queries.BookingView {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, bookingsURL+"/"+id, nil, token)

	var view queries.BookingView
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &view)
	return view
}

func (s *bookingSuite) TestBookingLifecycle() {
	s.Run("full flow from creation to completion", func() {
		agencyToken := s.login("agency@example.com")
		pickupAt := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

		created := s.createBooking(agencyToken, pickupAt)
		s.Require().Len(created.Code, 9)
		s.Require().Equal("ATP", created.Code[:3])

		bookingID := created.BookingID.String()
		rideID := created.RideID.String()

		view := s.getBooking(agencyToken, bookingID)
		s.Equal("PENDING", view.Status)
		s.Equal("UNPAID", view.PaymentStatus)

		// Lookup by formatted code resolves to the same booking.
		formatted := created.Code[:3] + "-" + created.Code[3:6] + "-" + created.Code[6:]
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, bookingsURL+"/code/"+formatted, nil, agencyToken)
		var byCode queries.BookingView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &byCode)
		if diff := cmp.Diff(view, byCode, cmpopts.EquateApproxTime(time.Second)); diff != "" {
			s.Failf("booking lookup mismatch", "(-by id +by code):\n%s", diff)
		}

		// Submit for payment.
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL+"/"+bookingID+"/submit", nil, agencyToken)
		s.Require().Equal(http.StatusNoContent, w.Code)
		s.Equal("AWAITING_PAYMENT", s.getBooking(agencyToken, bookingID).Status)

		// Full payment confirms the booking.
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL+"/"+bookingID+"/payments",
			map[string]any{"amount_cents": 15000}, agencyToken)
		var payment resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &payment)
		s.True(payment.Confirmed)
		s.Equal("PAID", payment.PaymentStatus)
		s.Equal("CONFIRMED", s.getBooking(agencyToken, bookingID).Status)

		// Supplier assigns a driver.
		supplierToken := s.login("supplier@example.com")
		supplierID := dbtest.CreateTestUser(s.T(), s.DB, "driver-owner@example.com", string(user.RoleSupplier), nil)
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ridesURL+"/"+rideID+"/assign",
			map[string]any{"supplier_id": supplierID.String(), "driver_id": supplierID.String()}, supplierToken)
		s.Require().Equal(http.StatusNoContent, w.Code)
		s.Equal("ASSIGNED", s.getBooking(agencyToken, bookingID).Status)

		// Walk the ride to completion; the booking follows.
		for _, step := range []struct {
			status string
			expect string
		}{
			{"ON_WAY", "ASSIGNED"},
			{"AT_PICKUP", "ASSIGNED"},
			{"IN_RIDE", "IN_PROGRESS"},
			{"FINISHED", "COMPLETED"},
		} {
			w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ridesURL+"/"+rideID+"/status",
				map[string]any{"status": step.status}, supplierToken)
			s.Require().Equalf(http.StatusNoContent, w.Code, "advancing to %s: %s", step.status, w.Body.String())
			s.Equal(step.expect, s.getBooking(agencyToken, bookingID).Status)
		}
	})

	s.Run("agency role cannot drive rides", func() {
		agencyToken := s.login("agency@example.com")
		created := s.createBooking(agencyToken, time.Now().Add(48*time.Hour).UTC())

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ridesURL+"/"+created.RideID.String()+"/status",
			map[string]any{"status": "ON_WAY"}, agencyToken)
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("unauthenticated requests are rejected", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, bookingsURL, nil, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *bookingSuite) TestCancellation() {
	s.Run("paid booking refunds by notice period", func() {
		agencyToken := s.login("agency@example.com")
		created := s.createBooking(agencyToken, time.Now().Add(48*time.Hour).UTC())
		bookingID := created.BookingID.String()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL+"/"+bookingID+"/submit", nil, agencyToken)
		s.Require().Equal(http.StatusNoContent, w.Code)
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL+"/"+bookingID+"/payments",
			map[string]any{"amount_cents": 15000}, agencyToken)
		s.Require().Equal(http.StatusOK, w.Code)

		// The quote and the actual cancellation agree.
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, bookingsURL+"/"+bookingID+"/cancellation-quote", nil, agencyToken)
		var quote queries.CancellationQuoteView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &quote)
		s.True(quote.CanCancel)
		s.Equal(100, quote.RefundPercent)
		s.Equal(int64(15000), quote.RefundCents)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, bookingsURL+"/"+bookingID, nil, agencyToken)
		var result resdto.CancellationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &result)
		s.True(result.Cancelled)
		s.Equal(int64(15000), result.RefundCents)

		view := s.getBooking(agencyToken, bookingID)
		s.Equal("CANCELLED", view.Status)
		s.Equal("REFUNDED", view.PaymentStatus)
	})

	s.Run("unpaid booking cancels without refund", func() {
		agencyToken := s.login("agency@example.com")
		created := s.createBooking(agencyToken, time.Now().Add(48*time.Hour).UTC())

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, bookingsURL+"/"+created.BookingID.String(), nil, agencyToken)
		var result resdto.CancellationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &result)
		s.True(result.Cancelled)
		s.Zero(result.RefundCents)
	})

	s.Run("cancelling twice is refused", func() {
		agencyToken := s.login("agency@example.com")
		created := s.createBooking(agencyToken, time.Now().Add(48*time.Hour).UTC())
		bookingID := created.BookingID.String()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, bookingsURL+"/"+bookingID, nil, agencyToken)
		s.Require().Equal(http.StatusOK, w.Code)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, bookingsURL+"/"+bookingID, nil, agencyToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict,
			"Cancellation not allowed: booking is already cancelled")
	})
}

func (s *bookingSuite) TestModification() {
	s.Run("details change while the window is open", func() {
		agencyToken := s.login("agency@example.com")
		created := s.createBooking(agencyToken, time.Now().Add(48*time.Hour).UTC())
		bookingID := created.BookingID.String()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, bookingsURL+"/"+bookingID,
			map[string]any{"flight_number": "LH1138", "contact_phone": "+34 600 000 000"}, agencyToken)
		s.Require().Equal(http.StatusNoContent, w.Code)

		view := s.getBooking(agencyToken, bookingID)
		s.Equal("LH1138", view.FlightNumber)
		s.Equal("+34 600 000 000", view.ContactPhone)
	})
}
