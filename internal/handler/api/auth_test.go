//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"transfer-portal/internal/handler/api"
	resdto "transfer-portal/internal/handler/dto/response"
	"transfer-portal/internal/pkg/config"
	"transfer-portal/internal/usecase"
	"transfer-portal/internal/usecase/queries"
	"transfer-portal/tests/common/httptest"
	usecasemock "transfer-portal/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockAuth *usecasemock.MockAuthUseCase
	handler  *api.AuthHandler
	userID   uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockAuth = usecasemock.NewMockAuthUseCase(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockAuth, config.NewTestConfig())
	s.userID = uuid.New()

	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/me", func(c *gin.Context) {
		// Stand-in for the auth middleware.
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.userID)
		}
		s.handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestLogin() {
	body := map[string]any{"email": "ops@agency.example", "password": "password123"}

	s.Run("successful login sets the token cookie", func() {
		view := &queries.AuthorizedUserView{
			ID:       s.userID,
			Email:    "ops@agency.example",
			Role:     "agency",
			IsActive: true,
		}
		s.mockAuth.EXPECT().
			Login(gomock.Any(), "ops@agency.example", "password123").
			Return("test-jwt-token", view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", body, "")

		var resp resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("test-jwt-token", resp.AccessToken)
		s.Equal("agency", resp.User.Role)

		cookie := httptest.ExtractCookie(w, "access_token")
		s.Require().NotNil(cookie)
		s.Equal("test-jwt-token", cookie.Value)
		s.True(cookie.HttpOnly)
	})

	s.Run("wrong password", func() {
		s.mockAuth.EXPECT().
			Login(gomock.Any(), "ops@agency.example", "password123").
			Return("", nil, usecase.ErrInvalidCredentials)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("inactive account", func() {
		s.mockAuth.EXPECT().
			Login(gomock.Any(), "ops@agency.example", "password123").
			Return("", nil, usecase.ErrUserInactive)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Account is inactive")
	})

	s.Run("malformed body", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", map[string]any{"email": "not-an-email"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "")
	s.Equal(http.StatusNoContent, w.Code)

	cookie := httptest.ExtractCookie(w, "access_token")
	s.Require().NotNil(cookie)
	s.Empty(cookie.Value)
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("returns the current user", func() {
		view := &queries.AuthorizedUserView{ID: s.userID, Email: "ops@agency.example", Role: "agency", IsActive: true}
		s.mockAuth.EXPECT().GetCurrentUser(gomock.Any(), s.userID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "test-jwt-token")

		var resp queries.AuthorizedUserView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(s.userID, resp.ID)
	})

	s.Run("unauthenticated", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "User not authenticated")
	})

	s.Run("user vanished", func() {
		s.mockAuth.EXPECT().GetCurrentUser(gomock.Any(), s.userID).Return(nil, usecase.ErrUserNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "test-jwt-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "User not found")
	})
}
