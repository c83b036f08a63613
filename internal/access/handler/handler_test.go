package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"numcheck/internal/access/handler/mocks"
	"numcheck/internal/access/models"
	"numcheck/internal/platform/logger"
	dErrors "numcheck/pkg/domain-errors"
	"numcheck/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type AccessHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestAccessHandlerSuite(t *testing.T) {
	suite.Run(t, new(AccessHandlerSuite))
}

func (s *AccessHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, logger.Discard()).Register(s.router)
}

func (s *AccessHandlerSuite) TestLogin() {
	s.Run("returns the session id", func() {
		id := uuid.New()
		s.service.EXPECT().Login(gomock.Any(), "admin", "admin123").
			Return(&models.Session{ID: id, Status: models.SessionStatusActive}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/login",
			LoginRequest{Username: "admin", Password: "admin123"}))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[LoginResponse](s.T(), rr)
		s.True(resp.Success)
		s.Equal("Login successful.", resp.Message)
		s.Equal(id.String(), resp.SessionID)
	})

	s.Run("invalid credentials are unauthorized", func() {
		s.service.EXPECT().Login(gomock.Any(), "admin", "wrong").
			Return(nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid username or password."))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/login",
			LoginRequest{Username: "admin", Password: "wrong"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
		testutil.AssertJSONContains(s.T(), rr, "success", false)
		testutil.AssertJSONContains(s.T(), rr, "message", "Invalid username or password.")
	})

	s.Run("missing fields are a bad request", func() {
		s.service.EXPECT().Login(gomock.Any(), "", "").
			Return(nil, dErrors.New(dErrors.CodeBadRequest, "Username and password are required."))

		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/login", `{}`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("malformed body never reaches the service", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/login", `{`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("store failures hide their cause", func() {
		s.service.EXPECT().Login(gomock.Any(), "admin", "admin123").
			Return(nil, dErrors.Wrap(errors.New("connection refused"), dErrors.CodeInternal, "Database error."))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/login",
			LoginRequest{Username: "admin", Password: "admin123"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, "internal_error")
		s.NotContains(rr.Body.String(), "connection refused")
	})
}

func (s *AccessHandlerSuite) TestLogout() {
	id := uuid.NewString()

	s.Run("closes the session", func() {
		s.service.EXPECT().Logout(gomock.Any(), id).Return(nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/logout",
			LogoutRequest{SessionID: id}))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[LogoutResponse](s.T(), rr)
		s.True(resp.Success)
		s.Equal("Logout successful.", resp.Message)
	})

	s.Run("second logout has no active session", func() {
		s.service.EXPECT().Logout(gomock.Any(), id).
			Return(dErrors.New(dErrors.CodeBadRequest, "No active session found for this session ID."))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/logout",
			LogoutRequest{SessionID: id}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
		testutil.AssertJSONContains(s.T(), rr, "message", "No active session found for this session ID.")
	})
}
