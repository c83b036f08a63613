package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"numcheck/internal/access/models"
	"numcheck/internal/access/service"
	"numcheck/internal/access/store/operator"
	sessionstore "numcheck/internal/access/store/session"
	"numcheck/internal/platform/logger"
	"numcheck/pkg/testutil"
)

// capturingSessions records what the service writes to the access log.
type capturingSessions struct {
	*sessionstore.InMemory
	created []models.Session
}

func (c *capturingSessions) Create(ctx context.Context, s *models.Session) error {
	c.created = append(c.created, *s)
	return c.InMemory.Create(ctx, s)
}

func TestOperatorAccessFlow(t *testing.T) {
	sessions := &capturingSessions{InMemory: sessionstore.NewInMemory()}
	svc, err := service.New(operator.NewInMemory(), sessions, service.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	require.NoError(t, svc.EnsureOperator(context.Background(), "user1", "user123"))

	router := chi.NewRouter()
	New(svc, logger.Discard()).Register(router)

	loginAt := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	var sessionID string

	testutil.Given(t, "a seeded operator", func(t *testing.T) {
		testutil.When(t, "they log in from a proxied address", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/login", LoginRequest{Username: "user1", Password: "user123"})
			req = testutil.WithClientIP(req, "198.51.100.23")
			req = testutil.WithRequestTime(req, loginAt)
			req = testutil.WithRequestID(req, "req-login")
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "an active session is recorded with the origin address", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				sessionID = testutil.UnmarshalResponse[LoginResponse](t, rr).SessionID
				require.Len(t, sessions.created, 1)
				got := sessions.created[0]
				assert.Equal(t, sessionID, got.ID.String())
				assert.Equal(t, "198.51.100.23", got.IPAddress)
				assert.True(t, loginAt.Equal(got.LoginTime))
				assert.Equal(t, models.SessionStatusActive, got.Status)
			})
		})

		testutil.When(t, "they log out twice", func(t *testing.T) {
			logout := func() int {
				return testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/logout",
					LogoutRequest{SessionID: sessionID})).Code
			}

			testutil.Then(t, "only the first logout succeeds", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, logout())
				assert.Equal(t, http.StatusBadRequest, logout())
			})
		})
	})
}
