// Package service authenticates operators and keeps the access log of
// their sessions.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
	"golang.org/x/crypto/bcrypt"

	"numcheck/internal/access/models"
	"numcheck/internal/platform/logger"
	dErrors "numcheck/pkg/domain-errors"
	"numcheck/pkg/platform/sentinel"
	"numcheck/pkg/requestcontext"
)

// OperatorStore looks up and seeds operator accounts.
type OperatorStore interface {
	// FindByUsername returns sentinel.ErrNotFound for unknown usernames.
	FindByUsername(ctx context.Context, username string) (*models.Operator, error)
	// CreateIfMissing inserts op unless the username exists; it reports
	// whether a row was created.
	CreateIfMissing(ctx context.Context, op *models.Operator) (bool, error)
}

// SessionStore records operator sessions.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	// CloseIfActive marks an active session inactive as of at. It returns
	// sentinel.ErrNotFound when no active session has that id.
	CloseIfActive(ctx context.Context, id uuid.UUID, at time.Time) (*models.Session, error)
}

var (
	errMissingCredentials = dErrors.New(dErrors.CodeBadRequest, "Username and password are required.")
	errInvalidCredentials = dErrors.New(dErrors.CodeUnauthorized, "Invalid username or password.")
	errMissingSessionID   = dErrors.New(dErrors.CodeBadRequest, "Session ID is required.")
	errNoActiveSession    = dErrors.New(dErrors.CodeBadRequest, "No active session found for this session ID.")
)

// dummyHash is compared against when the username is unknown so both
// failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("numcheck-unknown-operator"), bcrypt.MinCost)

type Service struct {
	operators  OperatorStore
	sessions   SessionStore
	logger     *slog.Logger
	bcryptCost int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithBcryptCost sets the cost used when seeding operators.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

func New(operators OperatorStore, sessions SessionStore, opts ...Option) (*Service, error) {
	if operators == nil {
		return nil, fmt.Errorf("operator store is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	svc := &Service{
		operators:  operators,
		sessions:   sessions,
		logger:     logger.Discard(),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Login verifies credentials and opens a session recording the client
// address and request time.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errMissingCredentials
	}

	op, err := s.operators.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			s.logger.InfoContext(ctx, "login rejected", "reason", "unknown_operator")
			return nil, errInvalidCredentials
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error.")
	}
	if err := bcrypt.CompareHashAndPassword(op.PasswordHash, []byte(password)); err != nil {
		s.logger.InfoContext(ctx, "login rejected",
			"reason", "bad_password",
			"operator_id", op.ID,
		)
		return nil, errInvalidCredentials
	}

	session := &models.Session{
		ID:         uuid.New(),
		OperatorID: op.ID,
		IPAddress:  requestcontext.ClientIP(ctx),
		LoginTime:  requestcontext.Now(ctx),
		Status:     models.SessionStatusActive,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error creating session.")
	}

	s.logger.InfoContext(ctx, "operator logged in",
		"request_id", requestcontext.RequestID(ctx),
		"operator_id", op.ID,
		"ip_address", session.IPAddress,
		"client", describeClient(requestcontext.UserAgent(ctx)),
	)
	return session, nil
}

// describeClient condenses a User-Agent header to "Browser Version (OS)".
func describeClient(header string) string {
	if header == "" {
		return "unknown"
	}
	ua := useragent.New(header)
	name, version := ua.Browser()
	if name == "" {
		return "unknown"
	}
	if os := ua.OS(); os != "" {
		return fmt.Sprintf("%s %s (%s)", name, version, os)
	}
	return strings.TrimSpace(name + " " + version)
}

// Logout closes an active session. Closing it a second time fails.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return errMissingSessionID
	}
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return errNoActiveSession
	}

	closed, err := s.sessions.CloseIfActive(ctx, id, requestcontext.Now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return errNoActiveSession
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Error updating logout data.")
	}

	s.logger.InfoContext(ctx, "operator logged out",
		"request_id", requestcontext.RequestID(ctx),
		"operator_id", closed.OperatorID,
	)
	return nil
}

// EnsureOperator creates an operator with a bcrypt hash of password unless
// the username already exists. Existing passwords are left untouched.
func (s *Service) EnsureOperator(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("operator username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash operator password: %w", err)
	}
	created, err := s.operators.CreateIfMissing(ctx, &models.Operator{Username: username, PasswordHash: hash})
	if err != nil {
		return fmt.Errorf("seed operator %s: %w", username, err)
	}
	if created {
		s.logger.InfoContext(ctx, "operator seeded", "username", username)
	}
	return nil
}
