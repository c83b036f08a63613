// Package service implements the bulk verification pipeline: one sequential
// pass over a batch of numbers against the single messaging session.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"numcheck/internal/platform/logger"
	"numcheck/internal/verification/metrics"
	"numcheck/internal/verification/models"
	"numcheck/internal/verification/ports"
	dErrors "numcheck/pkg/domain-errors"
	"numcheck/pkg/requestcontext"
)

// Type aliases for shared interfaces.
type (
	Gate      = ports.ReadinessGate
	Checker   = ports.Checker
	Lock      = ports.SessionLock
	Store     = ports.ResultStore
	Publisher = ports.ResultPublisher
)

const (
	tracerName          = "numcheck/verification"
	defaultCheckTimeout = 30 * time.Second
)

var (
	// ErrEmptyBatch rejects a batch with no rows before any work starts.
	ErrEmptyBatch = dErrors.New(dErrors.CodeValidation, "The uploaded file contains no phone numbers.")
	// ErrSessionNotReady rejects a batch while the session is not READY.
	ErrSessionNotReady = dErrors.New(dErrors.CodeUnavailable, "Messaging session is not ready. Pair the session and try again.")
)

type Service struct {
	gate         Gate
	checker      Checker
	lock         Lock
	store        Store
	publisher    Publisher
	logger       *slog.Logger
	metrics      *metrics.Metrics
	checkTimeout time.Duration
	suffix       string
	clock        func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPublisher streams every persisted result.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithCheckTimeout bounds a single registration query.
func WithCheckTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.checkTimeout = d
		}
	}
}

// WithAddressSuffix overrides the network address domain.
func WithAddressSuffix(suffix string) Option {
	return func(s *Service) {
		if suffix != "" {
			s.suffix = suffix
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func New(gate Gate, checker Checker, lock Lock, store Store, opts ...Option) (*Service, error) {
	if gate == nil {
		return nil, fmt.Errorf("readiness gate is required")
	}
	if checker == nil {
		return nil, fmt.Errorf("registration checker is required")
	}
	if lock == nil {
		return nil, fmt.Errorf("session lock is required")
	}
	if store == nil {
		return nil, fmt.Errorf("result store is required")
	}

	svc := &Service{
		gate:         gate,
		checker:      checker,
		lock:         lock,
		store:        store,
		logger:       logger.Discard(),
		checkTimeout: defaultCheckTimeout,
		suffix:       models.AddressSuffix,
		clock:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// VerifyBatch checks every number in order and returns exactly one result
// per row. It fails upfront, with no side effects, on an empty batch or
// when the session is not ready. Once started, a batch always runs to the
// end: rows checked after the session stops being ready are CHECK_FAILED.
func (s *Service) VerifyBatch(ctx context.Context, numbers []string) (*models.BatchResult, error) {
	requestID := requestcontext.RequestID(ctx)

	if len(numbers) == 0 {
		s.metrics.IncrementBatch("rejected_empty")
		return nil, ErrEmptyBatch
	}
	if !s.gate.Ready() {
		s.metrics.IncrementBatch("rejected_not_ready")
		s.logger.InfoContext(ctx, "batch rejected, session not ready",
			"request_id", requestID,
			"rows", len(numbers),
		)
		return nil, ErrSessionNotReady
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "verification.VerifyBatch",
		trace.WithAttributes(attribute.Int("batch.rows", len(numbers))),
	)
	defer span.End()

	if err := s.lock.Acquire(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "session lock not acquired")
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "Messaging session is busy.")
	}
	defer s.lock.Release()

	// The session may have dropped while another batch held it.
	if !s.gate.Ready() {
		s.metrics.IncrementBatch("rejected_not_ready")
		span.SetStatus(codes.Error, "session not ready")
		return nil, ErrSessionNotReady
	}

	s.metrics.ObserveBatchSize(len(numbers))
	s.logger.InfoContext(ctx, "batch started",
		"request_id", requestID,
		"rows", len(numbers),
	)

	// A started batch is not abandoned when the caller disconnects.
	work := context.WithoutCancel(ctx)

	out := &models.BatchResult{Results: make([]models.Result, 0, len(numbers))}
	for row, raw := range numbers {
		res := s.checkRow(work, row, raw)
		s.record(work, row, res)
		out.Results = append(out.Results, res)
		out.Summary.Add(res.Outcome)
	}

	s.metrics.IncrementBatch("completed")
	span.SetAttributes(
		attribute.Int("batch.registered", out.Summary.Registered),
		attribute.Int("batch.not_registered", out.Summary.NotRegistered),
		attribute.Int("batch.failed", out.Summary.Failed),
	)
	s.logger.InfoContext(ctx, "batch finished",
		"request_id", requestID,
		"rows", out.Summary.Total,
		"registered", out.Summary.Registered,
		"not_registered", out.Summary.NotRegistered,
		"failed", out.Summary.Failed,
	)
	return out, nil
}

func (s *Service) checkRow(ctx context.Context, row int, raw string) models.Result {
	res := models.Result{
		RawNumber: raw,
		Address:   models.DeriveAddress(raw, s.suffix),
	}

	start := s.clock()
	outcome, queried := s.query(ctx, row, res)
	res.Outcome = outcome
	res.CheckedAt = s.clock().UTC()
	s.metrics.ObserveCheck(string(outcome), queried, res.CheckedAt.Sub(start))
	return res
}

// query never fails: every problem becomes CHECK_FAILED. queried reports
// whether the session was actually asked.
func (s *Service) query(ctx context.Context, row int, res models.Result) (models.Outcome, bool) {
	if res.Address == "" {
		s.logger.WarnContext(ctx, "blank number, not checked", "row", row)
		return models.OutcomeCheckFailed, false
	}
	if !s.gate.Ready() {
		s.logger.WarnContext(ctx, "session not ready, number not checked",
			"row", row,
			"number", res.RawNumber,
		)
		return models.OutcomeCheckFailed, false
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "verification.CheckRegistered",
		trace.WithAttributes(attribute.Int("row", row)),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.checkTimeout)
	defer cancel()

	registered, err := s.safeCheck(ctx, res.Address)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "registration query failed")
		s.logger.WarnContext(ctx, "registration query failed",
			"row", row,
			"number", res.RawNumber,
			"error", err,
		)
		return models.OutcomeCheckFailed, true
	}
	if registered {
		return models.OutcomeRegistered, true
	}
	return models.OutcomeNotRegistered, true
}

func (s *Service) safeCheck(ctx context.Context, address string) (registered bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("registration query panicked: %v", r)
		}
	}()
	return s.checker.CheckRegistered(ctx, address)
}

// record persists one result and then publishes it. Failures are logged
// and counted; the result is still returned to the caller.
func (s *Service) record(ctx context.Context, row int, res models.Result) {
	rec, err := s.store.Append(ctx, res)
	if err != nil {
		s.metrics.IncrementPersistFailure()
		s.logger.ErrorContext(ctx, "failed to persist verification result",
			"row", row,
			"number", res.RawNumber,
			"outcome", string(res.Outcome),
			"error", err,
		)
		return
	}
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, rec); err != nil {
		s.metrics.IncrementPublishFailure()
		s.logger.WarnContext(ctx, "failed to publish verification result",
			"id", rec.ID,
			"error", err,
		)
	}
}

// ListResults returns every persisted result, most recent first.
func (s *Service) ListResults(ctx context.Context) ([]models.Record, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list results")
	}
	return records, nil
}

// DeleteResults removes the given records and returns how many existed.
func (s *Service) DeleteResults(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "No IDs provided.")
	}

	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	deleted, err := s.store.DeleteByIDs(ctx, unique)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete results")
	}
	s.metrics.AddDeleted(deleted)
	s.logger.InfoContext(ctx, "results deleted",
		"request_id", requestcontext.RequestID(ctx),
		"requested", len(unique),
		"deleted", deleted,
	)
	return deleted, nil
}
