package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"numcheck/internal/session"
	"numcheck/internal/session/sessiontest"
	"numcheck/internal/verification/metrics"
	"numcheck/internal/verification/models"
	"numcheck/internal/verification/ports/mocks"
	"numcheck/internal/verification/service"
	"numcheck/internal/verification/store"
	dErrors "numcheck/pkg/domain-errors"
)

//go:generate mockgen -source=../ports/ports.go -destination=../ports/mocks/mocks.go -package=mocks

type gate struct{ ready atomic.Bool }

func (g *gate) Ready() bool { return g.ready.Load() }

type ServiceSuite struct {
	suite.Suite
	ctx   context.Context
	gate  *gate
	conn  *sessiontest.FakeConnection
	guard *session.Guard
	store *store.InMemory
	svc   *service.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.gate = &gate{}
	s.gate.ready.Store(true)
	s.conn = sessiontest.NewFakeConnection()
	s.guard = session.NewGuard()
	s.store = store.NewInMemory()
	s.svc = s.newService(s.store)
}

func (s *ServiceSuite) newService(st service.Store, opts ...service.Option) *service.Service {
	opts = append([]service.Option{
		service.WithMetrics(metrics.NewWithRegisterer(prometheus.NewRegistry())),
		service.WithCheckTimeout(100 * time.Millisecond),
	}, opts...)
	svc, err := service.New(s.gate, s.conn, s.guard, st, opts...)
	s.Require().NoError(err)
	return svc
}

func outcomes(results []models.Result) []models.Outcome {
	out := make([]models.Outcome, 0, len(results))
	for _, r := range results {
		out = append(out, r.Outcome)
	}
	return out
}

func (s *ServiceSuite) TestNewRequiresCollaborators() {
	_, err := service.New(nil, s.conn, s.guard, s.store)
	s.Error(err)
	_, err = service.New(s.gate, nil, s.guard, s.store)
	s.Error(err)
	_, err = service.New(s.gate, s.conn, nil, s.store)
	s.Error(err)
	_, err = service.New(s.gate, s.conn, s.guard, nil)
	s.Error(err)
}

func (s *ServiceSuite) TestUpfrontRejections() {
	s.Run("empty batch performs no checks", func() {
		_, err := s.svc.VerifyBatch(s.ctx, nil)
		s.ErrorIs(err, service.ErrEmptyBatch)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Empty(s.conn.Checked())
	})

	s.Run("not ready performs no checks and no writes", func() {
		s.gate.ready.Store(false)
		defer s.gate.ready.Store(true)

		_, err := s.svc.VerifyBatch(s.ctx, []string{"+910000000001"})
		s.ErrorIs(err, service.ErrSessionNotReady)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
		s.Empty(s.conn.Checked())

		records, _ := s.store.ListAll(s.ctx)
		s.Empty(records)
	})
}

func (s *ServiceSuite) TestRegisteredAndNotRegistered() {
	s.conn.SetCheck(func(_ context.Context, call int, _ string) (bool, error) {
		return call == 0, nil
	})

	out, err := s.svc.VerifyBatch(s.ctx, []string{"+910000000001", "+910000000002"})
	s.Require().NoError(err)

	s.Equal([]models.Outcome{models.OutcomeRegistered, models.OutcomeNotRegistered}, outcomes(out.Results))
	s.Equal("+910000000001", out.Results[0].RawNumber)
	s.Equal("910000000001@c.us", out.Results[0].Address)
	s.Equal([]string{"910000000001@c.us", "910000000002@c.us"}, s.conn.Checked())
	s.Equal(models.Summary{Total: 2, Registered: 1, NotRegistered: 1}, out.Summary)

	records, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("+910000000002", records[0].RawNumber, "most recent first")
	s.Equal("+910000000001", records[1].RawNumber)
}

func (s *ServiceSuite) TestSingleRowFailureIsIsolated() {
	s.conn.SetCheck(func(_ context.Context, call int, _ string) (bool, error) {
		if call == 1 {
			return false, errors.New("evaluation timed out")
		}
		return true, nil
	})

	out, err := s.svc.VerifyBatch(s.ctx, []string{"1", "2", "3"})
	s.Require().NoError(err)
	s.Equal([]models.Outcome{
		models.OutcomeRegistered,
		models.OutcomeCheckFailed,
		models.OutcomeRegistered,
	}, outcomes(out.Results))
}

func (s *ServiceSuite) TestPanickingCheckBecomesCheckFailed() {
	s.conn.SetCheck(func(_ context.Context, call int, _ string) (bool, error) {
		if call == 0 {
			panic("page crashed")
		}
		return false, nil
	})

	out, err := s.svc.VerifyBatch(s.ctx, []string{"1", "2"})
	s.Require().NoError(err)
	s.Equal([]models.Outcome{models.OutcomeCheckFailed, models.OutcomeNotRegistered}, outcomes(out.Results))
}

func (s *ServiceSuite) TestHangingCheckIsBounded() {
	s.conn.SetCheck(func(ctx context.Context, call int, _ string) (bool, error) {
		if call == 0 {
			<-ctx.Done()
			return false, ctx.Err()
		}
		return true, nil
	})

	out, err := s.svc.VerifyBatch(s.ctx, []string{"1", "2"})
	s.Require().NoError(err)
	s.Equal([]models.Outcome{models.OutcomeCheckFailed, models.OutcomeRegistered}, outcomes(out.Results))
}

func (s *ServiceSuite) TestDisconnectMidBatchMarksRemainingRowsFailed() {
	s.conn.SetCheck(func(_ context.Context, call int, _ string) (bool, error) {
		if call == 0 {
			s.gate.ready.Store(false)
		}
		return true, nil
	})

	out, err := s.svc.VerifyBatch(s.ctx, []string{"1", "2", "3"})
	s.Require().NoError(err)
	s.Equal([]models.Outcome{
		models.OutcomeRegistered,
		models.OutcomeCheckFailed,
		models.OutcomeCheckFailed,
	}, outcomes(out.Results))
	s.Len(s.conn.Checked(), 1, "no queries after the session dropped")

	records, _ := s.store.ListAll(s.ctx)
	s.Len(records, 3)
}

func (s *ServiceSuite) TestBlankRowIsRecordedWithoutQuery() {
	out, err := s.svc.VerifyBatch(s.ctx, []string{"  ", "+910000000001"})
	s.Require().NoError(err)
	s.Equal([]models.Outcome{models.OutcomeCheckFailed, models.OutcomeRegistered}, outcomes(out.Results))
	s.Equal([]string{"910000000001@c.us"}, s.conn.Checked())
}

func (s *ServiceSuite) TestCallerCancellationDoesNotAbortStartedBatch() {
	ctx, cancel := context.WithCancel(s.ctx)
	s.conn.SetCheck(func(_ context.Context, call int, _ string) (bool, error) {
		if call == 0 {
			cancel()
		}
		return true, nil
	})

	out, err := s.svc.VerifyBatch(ctx, []string{"1", "2"})
	s.Require().NoError(err)
	s.Equal([]models.Outcome{models.OutcomeRegistered, models.OutcomeRegistered}, outcomes(out.Results))
}

func (s *ServiceSuite) TestBatchesAreSerialized() {
	s.Require().True(s.guard.TryAcquire())

	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Millisecond)
	defer cancel()
	_, err := s.svc.VerifyBatch(ctx, []string{"1"})
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.Empty(s.conn.Checked())

	s.guard.Release()
	_, err = s.svc.VerifyBatch(s.ctx, []string{"1"})
	s.NoError(err)
}

func (s *ServiceSuite) TestPersistenceFailureKeepsResult() {
	ctrl := gomock.NewController(s.T())
	st := mocks.NewMockResultStore(ctrl)
	pub := mocks.NewMockResultPublisher(ctrl)
	svc := s.newService(st, service.WithPublisher(pub))

	gomock.InOrder(
		st.EXPECT().Append(gomock.Any(), gomock.Any()).Return(models.Record{}, errors.New("disk full")),
		st.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r models.Result) (models.Record, error) {
				return models.Record{ID: 7, Result: r}, nil
			}),
	)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec models.Record) error {
			s.EqualValues(7, rec.ID)
			return errors.New("broker down")
		})

	out, err := svc.VerifyBatch(s.ctx, []string{"1", "2"})
	s.Require().NoError(err)
	s.Len(out.Results, 2)
}

func (s *ServiceSuite) TestDeleteResults() {
	a, _ := s.store.Append(s.ctx, models.Result{RawNumber: "1", Outcome: models.OutcomeRegistered, CheckedAt: time.Now()})
	b, _ := s.store.Append(s.ctx, models.Result{RawNumber: "2", Outcome: models.OutcomeRegistered, CheckedAt: time.Now()})

	s.Run("rejects an empty set", func() {
		_, err := s.svc.DeleteResults(s.ctx, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("duplicates count once", func() {
		n, err := s.svc.DeleteResults(s.ctx, []int64{a.ID, a.ID, 404})
		s.Require().NoError(err)
		s.EqualValues(1, n)
	})

	s.Run("lists what is left", func() {
		records, err := s.svc.ListResults(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(records, 1)
		s.Equal(b.ID, records[0].ID)
	})
}

func (s *ServiceSuite) TestStoreErrorsAreInternal() {
	ctrl := gomock.NewController(s.T())
	st := mocks.NewMockResultStore(ctrl)
	svc := s.newService(st)

	st.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("db gone"))
	_, err := svc.ListResults(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	st.EXPECT().DeleteByIDs(gomock.Any(), []int64{1}).Return(int64(0), errors.New("db gone"))
	_, err = svc.DeleteResults(s.ctx, []int64{1})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
