package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"numcheck/internal/verification/models"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func result(number string, outcome models.Outcome, at time.Time) models.Result {
	return models.Result{
		RawNumber: number,
		Address:   models.DeriveAddress(number, models.AddressSuffix),
		Outcome:   outcome,
		CheckedAt: at,
	}
}

func (s *InMemoryStoreSuite) TestAppendAssignsIncreasingIDs() {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	first, err := s.store.Append(s.ctx, result("+910000000001", models.OutcomeRegistered, base))
	s.Require().NoError(err)
	second, err := s.store.Append(s.ctx, result("+910000000002", models.OutcomeNotRegistered, base))
	s.Require().NoError(err)

	s.Greater(second.ID, first.ID)

	s.Run("identifiers are not reused after deletion", func() {
		n, err := s.store.DeleteByIDs(s.ctx, []int64{second.ID})
		s.Require().NoError(err)
		s.EqualValues(1, n)

		third, err := s.store.Append(s.ctx, result("+910000000003", models.OutcomeCheckFailed, base))
		s.Require().NoError(err)
		s.Greater(third.ID, second.ID)
	})
}

func (s *InMemoryStoreSuite) TestListAllMostRecentFirst() {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	older, _ := s.store.Append(s.ctx, result("1", models.OutcomeRegistered, base))
	newer, _ := s.store.Append(s.ctx, result("2", models.OutcomeRegistered, base.Add(time.Minute)))
	sameTime, _ := s.store.Append(s.ctx, result("3", models.OutcomeRegistered, base.Add(time.Minute)))

	records, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal([]int64{sameTime.ID, newer.ID, older.ID}, []int64{records[0].ID, records[1].ID, records[2].ID})
}

func (s *InMemoryStoreSuite) TestDeleteByIDs() {
	base := time.Now().UTC()
	a, _ := s.store.Append(s.ctx, result("1", models.OutcomeRegistered, base))
	b, _ := s.store.Append(s.ctx, result("2", models.OutcomeRegistered, base))
	c, _ := s.store.Append(s.ctx, result("3", models.OutcomeRegistered, base))

	s.Run("removes exactly the matching records", func() {
		n, err := s.store.DeleteByIDs(s.ctx, []int64{a.ID, c.ID, 999})
		s.Require().NoError(err)
		s.EqualValues(2, n)

		records, _ := s.store.ListAll(s.ctx)
		s.Require().Len(records, 1)
		s.Equal(b.ID, records[0].ID)
	})

	s.Run("unknown identifiers are a no-op", func() {
		n, err := s.store.DeleteByIDs(s.ctx, []int64{12345})
		s.Require().NoError(err)
		s.Zero(n)

		records, _ := s.store.ListAll(s.ctx)
		s.Len(records, 1)
	})
}
