package behavior

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/luckcraft/wagercore/pkg/entities"
)

type SQLiteStoreTestSuite struct {
	suite.Suite
	store *SQLiteStore
}

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, new(SQLiteStoreTestSuite))
}

func (s *SQLiteStoreTestSuite) SetupTest() {
	store, err := NewSQLiteStore(filepath.Join(s.T().TempDir(), "behaviors.db"))
	s.Require().NoError(err)
	s.store = store
}

func (s *SQLiteStoreTestSuite) TearDownTest() {
	s.store.Close()
}

func (s *SQLiteStoreTestSuite) TestGetUnknownUserReturnsNil() {
	b, err := s.store.Get(context.Background(), "nobody")
	s.Require().NoError(err)
	s.Nil(b)
}

func (s *SQLiteStoreTestSuite) TestUpdateCreatesLazily() {
	ctx := context.Background()

	updated, err := s.store.Update(ctx, "user-1", func(b *entities.PlayerBehavior) error {
		s.Equal("user-1", b.UserID)
		s.Equal(entities.RiskLevelLow, b.RiskLevel)
		b.TotalBets = 1
		b.TotalAmount = 50
		return nil
	})
	s.Require().NoError(err)
	s.Equal(1, updated.TotalBets)

	stored, err := s.store.Get(ctx, "user-1")
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal(1, stored.TotalBets)
	s.Equal(float64(50), stored.TotalAmount)
}

func (s *SQLiteStoreTestSuite) TestUpdatePersistsAcrossUpdates() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.store.Update(ctx, "user-1", func(b *entities.PlayerBehavior) error {
			b.TotalBets++
			b.TotalAmount += 100
			return nil
		})
		s.Require().NoError(err)
	}

	stored, err := s.store.Get(ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(3, stored.TotalBets)
	s.Equal(float64(300), stored.TotalAmount)
}

func (s *SQLiteStoreTestSuite) TestSessionsRoundTrip() {
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := s.store.Update(ctx, "user-1", func(b *entities.PlayerBehavior) error {
		b.Sessions = []*entities.Session{
			{
				ID:        "s-1",
				StartedAt: start,
				LastBetAt: start.Add(5 * time.Minute),
				Bets: []entities.SessionBet{
					{Amount: 100, Won: true, Timestamp: start},
					{Amount: 200, Won: false, Timestamp: start.Add(5 * time.Minute)},
				},
				Profit: -150,
			},
			{
				ID:        "s-2",
				StartedAt: start.Add(2 * time.Hour),
				LastBetAt: start.Add(2 * time.Hour),
				Bets: []entities.SessionBet{
					{Amount: 50, Won: false, Timestamp: start.Add(2 * time.Hour)},
				},
				Profit: -50,
			},
		}
		b.RiskLevel = entities.RiskLevelMedium
		return nil
	})
	s.Require().NoError(err)

	stored, err := s.store.Get(ctx, "user-1")
	s.Require().NoError(err)
	s.Require().Len(stored.Sessions, 2)

	first := stored.Sessions[0]
	s.Equal("s-1", first.ID)
	s.Require().Len(first.Bets, 2)
	s.True(first.Bets[0].Won)
	s.Equal(float64(200), first.Bets[1].Amount)
	s.True(first.Bets[0].Timestamp.Equal(start))
	s.Equal(float64(-150), first.Profit)

	s.Equal("s-2", stored.CurrentSession().ID)
	s.Equal(float64(50), stored.CurrentSession().Loss())
	s.Equal(entities.RiskLevelMedium, stored.RiskLevel)
}

func (s *SQLiteStoreTestSuite) TestUpdateErrorLeavesStoredStateUnchanged() {
	ctx := context.Background()

	_, err := s.store.Update(ctx, "user-1", func(b *entities.PlayerBehavior) error {
		b.TotalBets = 1
		return nil
	})
	s.Require().NoError(err)

	boom := errors.New("boom")
	_, err = s.store.Update(ctx, "user-1", func(b *entities.PlayerBehavior) error {
		b.TotalBets = 99
		return boom
	})
	s.Require().ErrorIs(err, boom)

	stored, err := s.store.Get(ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(1, stored.TotalBets)
}

func (s *SQLiteStoreTestSuite) TestUsersAreIsolated() {
	ctx := context.Background()

	_, err := s.store.Update(ctx, "user-1", func(b *entities.PlayerBehavior) error {
		b.TotalBets = 1
		return nil
	})
	s.Require().NoError(err)

	_, err = s.store.Update(ctx, "user-2", func(b *entities.PlayerBehavior) error {
		b.TotalBets = 7
		return nil
	})
	s.Require().NoError(err)

	one, err := s.store.Get(ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(1, one.TotalBets)

	two, err := s.store.Get(ctx, "user-2")
	s.Require().NoError(err)
	s.Equal(7, two.TotalBets)
}
