package score_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/tomz197/invaders/internal/clock"
	"github.com/tomz197/invaders/internal/errors"
	"github.com/tomz197/invaders/internal/score"
	"github.com/tomz197/invaders/internal/testutils"
)

type RedisStoreTestSuite struct {
	suite.Suite
	mr    *miniredis.Miniredis
	clock *clock.Mock
	store *score.RedisStore
	ids   int
	ctx   context.Context
}

func TestRedisStoreTestSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}

func (s *RedisStoreTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	s.ids = 0
	s.ctx = context.Background()
	s.clock = clock.NewMock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))

	store, err := score.NewRedisStore(&score.RedisConfig{
		Client: client,
		Clock:  s.clock,
		NewID: func() string {
			s.ids++
			return fmt.Sprintf("rec-%03d", s.ids)
		},
	})
	s.Require().NoError(err)
	s.store = store
}

func (s *RedisStoreTestSuite) submit(name string, points int) *score.Record {
	rec, err := s.store.SubmitScore(s.ctx, name, points)
	s.Require().NoError(err)
	s.clock.Advance(time.Second)
	return rec
}

func (s *RedisStoreTestSuite) TestNewRedisStoreValidation() {
	_, err := score.NewRedisStore(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = score.NewRedisStore(&score.RedisConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisStoreTestSuite) TestSubmitScoreComputesCoins() {
	rec := s.submit("  alice  ", 1234)

	s.Equal("rec-001", rec.ID)
	s.Equal("alice", rec.Username)
	s.Equal(1234, rec.Score)
	s.Equal(123, rec.Coins)
	s.Equal(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), rec.CreatedAt)

	s.True(s.mr.Exists("score:record:rec-001"))
	members, err := s.mr.ZMembers("score:leaderboard")
	s.Require().NoError(err)
	s.Equal([]string{"rec-001"}, members)
}

func (s *RedisStoreTestSuite) TestSubmitScoreClamps() {
	s.Equal(0, s.submit("alice", -50).Score)

	rec := s.submit("alice", score.MaxScore+1)
	s.Equal(score.MaxScore, rec.Score)
	s.Equal(score.MaxScore/score.CoinDivisor, rec.Coins)
}

func (s *RedisStoreTestSuite) TestSubmitScoreRejectsBadUsernames() {
	for _, name := range []string{"", "ab", "   ab   ", "abcdefghijklmnopqrstuvwxyz0123456"} {
		_, err := s.store.SubmitScore(s.ctx, name, 100)
		s.True(errors.IsInvalidArgument(err), "username %q", name)
	}
	s.False(s.mr.Exists("score:leaderboard"))
}

func (s *RedisStoreTestSuite) TestSubmitScoreUnavailable() {
	s.mr.SetError("connection refused")
	defer s.mr.SetError("")

	_, err := s.store.SubmitScore(s.ctx, "alice", 100)
	s.True(errors.IsUnavailable(err))
}

func (s *RedisStoreTestSuite) TestTopOrdersByScoreThenTime() {
	s.submit("carol", 500)
	s.submit("alice", 900)
	s.submit("bob", 500)
	s.submit("dave", 100)

	top, err := s.store.Top(s.ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(top, 3)

	s.Equal("alice", top[0].Username)
	s.Equal("carol", top[1].Username, "earlier submission wins the tie")
	s.Equal("bob", top[2].Username)
}

func (s *RedisStoreTestSuite) TestTopTieAtCutoff() {
	// Later ids sort higher in the sorted set for equal scores, so the
	// cutoff must still pick the earliest records.
	for i := 0; i < 12; i++ {
		s.submit(fmt.Sprintf("player%02d", i), 300)
	}

	top, err := s.store.Top(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(top, score.DefaultTopN)
	for i, rec := range top {
		s.Equal(fmt.Sprintf("player%02d", i), rec.Username)
	}
}

func (s *RedisStoreTestSuite) TestTopEmpty() {
	top, err := s.store.Top(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(top)
}

func (s *RedisStoreTestSuite) TestTopSkipsMissingRecords() {
	s.submit("alice", 100)
	s.submit("bob", 200)
	s.mr.Del("score:record:rec-002")

	top, err := s.store.Top(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal("alice", top[0].Username)
}

func (s *RedisStoreTestSuite) TestEquippedDefaults() {
	c, err := s.store.Equipped(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(score.CosmeticDefault, c)

	c, err = s.store.Equipped(s.ctx, "")
	s.Require().NoError(err)
	s.Equal(score.CosmeticDefault, c)

	s.mr.HSet("cosmetic:equipped", "alice", "plaid")
	c, err = s.store.Equipped(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(score.CosmeticDefault, c)
}

func (s *RedisStoreTestSuite) TestEquipRoundTrip() {
	s.Require().NoError(s.store.Equip(s.ctx, " alice ", score.CosmeticViolet))

	c, err := s.store.Equipped(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(score.CosmeticViolet, c)
	s.Equal("violet", s.mr.HGet("cosmetic:equipped", "alice"))
}

func (s *RedisStoreTestSuite) TestEquipValidation() {
	err := s.store.Equip(s.ctx, "alice", score.Cosmetic("plaid"))
	s.True(errors.IsInvalidArgument(err))

	err = s.store.Equip(s.ctx, "al", score.CosmeticRed)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisStoreTestSuite) TestDial() {
	store, closeFn, err := score.Dial(s.ctx, s.mr.Addr())
	s.Require().NoError(err)
	defer func() { _ = closeFn() }()

	_, err = store.SubmitScore(s.ctx, "alice", 120)
	s.Require().NoError(err)
	members, err := s.mr.ZMembers("score:leaderboard")
	s.Require().NoError(err)
	s.Len(members, 1)

	_, _, err = score.Dial(s.ctx, "")
	s.True(errors.IsInvalidArgument(err))

	addr := s.mr.Addr()
	s.mr.Close()
	_, _, err = score.Dial(s.ctx, addr)
	s.True(errors.IsUnavailable(err))
}
