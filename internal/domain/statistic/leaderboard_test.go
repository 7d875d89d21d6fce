package statistic

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/tr10-lab/backend/internal/repository"
	"github.com/tr10-lab/backend/pkg/testutil"
)

func Test_leaderboard_GetLeaderBoard_loadsFromDBOnMiss(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertMembers(ctx)
	memberRepo := repository.NewMemberRepository()

	require.NoError(t, memberRepo.IncreaseTextXP(ctx, testutil.Community1, testutil.User1, 10))
	require.NoError(t, memberRepo.IncreaseVoiceXP(ctx, testutil.Community1, testutil.User2, 30))

	loaded := map[string]float64{}
	redisClient := &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return false, nil
		},
		ZAddFunc: func(ctx context.Context, key string, z redis.Z) error {
			if key == "community1:xp:all" {
				loaded[z.Member.(string)] = z.Score
			}

			return nil
		},
		ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
			return []redis.Z{
				{Member: testutil.User2, Score: 30},
				{Member: testutil.User1, Score: 10},
			}, nil
		},
	}

	l := New(memberRepo, redisClient)
	board, err := l.GetLeaderBoard(ctx, testutil.Community1, PeriodAll, 0, 10)
	require.NoError(t, err)

	// The miss rebuilt the sorted set from the store.
	require.Equal(t, map[string]float64{
		testutil.User1: 10,
		testutil.User2: 30,
		testutil.User3: 0,
	}, loaded)

	require.Len(t, board, 2)
	require.Equal(t, testutil.User2, board[0].UserID)
	require.Equal(t, int64(30), board[0].Value)
	require.Equal(t, 1, board[0].CurrentRank)
	require.Equal(t, 2, board[1].CurrentRank)
}

func Test_leaderboard_GetLeaderBoard_invalidPeriod(t *testing.T) {
	ctx := testutil.MockContext()
	l := New(repository.NewMemberRepository(), &testutil.MockRedisClient{})

	_, err := l.GetLeaderBoard(ctx, testutil.Community1, "month", 0, 10)
	require.Error(t, err)
}

func Test_leaderboard_ChangeXPLeaderboard_skipsColdKeys(t *testing.T) {
	ctx := testutil.MockContext()

	incremented := 0
	redisClient := &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return false, nil
		},
		ZIncrByFunc: func(ctx context.Context, key string, incr int64, member string) error {
			incremented++
			return nil
		},
	}

	l := New(repository.NewMemberRepository(), redisClient)
	err := l.ChangeXPLeaderboard(ctx, 10, time.Now(), testutil.User1, testutil.Community1)
	require.NoError(t, err)

	// Cold keys are rebuilt on the next read instead of updated blindly.
	require.Zero(t, incremented)
}

func Test_leaderboard_ChangeXPLeaderboard_updatesAllPeriods(t *testing.T) {
	ctx := testutil.MockContext()

	keys := []string{}
	redisClient := &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return true, nil
		},
		ZIncrByFunc: func(ctx context.Context, key string, incr int64, member string) error {
			keys = append(keys, key)
			return nil
		},
	}

	l := New(repository.NewMemberRepository(), redisClient)

	now := time.Now()
	err := l.ChangeXPLeaderboard(ctx, 10, now, testutil.User1, testutil.Community1)
	require.NoError(t, err)

	require.Len(t, keys, 3)
	require.Contains(t, keys, "community1:xp:all")
}
