package statistic

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tr10-lab/backend/internal/model"
	"github.com/tr10-lab/backend/internal/repository"
	"github.com/tr10-lab/backend/pkg/errorx"
	"github.com/tr10-lab/backend/pkg/xcontext"
	"github.com/tr10-lab/backend/pkg/xredis"
)

type Leaderboard interface {
	GetLeaderBoard(
		ctx context.Context,
		communityID, period string,
		offset, limit int,
	) ([]model.MemberStatistic, error)

	GetRank(
		ctx context.Context,
		userID, communityID, period string,
	) (uint64, error)

	ChangeXPLeaderboard(
		ctx context.Context,
		value int64,
		creditedAt time.Time,
		userID, communityID string,
	) error
}

type leaderboard struct {
	memberRepo  repository.MemberRepository
	redisClient xredis.Client
}

func New(
	memberRepo repository.MemberRepository,
	redisClient xredis.Client,
) *leaderboard {
	return &leaderboard{memberRepo: memberRepo, redisClient: redisClient}
}

func (l *leaderboard) GetLeaderBoard(
	ctx context.Context,
	communityID, period string,
	offset, limit int,
) ([]model.MemberStatistic, error) {
	key, err := redisKeyXPLeaderBoard(communityID, period, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid period: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid period")
	}

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadLeaderboardFromDB(ctx, communityID); err != nil {
			return nil, err
		}
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	board := []model.MemberStatistic{}
	for i, z := range results {
		board = append(board, model.MemberStatistic{
			UserID:      z.Member.(string),
			Value:       int64(z.Score),
			CurrentRank: offset + i + 1,
		})
	}

	return board, nil
}

func (l *leaderboard) GetRank(
	ctx context.Context,
	userID, communityID, period string,
) (uint64, error) {
	key, err := redisKeyXPLeaderBoard(communityID, period, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid period: %v", err)
		return 0, errorx.New(errorx.BadRequest, "Invalid period")
	}

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return 0, errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadLeaderboardFromDB(ctx, communityID); err != nil {
			return 0, err
		}
	}

	rank, err := l.redisClient.ZRevRank(ctx, key, userID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get rev rank redis: %v", err)
		return 0, nil
	}

	return rank + 1, nil
}

func (l *leaderboard) ChangeXPLeaderboard(
	ctx context.Context,
	value int64,
	creditedAt time.Time,
	userID, communityID string,
) error {
	for _, period := range []string{PeriodAll, PeriodDay, PeriodWeek} {
		err := l.changeLeaderboard(ctx, value, creditedAt, userID, communityID, period)
		if err != nil {
			return err
		}
	}

	return nil
}

func (l *leaderboard) changeLeaderboard(
	ctx context.Context,
	value int64,
	creditedAt time.Time,
	userID, communityID, period string,
) error {
	key, err := redisKeyXPLeaderBoard(communityID, period, creditedAt)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid period: %v", err)
		return errorx.New(errorx.BadRequest, "Invalid period")
	}

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return errorx.Unknown
	}

	// If the key didn't exist in redis, no need to update.
	if !ok {
		return nil
	}

	if err := l.redisClient.ZIncrBy(ctx, key, value, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call ZIncrBy redis: %v", err)
	}

	return nil
}

func (l *leaderboard) loadLeaderboardFromDB(ctx context.Context, communityID string) error {
	members, err := l.memberRepo.GetByCommunity(ctx, communityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load members from database: %v", err)
		return errorx.Unknown
	}

	now := time.Now()
	for _, m := range members {
		for period, score := range map[string]int64{
			PeriodAll:  m.TotalXP(),
			PeriodDay:  m.TextDay + m.VoiceDay,
			PeriodWeek: m.TextWeek + m.VoiceWeek,
		} {
			key, err := redisKeyXPLeaderBoard(communityID, period, now)
			if err != nil {
				return errorx.Unknown
			}

			err = l.redisClient.ZAdd(ctx, key, redis.Z{Member: m.UserID, Score: float64(score)})
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
				return errorx.Unknown
			}
		}
	}

	return nil
}
