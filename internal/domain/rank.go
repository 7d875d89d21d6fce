package domain

import (
	"context"
	"errors"

	"github.com/tr10-lab/backend/internal/domain/leveling"
	"github.com/tr10-lab/backend/internal/domain/statistic"
	"github.com/tr10-lab/backend/internal/entity"
	"github.com/tr10-lab/backend/internal/model"
	"github.com/tr10-lab/backend/internal/repository"
	"github.com/tr10-lab/backend/pkg/errorx"
	"github.com/tr10-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	defaultTopLimit  = 10
	maxTopLimit      = 50
	maxLeaderboardNo = 100
)

type RankDomain interface {
	GetRank(ctx context.Context, req *model.GetRankRequest) (*model.GetRankResponse, error)
	GetTop(ctx context.Context, req *model.GetTopRequest) (*model.GetTopResponse, error)
	GetLeaderBoard(ctx context.Context, req *model.GetLeaderBoardRequest) (*model.GetLeaderBoardResponse, error)
}

type rankDomain struct {
	memberRepo  repository.MemberRepository
	leaderboard statistic.Leaderboard
}

func NewRankDomain(
	memberRepo repository.MemberRepository,
	leaderboard statistic.Leaderboard,
) *rankDomain {
	return &rankDomain{memberRepo: memberRepo, leaderboard: leaderboard}
}

func (d *rankDomain) GetRank(
	ctx context.Context, req *model.GetRankRequest,
) (*model.GetRankResponse, error) {
	member, err := d.memberRepo.Get(ctx, req.CommunityID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Member has not earned any XP yet")
		}

		xcontext.Logger(ctx).Errorf("Cannot get member: %v", err)
		return nil, errorx.Unknown
	}

	ahead, err := d.memberRepo.CountWithMoreTotalXP(ctx, req.CommunityID, member.TotalXP())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count members ahead: %v", err)
		return nil, errorx.Unknown
	}

	curve := leveling.NewCurve(xcontext.Configs(ctx).Level)
	nextLevelXP := curve.CumulativeXP(member.Level) + curve.RequiredXP(member.Level)

	return &model.GetRankResponse{
		TextLifetime:  member.TextLifetime,
		VoiceLifetime: member.VoiceLifetime,
		TextDay:       member.TextDay,
		VoiceDay:      member.VoiceDay,
		TextWeek:      member.TextWeek,
		VoiceWeek:     member.VoiceWeek,
		TotalXP:       member.TotalXP(),
		Level:         member.Level,
		NextLevelXP:   nextLevelXP,
		RemainingXP:   nextLevelXP - member.TotalXP(),
		Position:      ahead + 1,
	}, nil
}

func (d *rankDomain) GetTop(
	ctx context.Context, req *model.GetTopRequest,
) (*model.GetTopResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultTopLimit
	}

	if limit > maxTopLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", maxTopLimit)
	}

	metric := req.Metric
	if metric == "" {
		metric = repository.MetricTotal
	}

	members, err := d.memberRepo.GetTop(ctx, req.CommunityID, metric, limit)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get top members: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid metric %s", metric)
	}

	entries := []model.TopEntry{}
	for _, m := range members {
		entries = append(entries, model.TopEntry{
			UserID: m.UserID,
			Value:  metricValue(&m, metric),
			Level:  m.Level,
		})
	}

	return &model.GetTopResponse{Entries: entries}, nil
}

func (d *rankDomain) GetLeaderBoard(
	ctx context.Context, req *model.GetLeaderBoardRequest,
) (*model.GetLeaderBoardResponse, error) {
	if req.Limit <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Offset+req.Limit > maxLeaderboardNo {
		return nil, errorx.New(errorx.BadRequest,
			"Cannot look up beyond position %d", maxLeaderboardNo)
	}

	board, err := d.leaderboard.GetLeaderBoard(ctx, req.CommunityID, req.Period, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	return &model.GetLeaderBoardResponse{LeaderBoard: board}, nil
}

func metricValue(m *entity.Member, metric string) int64 {
	switch metric {
	case repository.MetricTextLifetime:
		return m.TextLifetime
	case repository.MetricVoiceLifetime:
		return m.VoiceLifetime
	case repository.MetricTextDay:
		return m.TextDay
	case repository.MetricVoiceDay:
		return m.VoiceDay
	case repository.MetricTextWeek:
		return m.TextWeek
	case repository.MetricVoiceWeek:
		return m.VoiceWeek
	case repository.MetricTotalDay:
		return m.TextDay + m.VoiceDay
	case repository.MetricTotalWeek:
		return m.TextWeek + m.VoiceWeek
	}

	return m.TotalXP()
}
