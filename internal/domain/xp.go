package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tr10-lab/backend/internal/domain/leveling"
	"github.com/tr10-lab/backend/internal/domain/reward"
	"github.com/tr10-lab/backend/internal/domain/statistic"
	"github.com/tr10-lab/backend/internal/entity"
	"github.com/tr10-lab/backend/internal/model"
	"github.com/tr10-lab/backend/internal/repository"
	"github.com/tr10-lab/backend/pkg/errorx"
	"github.com/tr10-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	sourceText  = "text"
	sourceVoice = "voice"
)

type XPDomain interface {
	// CreditText and CreditVoice run the full pipeline for one earned credit:
	// atomic store increment, then resolve the level from the fresh total and
	// dispatch rewards for every crossed level.
	CreditText(ctx context.Context, communityID, userID string, amount int64) error
	CreditVoice(ctx context.Context, communityID, userID string, amount int64) error

	GrantBulkXP(ctx context.Context, req *model.GrantBulkXPRequest) (*model.GrantBulkXPResponse, error)
	SetXP(ctx context.Context, req *model.SetXPRequest) (*model.SetXPResponse, error)
	SetLevel(ctx context.Context, req *model.SetLevelRequest) (*model.SetLevelResponse, error)
	ResetMember(ctx context.Context, req *model.ResetMemberRequest) (*model.ResetMemberResponse, error)
	WipeCommunity(ctx context.Context, req *model.WipeCommunityRequest) (*model.WipeCommunityResponse, error)
}

type xpDomain struct {
	memberRepo  repository.MemberRepository
	modLogRepo  repository.ModLogRepository
	dispatcher  reward.Dispatcher
	leaderboard statistic.Leaderboard
}

func NewXPDomain(
	memberRepo repository.MemberRepository,
	modLogRepo repository.ModLogRepository,
	dispatcher reward.Dispatcher,
	leaderboard statistic.Leaderboard,
) *xpDomain {
	return &xpDomain{
		memberRepo:  memberRepo,
		modLogRepo:  modLogRepo,
		dispatcher:  dispatcher,
		leaderboard: leaderboard,
	}
}

func (d *xpDomain) CreditText(ctx context.Context, communityID, userID string, amount int64) error {
	_, _, err := d.credit(ctx, communityID, userID, amount, sourceText)
	return err
}

func (d *xpDomain) CreditVoice(ctx context.Context, communityID, userID string, amount int64) error {
	_, _, err := d.credit(ctx, communityID, userID, amount, sourceVoice)
	return err
}

func (d *xpDomain) credit(
	ctx context.Context, communityID, userID string, amount int64, source string,
) (int, []int, error) {
	if amount <= 0 {
		return 0, nil, errorx.New(errorx.BadRequest, "XP amount must be positive")
	}

	if _, err := d.memberRepo.GetOrCreate(ctx, communityID, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get or create member: %v", err)
		return 0, nil, errorx.Unknown
	}

	var err error
	switch source {
	case sourceText:
		err = d.memberRepo.IncreaseTextXP(ctx, communityID, userID, amount)
	case sourceVoice:
		err = d.memberRepo.IncreaseVoiceXP(ctx, communityID, userID, amount)
	default:
		return 0, nil, errorx.New(errorx.BadRequest, "Invalid XP source %s", source)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase %s xp: %v", source, err)
		return 0, nil, errorx.Unknown
	}

	err = d.leaderboard.ChangeXPLeaderboard(ctx, amount, time.Now(), userID, communityID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot change xp leaderboard: %v", err)
	}

	return d.resolveLevel(ctx, communityID, userID)
}

// resolveLevel reloads the member after an increment, derives the level the
// lifetime total implies, and commits it guarded by the level it was derived
// from. Losing the guarded write means another resolver saw a fresher total
// and owns the dispatch, so this call drops its crossed levels.
func (d *xpDomain) resolveLevel(
	ctx context.Context, communityID, userID string,
) (int, []int, error) {
	member, err := d.memberRepo.Get(ctx, communityID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reload member: %v", err)
		return 0, nil, errorx.Unknown
	}

	curve := leveling.NewCurve(xcontext.Configs(ctx).Level)
	newLevel, crossed := curve.Resolve(member.Level, member.TotalXP())
	if newLevel == member.Level {
		return newLevel, nil, nil
	}

	err = d.memberRepo.UpdateLevel(ctx, communityID, userID, newLevel, member.Level)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newLevel, nil, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot update level: %v", err)
		return 0, nil, errorx.Unknown
	}

	d.dispatcher.DispatchLevelUp(ctx, communityID, userID, crossed)
	return newLevel, crossed, nil
}

func (d *xpDomain) GrantBulkXP(
	ctx context.Context, req *model.GrantBulkXPRequest,
) (*model.GrantBulkXPResponse, error) {
	if req.Source != sourceText && req.Source != sourceVoice {
		return nil, errorx.New(errorx.BadRequest, "Invalid XP source %s", req.Source)
	}

	level, crossed, err := d.credit(ctx, req.CommunityID, req.UserID, req.Amount, req.Source)
	if err != nil {
		return nil, err
	}

	d.logAction(ctx, req.CommunityID, req.ActorID, req.UserID, "grant_xp")

	return &model.GrantBulkXPResponse{Level: level, CrossedLevels: crossed}, nil
}

func (d *xpDomain) SetXP(ctx context.Context, req *model.SetXPRequest) (*model.SetXPResponse, error) {
	if req.TextXP < 0 || req.VoiceXP < 0 {
		return nil, errorx.New(errorx.BadRequest, "XP must not be negative")
	}

	if _, err := d.memberRepo.GetOrCreate(ctx, req.CommunityID, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get or create member: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err := d.memberRepo.SetXP(ctx, req.CommunityID, req.UserID, req.TextXP, req.VoiceXP)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set xp: %v", err)
		return nil, errorx.Unknown
	}

	// An overwrite can lower the total, so the level is recomputed from the
	// initial level, not resolved forward. No rewards fire.
	curve := leveling.NewCurve(xcontext.Configs(ctx).Level)
	level, _ := curve.Resolve(curve.InitialLevel, req.TextXP+req.VoiceXP)
	if err := d.memberRepo.SetLevel(ctx, req.CommunityID, req.UserID, level); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set level: %v", err)
		return nil, errorx.Unknown
	}

	d.logAction(ctx, req.CommunityID, req.ActorID, req.UserID, "set_xp")

	xcontext.WithCommitDBTransaction(ctx)
	return &model.SetXPResponse{Level: level}, nil
}

func (d *xpDomain) SetLevel(
	ctx context.Context, req *model.SetLevelRequest,
) (*model.SetLevelResponse, error) {
	initial := xcontext.Configs(ctx).Level.InitialLevel
	if req.Level < initial {
		return nil, errorx.New(errorx.BadRequest, "Level must be at least %d", initial)
	}

	if _, err := d.memberRepo.GetOrCreate(ctx, req.CommunityID, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get or create member: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.memberRepo.SetLevel(ctx, req.CommunityID, req.UserID, req.Level); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set level: %v", err)
		return nil, errorx.Unknown
	}

	// The stored XP stays behind the forced level, so it is lifted to the
	// threshold of that level to keep the level derivable from the total.
	curve := leveling.NewCurve(xcontext.Configs(ctx).Level)
	member, err := d.memberRepo.Get(ctx, req.CommunityID, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reload member: %v", err)
		return nil, errorx.Unknown
	}

	if floor := curve.CumulativeXP(req.Level); member.TotalXP() < floor {
		err := d.memberRepo.SetXP(ctx, req.CommunityID, req.UserID, floor-member.VoiceLifetime, member.VoiceLifetime)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot lift xp to level floor: %v", err)
			return nil, errorx.Unknown
		}
	}

	d.logAction(ctx, req.CommunityID, req.ActorID, req.UserID, "set_level")

	xcontext.WithCommitDBTransaction(ctx)
	return &model.SetLevelResponse{}, nil
}

func (d *xpDomain) ResetMember(
	ctx context.Context, req *model.ResetMemberRequest,
) (*model.ResetMemberResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.memberRepo.Delete(ctx, req.CommunityID, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete member: %v", err)
		return nil, errorx.Unknown
	}

	d.logAction(ctx, req.CommunityID, req.ActorID, req.UserID, "reset_member")

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ResetMemberResponse{}, nil
}

func (d *xpDomain) WipeCommunity(
	ctx context.Context, req *model.WipeCommunityRequest,
) (*model.WipeCommunityResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.memberRepo.DeleteByCommunity(ctx, req.CommunityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot wipe community members: %v", err)
		return nil, errorx.Unknown
	}

	d.logAction(ctx, req.CommunityID, req.ActorID, "", "wipe_community")

	xcontext.WithCommitDBTransaction(ctx)
	return &model.WipeCommunityResponse{}, nil
}

func (d *xpDomain) logAction(ctx context.Context, communityID, actorID, targetID, action string) {
	log := &entity.ModLog{
		ID:          uuid.NewString(),
		CommunityID: communityID,
		Action:      action,
		ActorID:     actorID,
	}

	if targetID != "" {
		log.TargetID = sql.NullString{Valid: true, String: targetID}
	}

	if err := d.modLogRepo.Create(ctx, log); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot write mod log: %v", err)
	}
}
