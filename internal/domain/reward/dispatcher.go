// Package reward turns crossed levels into their one-time side effects: role
// grants and the congratulation message. Everything here is advisory; the XP
// and level already committed to storage are the source of truth and a failed
// platform call never propagates.
package reward

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/tr10-lab/backend/internal/repository"
	"github.com/tr10-lab/backend/pkg/discord"
	"github.com/tr10-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type Dispatcher interface {
	DispatchLevelUp(ctx context.Context, communityID, userID string, crossedLevels []int)
}

type dispatcher struct {
	communityRepo repository.CommunityRepository
	levelRoleRepo repository.LevelRoleRepository
	discordClient discord.Client
}

func NewDispatcher(
	communityRepo repository.CommunityRepository,
	levelRoleRepo repository.LevelRoleRepository,
	discordClient discord.Client,
) *dispatcher {
	return &dispatcher{
		communityRepo: communityRepo,
		levelRoleRepo: levelRoleRepo,
		discordClient: discordClient,
	}
}

func (d *dispatcher) DispatchLevelUp(
	ctx context.Context, communityID, userID string, crossedLevels []int,
) {
	if len(crossedLevels) == 0 {
		return
	}

	for _, level := range crossedLevels {
		d.grantRoleAt(ctx, communityID, userID, level)
	}

	finalLevel := crossedLevels[len(crossedLevels)-1]
	if xcontext.Configs(ctx).Level.AnnounceEveryLevel {
		for _, level := range crossedLevels {
			d.announce(ctx, communityID, userID, level)
		}
	} else {
		d.announce(ctx, communityID, userID, finalLevel)
	}
}

// grantRoleAt grants the role bound to exactly this level, if any. Roles the
// member already holds are left untouched.
func (d *dispatcher) grantRoleAt(ctx context.Context, communityID, userID string, level int) {
	binding, err := d.levelRoleRepo.GetExact(ctx, communityID, level)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get level role binding: %v", err)
		}

		return
	}

	held, err := d.discordClient.HasRole(ctx, communityID, userID, binding.RoleID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check role %s of %s: %v", binding.RoleID, userID, err)
	}

	if held {
		return
	}

	if err := d.discordClient.GrantRole(ctx, communityID, userID, binding.RoleID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot grant role %s to %s: %v", binding.RoleID, userID, err)
	}
}

func (d *dispatcher) announce(ctx context.Context, communityID, userID string, level int) {
	settings, err := d.communityRepo.GetOrCreateSettings(ctx, communityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community settings: %v", err)
		return
	}

	// No configured channel means no announcement, not a fallback channel.
	if !settings.CongratsChannelID.Valid {
		return
	}

	template := xcontext.Configs(ctx).Level.CongratsTemplate
	if settings.CongratsTemplate.Valid {
		template = settings.CongratsTemplate.String
	}

	content := strings.ReplaceAll(template, "{user}", "<@"+userID+">")
	content = strings.ReplaceAll(content, "{level}", strconv.Itoa(level))

	err = d.discordClient.SendMessage(ctx, settings.CongratsChannelID.String, content)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot send congrats message to %s: %v",
			settings.CongratsChannelID.String, err)
	}
}
