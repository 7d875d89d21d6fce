package collector

import (
	"context"
	"errors"
	"time"

	"github.com/tr10-lab/backend/pkg/discord"
	"github.com/tr10-lab/backend/pkg/xcontext"
)

// VoiceCollector credits every member observed in a voice channel a fixed
// amount per tick. Mute and deaf states are irrelevant, presence alone is the
// signal.
type VoiceCollector struct {
	presence      *PresenceSet
	crediter      XPCrediter
	discordClient discord.Client
}

func NewVoiceCollector(
	presence *PresenceSet,
	crediter XPCrediter,
	discordClient discord.Client,
) *VoiceCollector {
	return &VoiceCollector{
		presence:      presence,
		crediter:      crediter,
		discordClient: discordClient,
	}
}

// HandlePresenceChange records a connected/disconnected transition.
func (c *VoiceCollector) HandlePresenceChange(
	ctx context.Context, communityID, userID string, nowConnected bool,
) {
	if nowConnected {
		c.presence.Add(communityID, userID)
	} else {
		c.presence.Remove(communityID, userID)
	}
}

// Run ticks until the context is cancelled.
func (c *VoiceCollector) Run(ctx context.Context) {
	interval := xcontext.Configs(ctx).VoiceXP.Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	xcontext.Logger(ctx).Infof("Voice collector started with interval %s", interval)
	for {
		select {
		case <-ctx.Done():
			xcontext.Logger(ctx).Infof("Voice collector stopped")
			return
		case <-ticker.C:
			if err := c.Tick(ctx); err != nil {
				xcontext.Logger(ctx).Errorf("Voice tick failed for some members: %v", err)
			}
		}
	}
}

// Tick credits every member of the presence set that the platform confirms is
// still connected. The presence set can be stale across the race between a
// disconnect event and the tick, so the platform state decides; members it
// denies are dropped from the set. Credit errors are collected rather than
// aborting the sweep, a failing store should not starve other members.
func (c *VoiceCollector) Tick(ctx context.Context) error {
	reward := xcontext.Configs(ctx).VoiceXP.Reward

	var errs []error
	for communityID, userIDs := range c.presence.Snapshot() {
		for _, userID := range userIDs {
			connected, err := c.discordClient.InVoice(ctx, communityID, userID)
			if err != nil {
				// Leave the member in the set, the next tick revalidates.
				xcontext.Logger(ctx).Warnf("Cannot validate voice state of %s: %v", userID, err)
				continue
			}

			if !connected {
				c.presence.Remove(communityID, userID)
				continue
			}

			if err := c.crediter.CreditVoice(ctx, communityID, userID, reward); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}
