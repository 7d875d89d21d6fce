// Package collector converts raw platform activity, authored messages and
// voice presence, into XP credits.
package collector

import (
	"context"

	"github.com/tr10-lab/backend/internal/repository"
	"github.com/tr10-lab/backend/pkg/xcontext"
)

// XPCrediter is the slice of the XP domain the collectors need. Credits run
// the full credit, resolve, dispatch pipeline.
type XPCrediter interface {
	CreditText(ctx context.Context, communityID, userID string, amount int64) error
	CreditVoice(ctx context.Context, communityID, userID string, amount int64) error
}

// TextCollector implements the count-based text rule: every Nth authored
// message earns a fixed reward. The alternative cooldown rule is not
// implemented here; LastMessageAt is still recorded for deployments that
// want to migrate.
type TextCollector struct {
	memberRepo repository.MemberRepository
	crediter   XPCrediter
}

func NewTextCollector(memberRepo repository.MemberRepository, crediter XPCrediter) *TextCollector {
	return &TextCollector{memberRepo: memberRepo, crediter: crediter}
}

// HandleMessage counts one authored message. Store errors propagate so the
// event layer can decide between retry and drop; a swallowed error here would
// be silent XP loss.
func (c *TextCollector) HandleMessage(
	ctx context.Context, communityID, userID string, isServiceAccount bool,
) error {
	if isServiceAccount {
		return nil
	}

	if _, err := c.memberRepo.GetOrCreate(ctx, communityID, userID); err != nil {
		return err
	}

	cfg := xcontext.Configs(ctx).TextXP
	credited, err := c.memberRepo.AdvanceMessageBucket(ctx, communityID, userID, cfg.MessageThreshold)
	if err != nil {
		return err
	}

	if !credited {
		return nil
	}

	return c.crediter.CreditText(ctx, communityID, userID, cfg.Reward)
}
