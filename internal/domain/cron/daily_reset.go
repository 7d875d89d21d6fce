package cron

import (
	"context"
	"time"

	"github.com/tr10-lab/backend/internal/repository"
	"github.com/tr10-lab/backend/pkg/dateutil"
	"github.com/tr10-lab/backend/pkg/xcontext"
)

const dailyResetTimer = "daily_reset"

// DailyResetJob zeroes every member's day buckets once per calendar day at
// the configured local time. It runs on a coarse heartbeat and may observe
// the trigger minute more than once; the persisted period key makes firing
// exactly-once per day, including across restarts. A heartbeat that skips
// past the trigger minute is an accepted gap, there is no retroactive
// catch-up.
type DailyResetJob struct {
	memberRepo     repository.MemberRepository
	resetStateRepo repository.ResetStateRepository
	heartbeat      time.Duration
}

func NewDailyResetJob(
	memberRepo repository.MemberRepository,
	resetStateRepo repository.ResetStateRepository,
	heartbeat time.Duration,
) *DailyResetJob {
	return &DailyResetJob{
		memberRepo:     memberRepo,
		resetStateRepo: resetStateRepo,
		heartbeat:      heartbeat,
	}
}

func (job *DailyResetJob) Do(ctx context.Context) {
	job.tick(ctx, time.Now())
}

func (job *DailyResetJob) tick(ctx context.Context, now time.Time) {
	cfg := xcontext.Configs(ctx).Reset
	location, err := cfg.Location()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load reset timezone %s: %v", cfg.Timezone, err)
		return
	}

	local := now.In(location)
	if local.Hour() != cfg.DailyHour || local.Minute() != cfg.DailyMinute {
		return
	}

	key := dateutil.DayKey(local)
	lastFired, err := job.resetStateRepo.GetLastFiredKey(ctx, dailyResetTimer)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get daily reset state: %v", err)
		return
	}

	if lastFired == key {
		return
	}

	if err := job.memberRepo.ResetDayBuckets(ctx); err != nil {
		// Not marked as fired, the next heartbeat in the trigger minute
		// retries.
		xcontext.Logger(ctx).Errorf("Cannot reset day buckets: %v", err)
		return
	}

	if err := job.resetStateRepo.SetLastFiredKey(ctx, dailyResetTimer, key); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save daily reset state: %v", err)
		return
	}

	xcontext.Logger(ctx).Infof("Daily reset done for %s", key)
}

func (job *DailyResetJob) RunNow() bool {
	return true
}

func (job *DailyResetJob) Next() time.Time {
	return time.Now().Add(job.heartbeat)
}
