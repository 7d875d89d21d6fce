package cron

import (
	"context"
	"time"

	"github.com/tr10-lab/backend/internal/repository"
	"github.com/tr10-lab/backend/pkg/dateutil"
	"github.com/tr10-lab/backend/pkg/xcontext"
)

const weeklyResetTimer = "weekly_reset"

// WeeklyResetJob zeroes every member's week buckets once per ISO week at the
// configured local weekday and time. Same heartbeat and guard semantics as
// the daily job.
type WeeklyResetJob struct {
	memberRepo     repository.MemberRepository
	resetStateRepo repository.ResetStateRepository
	heartbeat      time.Duration
}

func NewWeeklyResetJob(
	memberRepo repository.MemberRepository,
	resetStateRepo repository.ResetStateRepository,
	heartbeat time.Duration,
) *WeeklyResetJob {
	return &WeeklyResetJob{
		memberRepo:     memberRepo,
		resetStateRepo: resetStateRepo,
		heartbeat:      heartbeat,
	}
}

func (job *WeeklyResetJob) Do(ctx context.Context) {
	job.tick(ctx, time.Now())
}

func (job *WeeklyResetJob) tick(ctx context.Context, now time.Time) {
	cfg := xcontext.Configs(ctx).Reset
	location, err := cfg.Location()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load reset timezone %s: %v", cfg.Timezone, err)
		return
	}

	local := now.In(location)
	if int(local.Weekday()) != cfg.WeeklyWeekday ||
		local.Hour() != cfg.WeeklyHour || local.Minute() != cfg.WeeklyMinute {
		return
	}

	key := dateutil.WeekKey(local)
	lastFired, err := job.resetStateRepo.GetLastFiredKey(ctx, weeklyResetTimer)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get weekly reset state: %v", err)
		return
	}

	if lastFired == key {
		return
	}

	if err := job.memberRepo.ResetWeekBuckets(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset week buckets: %v", err)
		return
	}

	if err := job.resetStateRepo.SetLastFiredKey(ctx, weeklyResetTimer, key); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save weekly reset state: %v", err)
		return
	}

	xcontext.Logger(ctx).Infof("Weekly reset done for %s", key)
}

func (job *WeeklyResetJob) RunNow() bool {
	return true
}

func (job *WeeklyResetJob) Next() time.Time {
	return time.Now().Add(job.heartbeat)
}
