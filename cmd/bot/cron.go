package main

import (
	"github.com/tr10-lab/backend/internal/domain/cron"
	"github.com/tr10-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadRepos()

	heartbeat := xcontext.Configs(s.ctx).Reset.Heartbeat()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Start(
		s.ctx,
		cron.NewDailyResetJob(s.memberRepo, s.resetStateRepo, heartbeat),
		cron.NewWeeklyResetJob(s.memberRepo, s.resetStateRepo, heartbeat),
	)

	return nil
}
