package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/tr10-lab/backend/internal/bot"
	"github.com/tr10-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startGateway(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadRedisClient()
	s.loadDiscord()
	s.loadRepos()
	s.loadDomains()

	s.bot = bot.New(s.ctx, s.discordSession, s.textCollector, s.voiceCollector, s.communityDomain)
	if err := s.bot.Start(); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Gateway worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	xcontext.Logger(s.ctx).Infof("Gateway worker stopping")
	return s.bot.Stop()
}
