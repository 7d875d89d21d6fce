package main

import (
	"context"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/tr10-lab/backend/config"
	"github.com/tr10-lab/backend/internal/bot"
	"github.com/tr10-lab/backend/internal/domain"
	"github.com/tr10-lab/backend/internal/domain/collector"
	"github.com/tr10-lab/backend/internal/domain/leveling"
	"github.com/tr10-lab/backend/internal/domain/reward"
	"github.com/tr10-lab/backend/internal/domain/statistic"
	"github.com/tr10-lab/backend/internal/entity"
	"github.com/tr10-lab/backend/internal/repository"
	"github.com/tr10-lab/backend/pkg/discord"
	"github.com/tr10-lab/backend/pkg/logger"
	"github.com/tr10-lab/backend/pkg/router"
	"github.com/tr10-lab/backend/pkg/xcontext"
	"github.com/tr10-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	memberRepo     repository.MemberRepository
	communityRepo  repository.CommunityRepository
	levelRoleRepo  repository.LevelRoleRepository
	autoReplyRepo  repository.AutoReplyRepository
	modLogRepo     repository.ModLogRepository
	resetStateRepo repository.ResetStateRepository

	redisClient    xredis.Client
	discordSession *discordgo.Session
	discordClient  discord.Client

	leaderboard     statistic.Leaderboard
	dispatcher      reward.Dispatcher
	xpDomain        domain.XPDomain
	rankDomain      domain.RankDomain
	communityDomain domain.CommunityDomain

	textCollector  *collector.TextCollector
	voiceCollector *collector.VoiceCollector
	bot            *bot.Bot

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		panic(err)
	}

	if err := leveling.NewCurve(cfg.Level).Validate(); err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.Open(
		xcontext.Configs(s.ctx).Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) migrateDB() {
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadDiscord() {
	session, err := discordgo.New("Bot " + xcontext.Configs(s.ctx).Discord.Token)
	if err != nil {
		panic(err)
	}

	s.discordSession = session
	s.discordClient = discord.NewClient(session)
}

func (s *srv) loadRepos() {
	s.memberRepo = repository.NewMemberRepository()
	s.communityRepo = repository.NewCommunityRepository()
	s.levelRoleRepo = repository.NewLevelRoleRepository()
	s.autoReplyRepo = repository.NewAutoReplyRepository()
	s.modLogRepo = repository.NewModLogRepository()
	s.resetStateRepo = repository.NewResetStateRepository()
}

func (s *srv) loadDomains() {
	s.leaderboard = statistic.New(s.memberRepo, s.redisClient)
	s.dispatcher = reward.NewDispatcher(s.communityRepo, s.levelRoleRepo, s.discordClient)
	s.xpDomain = domain.NewXPDomain(s.memberRepo, s.modLogRepo, s.dispatcher, s.leaderboard)
	s.rankDomain = domain.NewRankDomain(s.memberRepo, s.leaderboard)
	s.communityDomain = domain.NewCommunityDomain(s.communityRepo, s.levelRoleRepo, s.autoReplyRepo)

	s.textCollector = collector.NewTextCollector(s.memberRepo, s.xpDomain)
	s.voiceCollector = collector.NewVoiceCollector(collector.NewPresenceSet(), s.xpDomain, s.discordClient)
}
