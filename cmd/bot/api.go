package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tr10-lab/backend/pkg/router"
	"github.com/tr10-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadRedisClient()
	s.loadDiscord()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx).ApiServer
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on port %s", cfg.Port)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)

	s.router.Inner.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Read API.
	router.GET(s.router, "/getRank", s.rankDomain.GetRank)
	router.GET(s.router, "/getTop", s.rankDomain.GetTop)
	router.GET(s.router, "/getLeaderBoard", s.rankDomain.GetLeaderBoard)
	router.GET(s.router, "/getLevelRoles", s.communityDomain.ListLevelRoles)

	// Admin XP API.
	router.POST(s.router, "/grantXP", s.xpDomain.GrantBulkXP)
	router.POST(s.router, "/setXP", s.xpDomain.SetXP)
	router.POST(s.router, "/setLevel", s.xpDomain.SetLevel)
	router.POST(s.router, "/resetMember", s.xpDomain.ResetMember)
	router.POST(s.router, "/wipeCommunity", s.xpDomain.WipeCommunity)

	// Community settings API.
	router.POST(s.router, "/setCongratsChannel", s.communityDomain.SetCongratsChannel)
	router.POST(s.router, "/setCongratsTemplate", s.communityDomain.SetCongratsTemplate)
	router.POST(s.router, "/setLevelRole", s.communityDomain.SetLevelRole)
	router.POST(s.router, "/removeLevelRole", s.communityDomain.RemoveLevelRole)
	router.POST(s.router, "/upsertAutoReply", s.communityDomain.UpsertAutoReply)
	router.POST(s.router, "/removeAutoReply", s.communityDomain.RemoveAutoReply)
	router.POST(s.router, "/toggleAutoReply", s.communityDomain.ToggleAutoReply)
}
