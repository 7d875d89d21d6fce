package main

import "github.com/urfave/cli/v2"

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "Path of the toml configuration file",
	Value:   "",
}

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "xpbot"
	app.Usage = "XP accumulation and leveling service"
	app.Flags = []cli.Flag{configFlag}
	app.Commands = []*cli.Command{
		{
			Action:      s.startGateway,
			Name:        "gateway",
			Usage:       "Start the gateway worker",
			Category:    "Worker",
			Description: `Connects to the chat gateway and collects message and voice activity.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start the cron worker",
			Category:    "Worker",
			Description: `Runs the daily and weekly XP reset schedule.`,
		},
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Category:    "Api",
			Description: `Serves rank, top, and leaderboard lookups plus the admin surface.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database schema",
			Category:    "Tool",
			Description: `Creates or updates the tables and exits.`,
		},
	}

	s.app = app
}
