package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	Database  DatabaseConfigs `toml:"database"`
	Redis     RedisConfigs    `toml:"redis"`
	ApiServer ServerConfigs   `toml:"api_server"`
	Discord   DiscordConfigs  `toml:"discord"`
	Level     LevelConfigs    `toml:"level"`
	TextXP    TextXPConfigs   `toml:"text_xp"`
	VoiceXP   VoiceXPConfigs  `toml:"voice_xp"`
	Reset     ResetConfigs    `toml:"reset"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

type DiscordConfigs struct {
	Token string `toml:"token"`
}

// LevelConfigs defines the level curve. The XP needed to advance from level L
// to L+1 is Base + Linear*n + Quadratic*n*n with n = L - InitialLevel.
type LevelConfigs struct {
	Base         int64 `toml:"base"`
	Linear       int64 `toml:"linear"`
	Quadratic    int64 `toml:"quadratic"`
	InitialLevel int   `toml:"initial_level"`

	AnnounceEveryLevel bool   `toml:"announce_every_level"`
	CongratsTemplate   string `toml:"congrats_template"`
}

type TextXPConfigs struct {
	MessageThreshold int   `toml:"message_threshold"`
	Reward           int64 `toml:"reward"`
}

type VoiceXPConfigs struct {
	Reward          int64 `toml:"reward"`
	IntervalSeconds int   `toml:"interval_seconds"`
}

func (c VoiceXPConfigs) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

type ResetConfigs struct {
	Timezone string `toml:"timezone"`

	DailyHour   int `toml:"daily_hour"`
	DailyMinute int `toml:"daily_minute"`

	// WeeklyWeekday follows time.Weekday numbering (0 is Sunday).
	WeeklyWeekday int `toml:"weekly_weekday"`
	WeeklyHour    int `toml:"weekly_hour"`
	WeeklyMinute  int `toml:"weekly_minute"`

	HeartbeatSeconds int `toml:"heartbeat_seconds"`
}

func (c ResetConfigs) Heartbeat() time.Duration {
	return time.Duration(c.HeartbeatSeconds) * time.Second
}

func (c ResetConfigs) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Default returns the configuration the original deployment ran with. Load
// applies the toml file on top of it, so a partial file is fine.
func Default() Configs {
	return Configs{
		Env: "dev",
		Level: LevelConfigs{
			Base:             230,
			Linear:           95,
			Quadratic:        6,
			InitialLevel:     1,
			CongratsTemplate: "🎉 Congratulations {user}, you reached level **{level}**! 👑",
		},
		TextXP: TextXPConfigs{
			MessageThreshold: 5,
			Reward:           3,
		},
		VoiceXP: VoiceXPConfigs{
			Reward:          10,
			IntervalSeconds: 60,
		},
		Reset: ResetConfigs{
			Timezone:         "Asia/Riyadh",
			DailyHour:        1,
			DailyMinute:      0,
			WeeklyWeekday:    int(time.Saturday),
			WeeklyHour:       23,
			WeeklyMinute:     0,
			HeartbeatSeconds: 60,
		},
	}
}

// Load reads the toml file at path over the defaults. Secrets can be left out
// of the file and provided by environment instead.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Discord.Token = token
	}

	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}

	return cfg, nil
}
