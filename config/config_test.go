package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Load_defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, int64(230), cfg.Level.Base)
	require.Equal(t, int64(95), cfg.Level.Linear)
	require.Equal(t, int64(6), cfg.Level.Quadratic)
	require.Equal(t, 1, cfg.Level.InitialLevel)

	require.Equal(t, 5, cfg.TextXP.MessageThreshold)
	require.Equal(t, int64(3), cfg.TextXP.Reward)
	require.Equal(t, time.Minute, cfg.VoiceXP.Interval())

	require.Equal(t, "Asia/Riyadh", cfg.Reset.Timezone)
	require.Equal(t, 1, cfg.Reset.DailyHour)
	require.Equal(t, int(time.Saturday), cfg.Reset.WeeklyWeekday)
	require.Equal(t, 23, cfg.Reset.WeeklyHour)

	_, err = cfg.Reset.Location()
	require.NoError(t, err)
}

func Test_Load_partialFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[level]
base = 100
initial_level = 0

[text_xp]
message_threshold = 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, int64(100), cfg.Level.Base)
	require.Equal(t, 0, cfg.Level.InitialLevel)
	require.Equal(t, 1, cfg.TextXP.MessageThreshold)

	// Untouched sections keep their defaults.
	require.Equal(t, int64(10), cfg.VoiceXP.Reward)
	require.Equal(t, "Asia/Riyadh", cfg.Reset.Timezone)
}

func Test_Load_envSecrets(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-from-env")
	t.Setenv("DB_PASSWORD", "password-from-env")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "token-from-env", cfg.Discord.Token)
	require.Equal(t, "password-from-env", cfg.Database.Password)
}
