package config_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/meridian/internal/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("MERIDIAN_ENV", "local")
	t.Setenv("MERIDIAN_IDLE_WAIT", "10ms")
	t.Setenv("MERIDIAN_PROVIDER_TYPE", "nominatim")
	t.Setenv("MERIDIAN_PROVIDER_KEY", "testAPIKey")
	t.Setenv("MERIDIAN_INPUT_FILES", "data_points_20180101.txt, data_points_20180102.txt,")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
	assert.Equal(t, 10*time.Millisecond, cfg.IdleWait)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "nominatim", cfg.ProviderType)
	assert.Equal(t, "testAPIKey", cfg.APIKey)
	assert.Equal(t, 10, cfg.Workers)
	assert.Equal(t, 50, cfg.RateLimit)
	assert.Equal(t, "sqlite", cfg.Sink)
	assert.Equal(t, "addresses.db", cfg.SQLitePath)
	assert.Equal(t, []string{"data_points_20180101.txt", "data_points_20180102.txt"}, cfg.InputFiles)
}

func TestMustLoad_Defaults(t *testing.T) {
	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "google", cfg.ProviderType)
	assert.Equal(t, 50*time.Millisecond, cfg.IdleWait)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Empty(t, cfg.InputFiles)
}

func TestBindFlags_OverrideEnv(t *testing.T) {
	t.Setenv("MERIDIAN_WORKERS", "10")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("workers", 0, "")
	flags.String("provider-type", "", "")
	assert.NoError(t, flags.Parse([]string{"--workers=3", "--provider-type=visicom"}))

	v := config.New()
	config.BindFlags(v, flags)
	cfg := config.MustLoadFrom(v)

	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "visicom", cfg.ProviderType)
}

func TestMustLoad_IdleWaitError(t *testing.T) {
	t.Setenv("MERIDIAN_IDLE_WAIT", "error_value")

	assert.PanicsWithValue(t, "failed to parse idle wait from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_PortError(t *testing.T) {
	t.Setenv("MERIDIAN_HEALTH_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for monitoring server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_WorkersError(t *testing.T) {
	t.Setenv("MERIDIAN_WORKERS", "error_value")

	assert.PanicsWithValue(t, "failed to parse workers from configuration, must be an integer types", func() {
		config.MustLoad()
	})
}

func TestMustLoad_RateLimitError(t *testing.T) {
	t.Setenv("MERIDIAN_RATE_LIMIT", "error_value")

	assert.PanicsWithValue(t, "failed to parse rate limit from configuration, must be an integer types", func() {
		config.MustLoad()
	})
}
