package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8085

[database]
host = "db"
port = 5433
user = "availability"
password = "secret"
dbname = "availability"

[logs]
level = "debug"

[booking]
horizon_days = 90
timezone = "Europe/Moscow"

[rate_limit]
enabled = true
rps = 5
burst = 10
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout) // по умолчанию
	assert.Equal(t, "host=db port=5433 user=availability password=secret dbname=availability sslmode=disable",
		cfg.Database.DSN())
	assert.Equal(t, 90, cfg.Booking.HorizonDays)
	assert.Equal(t, 31, cfg.Booking.MaxWindowDays)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5.0, cfg.RateLimit.RPS)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Database.User = "u"
		cfg.Database.DBName = "db"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "порт", mutate: func(c *Config) { c.Server.HTTPPort = 0 }},
		{name: "нет базы", mutate: func(c *Config) { c.Database.DBName = "" }},
		{name: "горизонт", mutate: func(c *Config) { c.Booking.HorizonDays = 0 }},
		{name: "ширина окна", mutate: func(c *Config) { c.Booking.MaxWindowDays = -1 }},
		{name: "часовой пояс", mutate: func(c *Config) { c.Booking.Timezone = "Mars/Olympus" }},
		{name: "уведомления без url", mutate: func(c *Config) { c.Notifications.Enabled = true }},
		{name: "лимитер", mutate: func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.RPS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
