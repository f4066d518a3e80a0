package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "confembed.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
[server]
listen = "0.0.0.0:9000"
path = "/api"
allowed_origins = ["https://host.example.com"]
ping_interval = "15s"

[embed]
api_id = 7
url = "https://meet.example.com/room?jwt=abc"
jwt_secret = "s3cret"
room = "standup"
display_name = "Kiosk"

[host]
url = "ws://meet.example.com:9000/api"
request_timeout = "3s"

[log]
level = "debug"
format = "json"
file = "/var/log/confembed.log"
max_backups = 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:9000", cfg.Server.Listen)
	require.Equal(t, "/api", cfg.Server.Path)
	require.Equal(t, []string{"https://host.example.com"}, cfg.Server.AllowedOrigins)
	require.Equal(t, 15*time.Second, cfg.Server.PingInterval.Duration)
	require.NotNil(t, cfg.Embed.APIID)
	require.Equal(t, 7, *cfg.Embed.APIID)
	require.Equal(t, "standup", cfg.Embed.Room)
	require.Equal(t, 3*time.Second, cfg.Host.RequestTimeout.Duration)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, 3, cfg.Log.MaxBackups)
	require.Equal(t, 50, cfg.Log.MaxSizeMB)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	require.Equal(t, Default(), cfg)
	require.Nil(t, cfg.Embed.APIID)
	require.Equal(t, "ws://127.0.0.1:8765/embed", cfg.Host.URL)
	require.Equal(t, DefaultRequestTimeout, cfg.Host.RequestTimeout.Duration)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorContains(t, err, "config file not found")

	_, err = Load(writeConfig(t, "[server\nlisten ="))
	require.ErrorContains(t, err, "failed to parse config")

	_, err = Load(writeConfig(t, "[server]\nping_interval = \"soon\""))
	require.ErrorContains(t, err, "failed to parse config")

	_, err = Load(writeConfig(t, "[log]\nformat = \"xml\""))
	require.ErrorContains(t, err, "log.format")

	_, err = Load(writeConfig(t, "[server]\npath = \"embed\""))
	require.ErrorContains(t, err, "server.path")
}

func TestLoadDefault_FromEnv(t *testing.T) {
	path := writeConfig(t, "[embed]\nroom = \"from-env\"")
	t.Setenv(EnvConfigPath, path)

	cfg, err := LoadDefault()
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.Embed.Room)
}

func TestOptions_EffectiveRequestTimeout(t *testing.T) {
	require.Equal(t, DefaultRequestTimeout, (&Options{}).EffectiveRequestTimeout())
	require.Equal(t, time.Second, (&Options{RequestTimeout: time.Second}).EffectiveRequestTimeout())
}
