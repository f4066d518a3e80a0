package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "CONFEMBED_CONFIG"

// File is the configuration file of the confembed binary.
type File struct {
	Server ServerConfig `toml:"server"`
	Embed  EmbedConfig  `toml:"embed"`
	Host   HostConfig   `toml:"host"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig configures the application-side WebSocket endpoint.
type ServerConfig struct {
	Listen         string   `toml:"listen"`
	Path           string   `toml:"path"`
	AllowedOrigins []string `toml:"allowed_origins"`
	PingInterval   Duration `toml:"ping_interval"`
}

// EmbedConfig configures how the application detects an embedding host.
type EmbedConfig struct {
	// APIID is the numeric identifier assigned by the host. Nil when absent.
	APIID *int `toml:"api_id"`

	// URL is the URL the application was opened with.
	URL string `toml:"url"`

	// JWTSecret, when set, requires the URL token to be HS256-signed with it.
	JWTSecret string `toml:"jwt_secret"`

	// Room is the conference room joined by the simulated engine.
	Room string `toml:"room"`

	// DisplayName is the initial local display name.
	DisplayName string `toml:"display_name"`
}

// HostConfig configures the host-side client.
type HostConfig struct {
	URL            string   `toml:"url"`
	Origin         string   `toml:"origin"`
	RequestTimeout Duration `toml:"request_timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`

	// File, when set, writes logs to a rotated file instead of stderr.
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))

	return err
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() *File {
	cfg := &File{}
	cfg.applyDefaults()

	return cfg
}

func (f *File) applyDefaults() {
	if f.Server.Listen == "" {
		f.Server.Listen = "127.0.0.1:8765"
	}

	if f.Server.Path == "" {
		f.Server.Path = "/embed"
	}

	if f.Server.PingInterval.Duration == 0 {
		f.Server.PingInterval.Duration = 30 * time.Second
	}

	if f.Embed.Room == "" {
		f.Embed.Room = "lobby"
	}

	if f.Host.URL == "" {
		f.Host.URL = "ws://" + f.Server.Listen + f.Server.Path
	}

	if f.Host.RequestTimeout.Duration == 0 {
		f.Host.RequestTimeout.Duration = DefaultRequestTimeout
	}

	if f.Log.Level == "" {
		f.Log.Level = "info"
	}

	if f.Log.Format == "" {
		f.Log.Format = "text"
	}

	if f.Log.MaxSizeMB == 0 {
		f.Log.MaxSizeMB = 50
	}
}

// Validate checks values that defaults cannot repair.
func (f *File) Validate() error {
	switch f.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unsupported format %q", f.Log.Format)
	}

	if f.Server.Path == "" || f.Server.Path[0] != '/' {
		return fmt.Errorf("server.path: must start with '/', got %q", f.Server.Path)
	}

	if f.Server.PingInterval.Duration < 0 {
		return fmt.Errorf("server.ping_interval: must not be negative")
	}

	return nil
}

// Load loads configuration from a TOML file
func Load(path string) (*File, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg File
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadDefault loads the file named by CONFEMBED_CONFIG, else ./confembed.toml
// or ~/.config/confembed/config.toml, else returns Default().
func LoadDefault() (*File, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	candidates := []string{"./confembed.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "confembed", "config.toml"))
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}
