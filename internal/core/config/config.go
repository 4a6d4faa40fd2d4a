package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the top-level application config.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Dashboard DashboardConfig `koanf:"dashboard"`
	Live      LiveConfig      `koanf:"live"`
}

type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`
	Mode string `koanf:"mode"` // debug | release
}

type DatabaseConfig struct {
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type DashboardConfig struct {
	// LatestTransactions caps the transaction list on the stats view.
	LatestTransactions int `koanf:"latest_transactions"`
}

type LiveConfig struct {
	Enabled    bool `koanf:"enabled"`
	SendBuffer int  `koanf:"send_buffer"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}

	if c.Dashboard.LatestTransactions <= 0 {
		return fmt.Errorf("dashboard.latest_transactions must be > 0")
	}

	if c.Live.SendBuffer < 0 {
		return fmt.Errorf("live.send_buffer must be >= 0")
	}

	return nil
}

// Load parses config from defaults, an optional YAML file and SHOPCORE_
// environment variables, then validates it. Env keys map double underscores
// to nesting: SHOPCORE_SERVER__PORT overrides server.port.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":                   8080,
		"server.host":                   "0.0.0.0",
		"server.mode":                   "release",
		"database.dsn":                  "postgres://localhost:5432/shopcore?sslmode=disable",
		"database.max_open_conns":       25,
		"database.max_idle_conns":       25,
		"database.auto_migrate":         true,
		"dashboard.latest_transactions": 4,
		"live.enabled":                  true,
		"live.send_buffer":              64,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("SHOPCORE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "SHOPCORE_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
