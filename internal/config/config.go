// Package config handles environment, flag and optional TOML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	toml "github.com/pelletier/go-toml/v2"
)

// configSearchPaths lists paths checked in order when no explicit config is given.
var configSearchPaths = []string{
	"/etc/forwardauth-mock/config.toml",
	"configs/config.toml",
}

// reservedRoutes are the fixture endpoints a metrics path must not shadow.
var reservedRoutes = []string{"/auth", "/health", "/usage"}

// reservedPrefix is the MCP prefix served by upstream-mock; any path starting
// with it is taken.
const reservedPrefix = "/mcp"

// CLI holds the flags shared by both mock servers, parsed by Kong.
type CLI struct {
	Config   string `kong:"short='c',help='Path to TOML config file.',env='CONFIG_PATH'"`
	Host     string `kong:"help='Listen host (overrides config).',env='HOST'"`
	Port     int    `kong:"short='p',help='Listen port (overrides config).',env='PORT'"`
	LogLevel string `kong:"help='Log level: debug|info|warn|error (overrides config).',env='LOG_LEVEL'"`

	Version kong.VersionFlag `kong:"help='Print version and exit.'"`
}

// AuthCLI extends CLI with the credentials auth-mock accepts.
type AuthCLI struct {
	CLI `kong:"embed"`

	User  string `kong:"help='Expected Basic auth user (overrides config).',env='AUTH_USER'"`
	Pass  string `kong:"help='Expected Basic auth password (overrides config).',env='AUTH_PASS'"`
	Realm string `kong:"help='Realm advertised in WWW-Authenticate (overrides config).',env='AUTH_REALM'"`
}

// Config is the top-level server configuration. It is built once at startup
// and never mutated afterwards.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Auth    AuthConfig    `toml:"auth"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`

	filePath string // resolved config file path (unexported)
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string          `toml:"host"`
	Port         int             `toml:"port"` // 0 means "use default" (8080)
	BodyMaxBytes int64           `toml:"body_max_bytes"`
	RateLimit    RateLimitConfig `toml:"rate_limit"`
}

// RateLimitConfig controls per-IP request rate limiting.
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// AuthConfig holds the single credential auth-mock accepts.
type AuthConfig struct {
	User     string `toml:"user"`
	Password string `toml:"password"`
	Realm    string `toml:"realm"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Load builds the configuration for upstream-mock. A config file is optional;
// without one the server runs purely from flags and environment.
func Load(cli *CLI) (*Config, error) {
	return load(cli, nil)
}

// LoadAuth builds the configuration for auth-mock, including credentials.
func LoadAuth(cli *AuthCLI) (*Config, error) {
	return load(&cli.CLI, cli)
}

func load(cli *CLI, auth *AuthCLI) (*Config, error) {
	var cfg Config

	path := cli.Config
	if path == "" {
		path = findConfig()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
		cfg.filePath = path
	}

	cfg.applyCLI(cli)
	if auth != nil {
		cfg.applyAuthCLI(auth)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

// applyCLI overrides config values with non-zero CLI flags.
func (c *Config) applyCLI(cli *CLI) {
	if cli.Host != "" {
		c.Server.Host = cli.Host
	}
	if cli.Port != 0 {
		c.Server.Port = cli.Port
	}
	if cli.LogLevel != "" {
		c.Log.Level = cli.LogLevel
	}
}

func (c *Config) applyAuthCLI(cli *AuthCLI) {
	if cli.User != "" {
		c.Auth.User = cli.User
	}
	if cli.Pass != "" {
		c.Auth.Password = cli.Pass
	}
	if cli.Realm != "" {
		c.Auth.Realm = cli.Realm
	}
}

func (c *Config) validate() error {
	// Numeric bounds.
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 0–65535; got %d", c.Server.Port)
	}
	if c.Server.BodyMaxBytes < 0 {
		return fmt.Errorf("server.body_max_bytes must be non-negative; got %d", c.Server.BodyMaxBytes)
	}
	if c.Server.RateLimit.Enabled && c.Server.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("server.rate_limit.requests_per_second must be > 0 when rate limiting is enabled; got %v", c.Server.RateLimit.RequestsPerSecond)
	}

	// The realm is quoted verbatim into WWW-Authenticate.
	if strings.ContainsAny(c.Auth.Realm, "\"\r\n") {
		return errors.New("auth.realm must not contain double quotes or line breaks")
	}

	// Log fields.
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text", "":
	default:
		return fmt.Errorf("log.format must be one of: json, text; got %q", c.Log.Format)
	}

	if c.Metrics.Enabled && c.Metrics.Path != "" {
		p := c.Metrics.Path
		if p[0] != '/' {
			return fmt.Errorf("metrics.path must start with '/'; got %q", p)
		}
		for _, reserved := range reservedRoutes {
			if p == reserved {
				return fmt.Errorf("metrics.path %q conflicts with reserved route %q", p, reserved)
			}
		}
		if strings.HasPrefix(p, reservedPrefix) {
			return fmt.Errorf("metrics.path %q conflicts with reserved prefix %q", p, reservedPrefix)
		}
	}

	return nil
}

// setDefaults fills zero-valued fields. Zero means "unset" for integers
// because TOML cannot distinguish an explicit 0 from an omitted key.
func (c *Config) setDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.BodyMaxBytes == 0 {
		c.Server.BodyMaxBytes = 10 * 1024 * 1024 // 10 MB
	}
	if c.Auth.User == "" {
		c.Auth.User = "admin"
	}
	if c.Auth.Password == "" {
		c.Auth.Password = "password"
	}
	if c.Auth.Realm == "" {
		c.Auth.Realm = "auth-mock"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// findConfig returns the first config path that exists, or empty string.
func findConfig() string {
	return findConfigInPaths(configSearchPaths)
}

// findConfigInPaths returns the first path that exists on disk, or empty string.
func findConfigInPaths(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Addr returns the server listen address as host:port.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// FilePath returns the config file the configuration was read from, if any.
func (c *Config) FilePath() string {
	return c.filePath
}

// WarnPermissions logs a warning if the config file is readable by group or
// others. The file may carry the auth-mock password.
func (c *Config) WarnPermissions(logger *slog.Logger) {
	if c.filePath == "" {
		return
	}
	info, err := os.Stat(c.filePath)
	if err != nil {
		return
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		logger.Warn("config file is readable by group/others; consider chmod 600",
			"path", c.filePath,
			"mode", fmt.Sprintf("%04o", perm),
		)
	}
}
