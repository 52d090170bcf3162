// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds runtime settings for the toomanytabs server.
//
// Fields:
//   - Backend: storage engine, "sqlite" or "postgres".
//   - ListenAddr: HTTP bind address (e.g. ":9999").
//   - DatabaseDSN: full PostgreSQL DSN; overrides the Postgres* parts when set.
//   - Postgres*: connection parts used to build a DSN when DatabaseDSN is empty.
//   - DataDir: directory holding the SQLite database file.
//   - TemplateDir: optional directory with *.html views replacing the built-in ones.
//   - PublicHost: host used in shareable links instead of the detected LAN IP.
//   - HealthAddr: optional gRPC health endpoint address; empty disables it.
//   - AllowedOrigins: CORS origins; empty disables CORS handling.
type Config struct {
	Backend          string        `env:"BACKEND" validate:"required,oneof=sqlite postgres"`
	ListenAddr       string        `env:"LISTEN_ADDR" validate:"required"`
	DatabaseDSN      string        `env:"DATABASE_DSN"`
	PostgresHost     string        `env:"PG_HOST"`
	PostgresPort     int           `env:"PG_PORT" validate:"gte=1,lte=65535"`
	PostgresUser     string        `env:"PG_USER"`
	PostgresPassword string        `env:"PG_PASSWORD"`
	PostgresDB       string        `env:"PG_DATABASE"`
	PostgresSSLMode  string        `env:"PG_SSLMODE" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	DataDir          string        `env:"DATA_DIR"`
	TemplateDir      string        `env:"TEMPLATE_DIR"`
	PublicHost       string        `env:"PUBLIC_HOST"`
	LogLevel         string        `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat        string        `env:"LOG_FORMAT" validate:"oneof=json text"`
	MetricsEnabled   bool          `env:"METRICS_ENABLED"`
	HealthAddr       string        `env:"HEALTH_ADDR"`
	AllowedOrigins   []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	MaxBodyBytes     int64         `env:"MAX_BODY_BYTES" validate:"gt=0"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// LoadDefaults populates Config with local development defaults: an embedded
// SQLite database under ~/.tmt served on port 9999.
func (c *Config) LoadDefaults() {
	c.Backend = BackendSQLite
	c.ListenAddr = ":9999"
	c.DatabaseDSN = ""
	c.PostgresHost = "localhost"
	c.PostgresPort = 5433
	c.PostgresUser = "swizzard"
	c.PostgresPassword = ""
	c.PostgresDB = "swizzard_toomanytabs"
	c.PostgresSSLMode = ""
	c.DataDir = "~/.tmt"
	c.TemplateDir = ""
	c.PublicHost = ""
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.MetricsEnabled = true
	c.HealthAddr = ""
	c.AllowedOrigins = nil
	c.MaxBodyBytes = 1 << 20
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment (including .env) and finally
// command-line flags. The result is validated.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PostgresDSN returns DatabaseDSN when set, otherwise a key/value DSN
// assembled from the Postgres* fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}

	parts := []string{
		"host=" + quoteDSN(c.PostgresHost),
		"port=" + strconv.Itoa(c.PostgresPort),
	}
	if c.PostgresUser != "" {
		parts = append(parts, "user="+quoteDSN(c.PostgresUser))
	}
	if c.PostgresPassword != "" {
		parts = append(parts, "password="+quoteDSN(c.PostgresPassword))
	}
	if c.PostgresDB != "" {
		parts = append(parts, "dbname="+quoteDSN(c.PostgresDB))
	}
	if c.PostgresSSLMode != "" {
		parts = append(parts, "sslmode="+c.PostgresSSLMode)
	}
	return strings.Join(parts, " ")
}

// Redacted returns the DSN with any password removed, for logging.
func (c *Config) Redacted() string {
	if c.Backend == BackendSQLite {
		return c.DataDir
	}
	if c.DatabaseDSN != "" {
		if u, err := url.Parse(c.DatabaseDSN); err == nil && u.Scheme != "" {
			return u.Redacted()
		}
		return "<dsn>"
	}
	cp := *c
	cp.PostgresPassword = ""
	return cp.PostgresDSN()
}

func quoteDSN(v string) string {
	if v == "" || strings.ContainsAny(v, ` '\`) {
		r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
		return "'" + r.Replace(v) + "'"
	}
	return v
}
