package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/toomanytabs/internal/flagx"
)

// Duration accepts either a Go duration string ("5s") or integer
// nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

// JsonConfig is the on-disk shape of the config file. It is pre-filled from
// the current Config so that keys absent from the file keep their values.
type JsonConfig struct {
	Backend          string   `json:"backend"`
	ListenAddr       string   `json:"listen_addr"`
	DatabaseDSN      string   `json:"database_dsn"`
	PostgresHost     string   `json:"postgres_host"`
	PostgresPort     int      `json:"postgres_port"`
	PostgresUser     string   `json:"postgres_user"`
	PostgresPassword string   `json:"postgres_password"`
	PostgresDB       string   `json:"postgres_db"`
	PostgresSSLMode  string   `json:"postgres_sslmode"`
	DataDir          string   `json:"data_dir"`
	TemplateDir      string   `json:"template_dir"`
	PublicHost       string   `json:"public_host"`
	LogLevel         string   `json:"log_level"`
	LogFormat        string   `json:"log_format"`
	MetricsEnabled   bool     `json:"metrics_enabled"`
	HealthAddr       string   `json:"health_addr"`
	AllowedOrigins   []string `json:"allowed_origins"`
	MaxBodyBytes     int64    `json:"max_body_bytes"`
	ShutdownTimeout  Duration `json:"shutdown_timeout"`
}

// parseJSON loads values from the file named by -c/-config, if any.
// An unreadable file or invalid JSON is an error.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := JsonConfig{
		Backend:          config.Backend,
		ListenAddr:       config.ListenAddr,
		DatabaseDSN:      config.DatabaseDSN,
		PostgresHost:     config.PostgresHost,
		PostgresPort:     config.PostgresPort,
		PostgresUser:     config.PostgresUser,
		PostgresPassword: config.PostgresPassword,
		PostgresDB:       config.PostgresDB,
		PostgresSSLMode:  config.PostgresSSLMode,
		DataDir:          config.DataDir,
		TemplateDir:      config.TemplateDir,
		PublicHost:       config.PublicHost,
		LogLevel:         config.LogLevel,
		LogFormat:        config.LogFormat,
		MetricsEnabled:   config.MetricsEnabled,
		HealthAddr:       config.HealthAddr,
		AllowedOrigins:   config.AllowedOrigins,
		MaxBodyBytes:     config.MaxBodyBytes,
		ShutdownTimeout:  Duration(config.ShutdownTimeout),
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	config.Backend = c.Backend
	config.ListenAddr = c.ListenAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.PostgresHost = c.PostgresHost
	config.PostgresPort = c.PostgresPort
	config.PostgresUser = c.PostgresUser
	config.PostgresPassword = c.PostgresPassword
	config.PostgresDB = c.PostgresDB
	config.PostgresSSLMode = c.PostgresSSLMode
	config.DataDir = c.DataDir
	config.TemplateDir = c.TemplateDir
	config.PublicHost = c.PublicHost
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
	config.MetricsEnabled = c.MetricsEnabled
	config.HealthAddr = c.HealthAddr
	config.AllowedOrigins = c.AllowedOrigins
	config.MaxBodyBytes = c.MaxBodyBytes
	config.ShutdownTimeout = time.Duration(c.ShutdownTimeout)
	return nil
}
