package config

import (
	"flag"
	"io"
	"strings"

	"github.com/dmitrijs2005/toomanytabs/internal/flagx"
)

// flagNames lists every flag parseFlags understands; anything else in args
// (including -c/-config) is filtered out first.
var flagNames = []string{
	"-b", "-a", "-d", "-data-dir", "-templates", "-public-host",
	"-log-level", "-log-format", "-metrics", "-health-addr", "-origins",
	"-max-body", "-shutdown-timeout",
}

// parseFlags populates Config fields from command-line flags.
//
//	-b string               backend: sqlite or postgres
//	-a string               HTTP listen address (e.g. ":9999")
//	-d string               PostgreSQL DSN
//	-data-dir string        SQLite data directory
//	-templates string       directory with custom *.html views
//	-public-host string     host used in shareable links
//	-log-level string       debug, info, warn or error
//	-log-format string      json or text
//	-metrics bool           expose /metrics (use -metrics=false to disable)
//	-health-addr string     gRPC health listen address
//	-origins string         comma separated CORS origins
//	-max-body int           maximum form body size in bytes
//	-shutdown-timeout dur   graceful shutdown deadline
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.Backend, "b", config.Backend, "storage backend (sqlite|postgres)")
	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DataDir, "data-dir", config.DataDir, "sqlite data directory")
	fs.StringVar(&config.TemplateDir, "templates", config.TemplateDir, "template directory")
	fs.StringVar(&config.PublicHost, "public-host", config.PublicHost, "host for shareable links")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format")
	fs.BoolVar(&config.MetricsEnabled, "metrics", config.MetricsEnabled, "expose prometheus metrics")
	fs.StringVar(&config.HealthAddr, "health-addr", config.HealthAddr, "gRPC health address")
	origins := fs.String("origins", strings.Join(config.AllowedOrigins, ","), "CORS allowed origins")
	fs.Int64Var(&config.MaxBodyBytes, "max-body", config.MaxBodyBytes, "max request body bytes")
	fs.DurationVar(&config.ShutdownTimeout, "shutdown-timeout", config.ShutdownTimeout, "graceful shutdown timeout")

	if err := fs.Parse(flagx.FilterArgs(args, flagNames)); err != nil {
		return err
	}

	config.AllowedOrigins = splitList(*origins)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
