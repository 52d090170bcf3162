package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks field constraints and the cross-field rules between the
// selected backend and its connection settings.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
		return fmt.Errorf("invalid config: ListenAddr %q: %w", c.ListenAddr, err)
	}
	if c.HealthAddr != "" {
		if _, _, err := net.SplitHostPort(c.HealthAddr); err != nil {
			return fmt.Errorf("invalid config: HealthAddr %q: %w", c.HealthAddr, err)
		}
	}

	switch c.Backend {
	case BackendSQLite:
		if c.DataDir == "" {
			return errors.New("invalid config: DataDir is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.DatabaseDSN == "" && c.PostgresHost == "" {
			return errors.New("invalid config: DatabaseDSN or PostgresHost is required for the postgres backend")
		}
	}
	return nil
}
