package postgres

import (
	"fmt"

	"github.com/GoSim-25-26J-441/site-builder-backend/config"
)

// DSN returns cfg.DSN when set, otherwise a key/value DSN built from the
// individual fields.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslMode,
	)
}
