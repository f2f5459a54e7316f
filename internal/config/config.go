// Package config handles configuration for the game shelf core, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the store.
//
// Fields:
//   - StorageBackend: snapshot backend, one of "memory", "file", "sqlite".
//   - SnapshotPath: path of the JSON snapshot (file backend).
//   - DatabaseDSN: sqlite DSN (sqlite backend).
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use
//     the test default in production.
//   - SessionTokenValidityDuration: how long a persisted session survives
//     before restart restores to logged-out.
//   - CatalogFile: optional JSON file overriding the embedded catalog seed.
//   - SeedAdminName / SeedAdminEmail / SeedAdminPassword: administrator
//     account created when the store starts with no snapshot.
type Config struct {
	StorageBackend               string
	SnapshotPath                 string
	DatabaseDSN                  string
	SecretKey                    string
	SessionTokenValidityDuration time.Duration
	CatalogFile                  string
	SeedAdminName                string
	SeedAdminEmail               string
	SeedAdminPassword            string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.StorageBackend = "file"
	c.SnapshotPath = "gameshelf.json"
	c.DatabaseDSN = "gameshelf.db"
	c.SecretKey = "secretKey"
	c.SessionTokenValidityDuration = 720 * time.Hour
	c.CatalogFile = ""
	c.SeedAdminName = "Admin User"
	c.SeedAdminEmail = "admin@example.com"
	c.SeedAdminPassword = "admin123"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
