package config

import (
	"encoding/json"
	"os"
	"time"

	"gameshelf/internal/flagx"
	"gameshelf/internal/timex"
)

// JsonConfig is the DTO used for reading JSON configuration files. Interval
// fields use timex.Duration so values may be strings ("720h") or integer
// nanoseconds. After unmarshalling, non-zero fields are copied into the
// runtime Config.
type JsonConfig struct {
	StorageBackend               string         `json:"storage_backend"`
	SnapshotPath                 string         `json:"snapshot_path"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	SessionTokenValidityDuration timex.Duration `json:"session_token_validity_duration"`
	CatalogFile                  string         `json:"catalog_file"`
	SeedAdminName                string         `json:"seed_admin_name"`
	SeedAdminEmail               string         `json:"seed_admin_email"`
	SeedAdminPassword            string         `json:"seed_admin_password"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When no file is named, nothing
// happens. An unreadable or invalid file panics: a config file that was
// explicitly requested but cannot be used is a startup error, not something
// to silently skip.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.StorageBackend != "" {
		config.StorageBackend = c.StorageBackend
	}
	if c.SnapshotPath != "" {
		config.SnapshotPath = c.SnapshotPath
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionTokenValidityDuration.Duration != 0 {
		config.SessionTokenValidityDuration = time.Duration(c.SessionTokenValidityDuration.Duration)
	}
	if c.CatalogFile != "" {
		config.CatalogFile = c.CatalogFile
	}
	if c.SeedAdminName != "" {
		config.SeedAdminName = c.SeedAdminName
	}
	if c.SeedAdminEmail != "" {
		config.SeedAdminEmail = c.SeedAdminEmail
	}
	if c.SeedAdminPassword != "" {
		config.SeedAdminPassword = c.SeedAdminPassword
	}
}
