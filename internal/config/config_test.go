package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	saved := os.Args
	os.Args = append([]string{"gameshelf"}, args...)
	t.Cleanup(func() { os.Args = saved })
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "file", cfg.StorageBackend)
	require.Equal(t, "gameshelf.json", cfg.SnapshotPath)
	require.Equal(t, "gameshelf.db", cfg.DatabaseDSN)
	require.NotEmpty(t, cfg.SecretKey)
	require.Equal(t, 720*time.Hour, cfg.SessionTokenValidityDuration)
	require.Empty(t, cfg.CatalogFile)
	require.Equal(t, "admin@example.com", cfg.SeedAdminEmail)
}

func TestLoadConfig_NoOverrides(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()

	defaults := &Config{}
	defaults.LoadDefaults()
	require.Equal(t, defaults, cfg)
}

func TestLoadConfig_Flags(t *testing.T) {
	withArgs(t, "-b", "sqlite", "-d", "custom.db", "-s", "flag-secret", "-t", "48")

	cfg := LoadConfig()

	require.Equal(t, "sqlite", cfg.StorageBackend)
	require.Equal(t, "custom.db", cfg.DatabaseDSN)
	require.Equal(t, "flag-secret", cfg.SecretKey)
	require.Equal(t, 48*time.Hour, cfg.SessionTokenValidityDuration)
}
