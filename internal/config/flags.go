package config

import (
	"flag"
	"os"
	"time"

	"gameshelf/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   storage backend: memory, file or sqlite
//	-f string   snapshot file path (file backend)
//	-d string   sqlite DSN (sqlite backend)
//	-s string   HMAC secret key for session tokens
//	-t int      session token validity, hours
//	-g string   catalog JSON file overriding the embedded seed
//
// The args are filtered through flagx.FilterArgs first, so flags owned by
// other components (including the testing package) never collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-f", "-d", "-s", "-t", "-g"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.StorageBackend, "b", config.StorageBackend, "storage backend (memory|file|sqlite)")
	fs.StringVar(&config.SnapshotPath, "f", config.SnapshotPath, "snapshot file path")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "sqlite DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityHours := int(config.SessionTokenValidityDuration / time.Hour)
	fs.IntVar(&tokenValidityHours, "t", tokenValidityHours, "session token validity, hours")

	fs.StringVar(&config.CatalogFile, "g", config.CatalogFile, "catalog file path")

	_ = fs.Parse(args)

	config.SessionTokenValidityDuration = time.Duration(tokenValidityHours) * time.Hour
}
