package config

import (
	"flag"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database DSN
//	-driver database driver ("pgx" or "sqlite3")
//	-key base64-encoded credential encryption key
//	-c/-config json file path with configs
//	-table entity table for identifier resolution
//	-column identifier column for identifier resolution
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var databaseDriver string
	var encryptionKey string
	var jsonConfigPath string
	var resolveTable string
	var resolveColumn string

	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "driver", "", "Database driver (pgx or sqlite3)")
	flag.StringVar(&encryptionKey, "key", "", "Base64-encoded encryption key")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&resolveTable, "table", "", "Entity table for identifier resolution")
	flag.StringVar(&resolveColumn, "column", "", "Identifier column for identifier resolution")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			EncryptionKey: encryptionKey,
		},
		Storage: Storage{
			DB: DB{
				DSN:    databaseDSN,
				Driver: databaseDriver,
			},
		},
		Resolve: Resolve{
			Table:    resolveTable,
			IDColumn: resolveColumn,
		},
		JSONFilePath: jsonConfigPath,
	}
}
