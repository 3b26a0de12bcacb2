// Package config provides configuration management for the rules service.
//
// It uses godotenv to load an optional .env file and Viper to resolve every
// setting from environment variables, with defaults taken from the `default`
// struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP server settings (port, API key, read timeout)
//   - Storage: MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Database: SQL driver and connection details
//   - Catalog: rules document source (embedded, file, storage, database)
//
// Keys map to environment variables by upper-casing and replacing dots with
// underscores, so catalog.source is read from CATALOG_SOURCE.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Catalog.Source)
package config
