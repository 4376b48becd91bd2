// Package config provides configuration management for the table reconciler.
//
// It utilizes Viper for loading configuration from environment variables,
// a .env file and an optional config.yaml.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, run timeout)
//   - Database: connection details for the compared tables and the result surface
//   - Storage: S3/MinIO credentials for sample datasets and run reports
//   - Log: Logging level and format
//   - Compare: output location, run id format, rule source and sample sink
//
// Environment variables map to nested keys by replacing dots with
// underscores, e.g. COMPARE_OUTPUT_LOCATION sets compare.output_location.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Compare.OutputLocation)
package config
