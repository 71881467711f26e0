// Package config loads the application configuration from a YAML file,
// applies environment overrides (optionally read from a .env file) and
// validates the result.
//
// Command-line flags are applied on top of the loaded Config by the cli
// package; this package knows nothing about flags.
package config
