package config

import "time"

// Config is the application configuration.
type Config struct {
	// Feed is the network feed loaded at startup. Empty starts with an
	// empty map.
	Feed     string         `yaml:"feed"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

type LogConfig struct {
	Format string `yaml:"format" validate:"oneof=text json"`
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" validate:"gte=0,lte=65535"`
	AllowedOrigins  []string      `yaml:"allowed_origins" validate:"dive,required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
}

type SnapshotConfig struct {
	TTL time.Duration `yaml:"ttl" validate:"gte=0"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Format: "json",
			Level:  "info",
		},
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 5 * time.Second,
		},
		Snapshot: SnapshotConfig{
			TTL: time.Minute,
		},
	}
}
