package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Session  SessionConfig  `mapstructure:"session" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// SessionConfig tunes the session engine. The goals are the per-phase
// recommended counts of the multi-phase journey; completion against them is
// advisory, never enforced.
type SessionConfig struct {
	PreparationGoal int `mapstructure:"preparation_goal" validate:"required,gt=0"`
	PeakGoal        int `mapstructure:"peak_goal" validate:"required,gt=0"`
	IntegrationGoal int `mapstructure:"integration_goal" validate:"required,gt=0"`
}
