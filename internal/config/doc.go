// Package config defines the application configuration structure and the
// viper-based loading logic that populates it from defaults, an optional
// config file, and TETHER_-prefixed environment variables.
package config
