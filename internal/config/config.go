// Package config provides configuration management for the idkspot daemon.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values for the daemon.
type Config struct {
	// Server configuration
	Port string
	Env  string

	// Database configuration
	DatabaseURL string

	// Logging
	LogLevel string

	// Hotspot defaults (used when a start request omits a field)
	HotspotSSID      string
	HotspotInterface string // empty selects the first capable interface
	HotspotChannel   int    // 0 uses the interface's current channel

	// External tools
	CreateAPPath string
	ElevatePath  string // privilege elevation wrapper; empty runs tools directly
	IWPath       string
	LeaseFile    string

	// Lifecycle bounds
	StartTimeout    time.Duration // readiness marker deadline during Starting
	StopGracePeriod time.Duration // graceful exit deadline before SIGKILL
	CommandTimeout  time.Duration // bound for one-shot tool invocations

	// Device enumeration
	ResolveHostnames bool // reverse-DNS lookups for connected devices

	// Session history retention
	SessionHistoryLimit int

	// CORS configuration
	CORSOrigin string
}

// Load loads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		// Server
		Port: getEnv("PORT", "8737"),
		Env:  getEnv("ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "file:./idkspot.db"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Hotspot defaults
		HotspotSSID:      getEnv("HOTSPOT_SSID", "idkspot"),
		HotspotInterface: getEnv("HOTSPOT_INTERFACE", ""),
		HotspotChannel:   getEnvInt("HOTSPOT_CHANNEL", 0),

		// External tools
		CreateAPPath: getEnv("CREATE_AP_PATH", "create_ap"),
		ElevatePath:  getEnv("ELEVATE_PATH", "pkexec"),
		IWPath:       getEnv("IW_PATH", "iw"),
		LeaseFile:    getEnv("LEASE_FILE", "/var/lib/misc/dnsmasq.leases"),

		// Lifecycle bounds
		StartTimeout:    time.Duration(getEnvInt("HOTSPOT_START_TIMEOUT_MS", 30000)) * time.Millisecond,
		StopGracePeriod: time.Duration(getEnvInt("HOTSPOT_STOP_GRACE_MS", 10000)) * time.Millisecond,
		CommandTimeout:  time.Duration(getEnvInt("COMMAND_TIMEOUT_MS", 10000)) * time.Millisecond,

		// Device enumeration
		ResolveHostnames: getEnvBool("RESOLVE_HOSTNAMES", true),

		// Session history
		SessionHistoryLimit: getEnvInt("SESSION_HISTORY_LIMIT", 200),

		// CORS
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default value.
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
