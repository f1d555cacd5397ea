package config

import "time"

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains token and password-hashing settings.
//
// Access tokens are stateless and short-lived; refresh and recovery tokens
// are longer-lived and backed by a persisted row per user.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	AccessTokenTTLMinutes   int `mapstructure:"access_token_ttl_minutes"   validate:"required,gt=0"`
	RefreshTokenTTLDays     int `mapstructure:"refresh_token_ttl_days"     validate:"required,gt=0"`
	RecoveryTokenTTLMinutes int `mapstructure:"recovery_token_ttl_minutes" validate:"required,gt=0"`

	// CookieSameSite controls the SameSite attribute of the refresh-token
	// cookie handed to the transport layer.
	CookieSameSite string `mapstructure:"cookie_same_site" validate:"required,oneof=strict lax none"`

	// Argon2id work factors for password hashing.
	Argon2Time        uint32 `mapstructure:"argon2_time"        validate:"required,gt=0"`
	Argon2MemoryKiB   uint32 `mapstructure:"argon2_memory_kib"  validate:"required,gt=0"`
	Argon2Parallelism uint8  `mapstructure:"argon2_parallelism" validate:"required,gt=0"`
}

// AccessTokenTTL returns the access-token lifetime as a duration.
func (c AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh-token lifetime as a duration.
func (c AuthConfig) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLDays) * 24 * time.Hour
}

// RecoveryTokenTTL returns the recovery-token lifetime as a duration.
func (c AuthConfig) RecoveryTokenTTL() time.Duration {
	return time.Duration(c.RecoveryTokenTTLMinutes) * time.Minute
}
