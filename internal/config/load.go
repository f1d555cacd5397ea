package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables (prefix STOREFRONT_,
// nested keys joined with underscores, e.g. STOREFRONT_AUTH_JWT_SECRET) and
// an optional config.yaml in the working directory. Environment variables
// take precedence over file values; both override the defaults.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults mirror the documented token and hashing parameters.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.access_token_ttl_minutes", 60)
	v.SetDefault("auth.refresh_token_ttl_days", 15)
	v.SetDefault("auth.recovery_token_ttl_minutes", 30)
	v.SetDefault("auth.cookie_same_site", "strict")
	v.SetDefault("auth.argon2_time", 2)
	v.SetDefault("auth.argon2_memory_kib", 64*1024)
	v.SetDefault("auth.argon2_parallelism", 4)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so the
	// secret-bearing keys without defaults are bound explicitly.
	for _, key := range []string{"database.url", "auth.jwt_secret"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; env vars and defaults carry it.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
