package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// EA Pro Clubs API
	EAAPIBaseURL string   `mapstructure:"EA_API_BASE_URL"`
	EAPlatform   string   `mapstructure:"EA_PLATFORM"`
	EAMatchType  string   `mapstructure:"EA_MATCH_TYPE"`
	EAClubIDs    []string `mapstructure:"EA_CLUB_IDS"`

	// League
	CurrentSeason int `mapstructure:"CURRENT_SEASON"`

	// Ingestion
	SyncSchedule            string        `mapstructure:"SYNC_SCHEDULE"`
	ExternalAPITimeout      time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`
	MatchCacheTTL           time.Duration `mapstructure:"MATCH_CACHE_TTL"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("EA_API_BASE_URL", "https://proclubs.ea.com")
	viper.SetDefault("EA_PLATFORM", "common-gen5")
	viper.SetDefault("EA_MATCH_TYPE", "club_private")
	viper.SetDefault("EA_CLUB_IDS", "")
	viper.SetDefault("CURRENT_SEASON", 1)
	viper.SetDefault("SYNC_SCHEDULE", "*/30 * * * *")
	viper.SetDefault("EXTERNAL_API_TIMEOUT", "10s")
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	viper.SetDefault("MATCH_CACHE_TTL", "15m")

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse club ids from comma-separated string
	if clubsStr := viper.GetString("EA_CLUB_IDS"); clubsStr != "" {
		config.EAClubIDs = strings.Split(clubsStr, ",")
	}

	if config.CurrentSeason <= 0 {
		return nil, fmt.Errorf("CURRENT_SEASON must be positive, got %d", config.CurrentSeason)
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
