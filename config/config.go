package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string
	Port        int

	Env         string
	LogLevel    string
	HTTPTimeout int32

	PublicDir string
	I18nDir   string

	UpstreamTimeout  time.Duration
	LocationIQAPIKey string
	LocationIQURL    string
	GeoNamesUsername string
	GeoNamesURL      string
	SunriseSunsetURL string

	OtelEndpoint string
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "sunrise-service")

	v.SetDefault("PORT", 8000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_TIMEOUT", 15)
	v.SetDefault("PUBLIC_DIR", "frontend")
	v.SetDefault("I18N_DIR", "i18n")
	v.SetDefault("UPSTREAM_TIMEOUT", 10*time.Second)
	v.SetDefault("LOCATIONIQ_URL", "https://us1.locationiq.com/v1/search")
	v.SetDefault("GEONAMES_USERNAME", "nmai2")
	v.SetDefault("GEONAMES_URL", "http://api.geonames.org/timezoneJSON")
	v.SetDefault("SUNRISE_SUNSET_URL", "https://api.sunrise-sunset.org/json")

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	config := &Config{
		ServiceName:      v.GetString("SERVICE_NAME"),
		Port:             v.GetInt("PORT"),
		Env:              v.GetString("ENV"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		HTTPTimeout:      v.GetInt32("HTTP_TIMEOUT"),
		PublicDir:        v.GetString("PUBLIC_DIR"),
		I18nDir:          v.GetString("I18N_DIR"),
		UpstreamTimeout:  v.GetDuration("UPSTREAM_TIMEOUT"),
		LocationIQAPIKey: v.GetString("LOCATIONIQ_API_KEY"),
		LocationIQURL:    v.GetString("LOCATIONIQ_URL"),
		GeoNamesUsername: v.GetString("GEONAMES_USERNAME"),
		GeoNamesURL:      v.GetString("GEONAMES_URL"),
		SunriseSunsetURL: v.GetString("SUNRISE_SUNSET_URL"),
		OtelEndpoint:     v.GetString("OTEL_ENDPOINT"),
	}

	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", config.Port)
	}

	if config.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT %s", config.UpstreamTimeout)
	}

	if config.LocationIQAPIKey == "" {
		log.Warn().Msg("LOCATIONIQ_API_KEY is not set, geocode requests will be rejected upstream")
	}

	return config, nil
}

func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}
