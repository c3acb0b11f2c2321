package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/resort-pms/service-pricing/internal/pkg/database"
)

// ServiceConfig holds all configuration for the pricing service.
type ServiceConfig struct {
	Port         string
	AppEnv       string
	DBConfig     database.PostgresConfig
	KafkaBrokers []string
}

// Load reads configuration from PRICING_-prefixed environment variables.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("PRICING")
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", "8084")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")

	for _, key := range []string{"DB_USER", "DB_PASSWORD", "DB_NAME"} {
		if !v.IsSet(key) {
			return nil, fmt.Errorf("missing required config: PRICING_%s", key)
		}
	}

	port := v.GetString("SERVICE_PORT")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return &ServiceConfig{
		Port:   port,
		AppEnv: v.GetString("APP_ENV"),
		DBConfig: database.PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		KafkaBrokers: strings.Split(v.GetString("KAFKA_BROKERS"), ","),
	}, nil
}
