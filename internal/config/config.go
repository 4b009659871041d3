package config

import (
	"github.com/spf13/viper"
)

// Config holds the environment-supplied process configuration.
type Config struct {
	AppPort       string
	DatabaseDSN   string
	JWTSecret     string
	AllowedOrigin string
	RabbitMQURL   string
	// LocalMode runs the server with the in-memory store and the auth-skipped
	// gate, for development without Postgres or credentials.
	LocalMode bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	viper.SetDefault("APP_PORT", ":4000")
	viper.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=shopsync port=5432 sslmode=disable")
	viper.SetDefault("JWT_SECRET", "dev_jwt_secret")
	viper.SetDefault("ALLOWED_ORIGIN", "*")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("LOCAL_MODE", false)
	viper.AutomaticEnv()

	return Config{
		AppPort:       viper.GetString("APP_PORT"),
		DatabaseDSN:   viper.GetString("DATABASE_DSN"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		AllowedOrigin: viper.GetString("ALLOWED_ORIGIN"),
		RabbitMQURL:   viper.GetString("RABBITMQ_URL"),
		LocalMode:     viper.GetBool("LOCAL_MODE"),
	}
}
