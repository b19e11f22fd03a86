package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds every value the application reads from the environment.
// It is built once in main and handed to the services that need it, so
// business logic never reaches for ambient environment state.
type Config struct {
	Port        string
	DatabaseDSN string

	JWTSecret            string
	AuthTokenTTL         time.Duration
	VerificationTokenTTL time.Duration

	BaseURL     string
	FrontendURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string

	S3Bucket string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using process environment")
	}

	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("AUTH_TOKEN_TTL", "1h")
	viper.SetDefault("VERIFICATION_TOKEN_TTL", "24h")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("FRONTEND_URL", "http://localhost:4200")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("S3_BUCKET", "sokoni")

	cfg := &Config{
		Port:                 viper.GetString("PORT"),
		DatabaseDSN:          viper.GetString("DATABASE_DSN"),
		JWTSecret:            viper.GetString("JWT_SECRET"),
		AuthTokenTTL:         viper.GetDuration("AUTH_TOKEN_TTL"),
		VerificationTokenTTL: viper.GetDuration("VERIFICATION_TOKEN_TTL"),
		BaseURL:              viper.GetString("BASE_URL"),
		FrontendURL:          viper.GetString("FRONTEND_URL"),
		SMTPHost:             viper.GetString("SMTP_HOST"),
		SMTPPort:             viper.GetInt("SMTP_PORT"),
		SMTPUsername:         viper.GetString("SMTP_USERNAME"),
		SMTPPassword:         viper.GetString("SMTP_PASSWORD"),
		FromEmail:            viper.GetString("FROM_EMAIL"),
		S3Bucket:             viper.GetString("S3_BUCKET"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	if cfg.DatabaseDSN == "" {
		return nil, errors.New("DATABASE_DSN must be set")
	}

	return cfg, nil
}
