package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application, loaded from the
// environment.
type Config struct {
	Port            string `mapstructure:"PORT"`
	GinMode         string `mapstructure:"GIN_MODE"`
	DBPath          string `mapstructure:"DB_PATH"`
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	UploadDir       string `mapstructure:"UPLOAD_DIR"`
	MaxUploadMB     int64  `mapstructure:"MAX_UPLOAD_MB"`
	PDFServiceURL   string `mapstructure:"PDF_SERVICE_URL"`
	InternalBaseURL string `mapstructure:"INTERNAL_BASE_URL"`
	ClientURL       string `mapstructure:"CLIENT_URL"`
}

// Load reads configuration from environment variables using Viper.
func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("DB_PATH", "./data/monstermaker.db")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("UPLOAD_DIR", "./data/uploads")
	viper.SetDefault("MAX_UPLOAD_MB", 5)
	viper.SetDefault("PDF_SERVICE_URL", "http://localhost:3001")
	// The print route is fetched service-to-service by the PDF renderer, so
	// it is addressed via the internal hostname, not the public one.
	viper.SetDefault("INTERNAL_BASE_URL", "http://localhost:8080")
	viper.SetDefault("CLIENT_URL", "http://localhost:5173")

	for _, key := range []string{
		"PORT", "GIN_MODE", "DB_PATH", "JWT_SECRET", "UPLOAD_DIR",
		"MAX_UPLOAD_MB", "PDF_SERVICE_URL", "INTERNAL_BASE_URL", "CLIENT_URL",
	} {
		viper.BindEnv(key)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	if cfg.JWTSecret == "" {
		if cfg.GinMode == "release" {
			return nil, errors.New("JWT_SECRET is required in release mode")
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}

	return &cfg, nil
}
