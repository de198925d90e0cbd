
package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	ServerPort string         `mapstructure:"SERVER_PORT"`
	GinMode    string         `mapstructure:"GIN_MODE"`
	Database   DatabaseConfig `mapstructure:"DATABASE"`
	Session    SessionConfig  `mapstructure:"SESSION"`
	Admin      AdminConfig    `mapstructure:"ADMIN"`
	SeedFile   string         `mapstructure:"SEED_FILE"`
}

// DatabaseConfig selects the storage driver and its DSN
type DatabaseConfig struct {
	Driver string `mapstructure:"DRIVER"` // "sqlite" or "postgres"
	DSN    string `mapstructure:"DSN"`
}

// SessionConfig holds the signed session cookie parameters
type SessionConfig struct {
	SigningKey string `mapstructure:"SIGNING_KEY"`
	Issuer     string `mapstructure:"ISSUER"`
}

// AdminConfig holds the default admin credential seeded into storage
type AdminConfig struct {
	Username string `mapstructure:"USERNAME"`
	Password string `mapstructure:"PASSWORD"`
}

// LoadConfig loads configuration from environment variables and config.yaml
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config") // config.yaml
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	// Set defaults
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("GIN_MODE", "debug") // gin.DebugMode, gin.ReleaseMode, gin.TestMode
	viper.SetDefault("DATABASE.DRIVER", "sqlite")
	viper.SetDefault("DATABASE.DSN", "file:examportal.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)")
	viper.SetDefault("SESSION.SIGNING_KEY", "examportal-session-secret") // IMPORTANT: Change this in production
	viper.SetDefault("SESSION.ISSUER", "examportal.local")
	viper.SetDefault("ADMIN.USERNAME", "admin")
	viper.SetDefault("ADMIN.PASSWORD", "admin123")
	viper.SetDefault("SEED_FILE", "") // e.g. "questions.yaml"; empty disables startup seeding
	// Read from config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("config.yaml not found, using environment variables and defaults")
		} else {
			return nil, fmt.Errorf("fatal error config file: %w", err)
		}
	}
	// Override with environment variables (e.g., EXAMPORTAL_SERVER_PORT)
	viper.SetEnvPrefix("EXAMPORTAL")
	viper.AutomaticEnv()
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &cfg, nil
}
