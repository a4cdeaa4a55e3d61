package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Security SecurityConfig
}

type AppConfig struct {
	Name         string
	Port         string
	Debug        bool
	LogPath      string
	DefaultRoute string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	MaxConns    int32
	AutoMigrate bool
}

type RedisConfig struct {
	Addr string
	DB   int
}

// SessionConfig controls how session tokens are minted and stored.
// Strategy is either "jwt" or "database".
type SessionConfig struct {
	Strategy     string
	Secret       string
	TTLHours     int
	CookieName   string
	CookieSecure bool
}

type SecurityConfig struct {
	HashCost       int
	AllowedOrigins []string
	LoginRate      float64
	LoginBurst     int
	TrustProxy     bool
}

const (
	SessionStrategyJWT      = "jwt"
	SessionStrategyDatabase = "database"
)

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "starter-kit")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DEFAULT_ROUTE", "/")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("HASH_COST", DefaultHashCost)
	viper.SetDefault("SESSION_STRATEGY", SessionStrategyJWT)
	viper.SetDefault("SESSION_TTL_HOURS", 24*30)
	viper.SetDefault("SESSION_COOKIE_NAME", "session-token")
	viper.SetDefault("SESSION_COOKIE_SECURE", false)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("LOGIN_RATE", 0.5)
	viper.SetDefault("LOGIN_BURST", 5)
	viper.SetDefault("TRUST_PROXY", false)

	viper.AutomaticEnv()

	// .env is optional, plain environment variables are enough
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Name:         viper.GetString("APP_NAME"),
			Port:         viper.GetString("PORT"),
			Debug:        viper.GetBool("DEBUG"),
			LogPath:      viper.GetString("LOG_PATH"),
			DefaultRoute: viper.GetString("DEFAULT_ROUTE"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			Name:        viper.GetString("DB_NAME"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			MaxConns:    viper.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Addr: viper.GetString("REDIS_ADDR"),
			DB:   viper.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Strategy:     strings.ToLower(viper.GetString("SESSION_STRATEGY")),
			Secret:       viper.GetString("SESSION_SECRET"),
			TTLHours:     viper.GetInt("SESSION_TTL_HOURS"),
			CookieName:   viper.GetString("SESSION_COOKIE_NAME"),
			CookieSecure: viper.GetBool("SESSION_COOKIE_SECURE"),
		},
		Security: SecurityConfig{
			HashCost:       viper.GetInt("HASH_COST"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			LoginRate:      viper.GetFloat64("LOGIN_RATE"),
			LoginBurst:     viper.GetInt("LOGIN_BURST"),
			TrustProxy:     viper.GetBool("TRUST_PROXY"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks settings that would otherwise fail at first request.
func (c *Config) Validate() error {
	switch c.Session.Strategy {
	case SessionStrategyJWT:
		if c.Session.Secret == "" {
			return fmt.Errorf("SESSION_SECRET is required for the %s session strategy", SessionStrategyJWT)
		}
	case SessionStrategyDatabase:
	default:
		return fmt.Errorf("unknown SESSION_STRATEGY %q", c.Session.Strategy)
	}

	if c.Session.TTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive, got %d", c.Session.TTLHours)
	}

	if err := ValidateHashCost(c.Security.HashCost); err != nil {
		return err
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
