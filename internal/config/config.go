package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv         string `mapstructure:"APP_ENV"`
	Port           string `mapstructure:"PORT"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPass            string        `mapstructure:"DB_PASS"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxIdleTime time.Duration `mapstructure:"DB_CONN_MAX_IDLE_TIME"`
	DBConnectTimeout  time.Duration `mapstructure:"DB_CONNECT_TIMEOUT"`

	RedisURL string `mapstructure:"REDIS_URL"`

	JWTSecret  string        `mapstructure:"JWT_SECRET"`
	JWTTTL     time.Duration `mapstructure:"JWT_TTL"`
	BcryptCost int           `mapstructure:"BCRYPT_COST"`

	AuthRateLimit  int           `mapstructure:"AUTH_RATE_LIMIT"`
	AuthRateWindow time.Duration `mapstructure:"AUTH_RATE_WINDOW"`

	SeedAdminEmail    string `mapstructure:"SEED_ADMIN_EMAIL"`
	SeedAdminPassword string `mapstructure:"SEED_ADMIN_PASSWORD"`
}

var defaults = map[string]any{
	"APP_ENV":               "development",
	"PORT":                  "8080",
	"ALLOWED_ORIGINS":       "http://localhost:3000",
	"DB_HOST":               "localhost",
	"DB_PORT":               "5432",
	"DB_USER":               "postgres",
	"DB_NAME":               "store_rating",
	"DB_MAX_OPEN_CONNS":     20,
	"DB_MAX_IDLE_CONNS":     5,
	"DB_CONN_MAX_IDLE_TIME": "30s",
	"DB_CONNECT_TIMEOUT":    "2s",
	"JWT_TTL":               "24h",
	"BCRYPT_COST":           12,
	"AUTH_RATE_LIMIT":       20,
	"AUTH_RATE_WINDOW":      "1m",
	"SEED_ADMIN_EMAIL":      "admin@storerating.local",
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	// Unmarshal only sees keys viper knows about.
	for _, key := range []string{"DATABASE_URL", "DB_PASS", "REDIS_URL", "JWT_SECRET", "SEED_ADMIN_PASSWORD"} {
		v.SetDefault(key, "")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET must be set in production")
		}
		c.JWTSecret = "change-me"
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("invalid JWT_TTL: %s", c.JWTTTL)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("invalid BCRYPT_COST: %d", c.BcryptCost)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// DSN returns DATABASE_URL when set, otherwise builds one from the DB_* keys.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable connect_timeout=%d",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort, int(c.DBConnectTimeout.Seconds()),
	)
}
