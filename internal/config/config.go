package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/xxxsen/common/logger"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type AdminSeedConfig struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Config struct {
	Port        int              `json:"port"`
	Env         string           `json:"env"`
	JWTSecret   string           `json:"jwt_secret"`
	JWTTTLHours int              `json:"jwt_ttl_hours"`
	Database    DatabaseConfig   `json:"database"`
	AdminSeed   AdminSeedConfig  `json:"admin_seed"`
	CORSOrigins []string         `json:"cors_origins"`
	LogConfig   logger.LogConfig `json:"log_config"`

	// OpenNotifications keeps the notification endpoints reachable without a
	// bearer token, matching the behavior older front-end builds rely on.
	OpenNotifications bool `json:"open_notifications"`

	LoginRateLimitSeconds     int `json:"login_rate_limit_seconds"`
	NotificationRetentionDays int `json:"notification_retention_days"`
}

func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// Load reads the optional JSON config file, applies environment overrides
// and validates the result. An empty path starts from defaults only.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if err := json.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Env, "APP_ENV")
	setString(&c.JWTSecret, "JWT_SECRET")
	setInt(&c.Port, "PORT")
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.AdminSeed.Email, "ADMIN_EMAIL")
	setString(&c.AdminSeed.Password, "ADMIN_PASSWORD")
}

func (c *Config) applyDefaults() error {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.Env == "" {
		c.Env = EnvDev
	}
	if c.Env != EnvDev && c.Env != EnvProd {
		return fmt.Errorf("env must be %q or %q", EnvDev, EnvProd)
	}
	if c.JWTTTLHours == 0 {
		c.JWTTTLHours = 8
	}
	if c.JWTSecret == "" {
		if c.IsProd() {
			return fmt.Errorf("jwt_secret is required")
		}
		c.JWTSecret = "dev-secret"
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.AdminSeed.Email == "" {
		c.AdminSeed.Email = "admin@example.com"
	}
	if c.AdminSeed.Password == "" {
		if c.IsProd() {
			return fmt.Errorf("admin_seed.password is required")
		}
		c.AdminSeed.Password = "change-me"
	}
	if c.LogConfig.Level == "" {
		c.LogConfig.Level = "info"
	}
	if !c.IsProd() {
		c.LogConfig.Console = true
	}
	return nil
}

func setString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setInt(dst *int, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			*dst = parsed
		}
	}
}
