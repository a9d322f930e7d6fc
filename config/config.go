package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration, read from the environment.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Razorpay RazorpayConfig
	Courier  CourierConfig
	Pincode  PincodeConfig
	Log      LogConfig
	HTTP     HTTPConfig
}

type AppConfig struct {
	Name string
	Env  string // development, production
	Port string
}

type DatabaseConfig struct {
	URL      string // takes precedence when set
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret          string
	GuestExpiration time.Duration
}

// RazorpayConfig holds payment gateway credentials. WebhookSecret signs the
// server-side payment confirmation callbacks.
type RazorpayConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
}

type CourierConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type PincodeConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

type HTTPConfig struct {
	AdminAPIKey  string
	AllowOrigins []string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("port"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("database.url"),
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:          v.GetString("jwt.secret"),
			GuestExpiration: v.GetDuration("jwt.guest.expiration"),
		},
		Razorpay: RazorpayConfig{
			KeyID:         v.GetString("razorpay.key.id"),
			KeySecret:     v.GetString("razorpay.key.secret"),
			WebhookSecret: v.GetString("razorpay.webhook.secret"),
		},
		Courier: CourierConfig{
			BaseURL: v.GetString("courier.base.url"),
			Token:   v.GetString("courier.token"),
			Timeout: v.GetDuration("courier.timeout"),
		},
		Pincode: PincodeConfig{
			BaseURL:  v.GetString("pincode.base.url"),
			Timeout:  v.GetDuration("pincode.timeout"),
			CacheTTL: v.GetDuration("pincode.cache.ttl"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		HTTP: HTTPConfig{
			AdminAPIKey:  v.GetString("admin.api.key"),
			AllowOrigins: v.GetStringSlice("cors.allow.origins"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "vastra-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("port", "8080")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.name", "vastra")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.guest.expiration", 24*time.Hour)

	v.SetDefault("courier.timeout", 10*time.Second)
	v.SetDefault("pincode.timeout", 5*time.Second)
	v.SetDefault("pincode.cache.ttl", 12*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allow.origins", []string{"*"})
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Razorpay.KeyID == "" || c.Razorpay.KeySecret == "" {
		return fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required")
	}
	if c.Razorpay.WebhookSecret == "" {
		return fmt.Errorf("RAZORPAY_WEBHOOK_SECRET is required")
	}
	return nil
}

// DSN builds the postgres connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		d.Host, d.User, d.Password, d.DBName, d.Port, d.SSLMode,
	)
}
