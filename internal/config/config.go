package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting of the server, the CLI and the scheduled jobs.
type Config struct {
	AppPort string

	DBDriver    string
	DatabaseDSN string
	DBLogLevel  string

	AuthEnabled          bool
	JWTSecret            string
	AuthClientID         string
	AuthClientSecretHash string
	TokenTTL             time.Duration

	RabbitMQURL   string
	RabbitMQQueue string

	LowStockThreshold int
	RestockIncrement  int

	Jobs JobsConfig
}

// JobsConfig holds the settings of the scheduled API clients.
type JobsConfig struct {
	APIBaseURL      string
	APIClientID     string
	APIClientSecret string
	APITimeout      time.Duration

	LowStockLog       string
	HeartbeatLog      string
	OrderRemindersLog string

	LowStockSchedule       string
	HeartbeatSchedule      string
	OrderRemindersSchedule string

	ReminderWindow time.Duration
}

// Load reads an optional .env file, then environment variables, over the defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "crm.db?_foreign_keys=on")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("AUTH_CLIENT_ID", "crm-jobs")
	v.SetDefault("AUTH_CLIENT_SECRET_HASH", "")
	v.SetDefault("TOKEN_TTL", "1h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "order_queue")
	v.SetDefault("LOW_STOCK_THRESHOLD", 10)
	v.SetDefault("RESTOCK_INCREMENT", 10)
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("API_CLIENT_ID", "")
	v.SetDefault("API_CLIENT_SECRET", "")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("LOW_STOCK_LOG", "/tmp/low_stock_updates_log.txt")
	v.SetDefault("HEARTBEAT_LOG", "/tmp/crm_heartbeat_log.txt")
	v.SetDefault("ORDER_REMINDERS_LOG", "/tmp/order_reminders_log.txt")
	v.SetDefault("LOW_STOCK_SCHEDULE", "0 */12 * * *")
	v.SetDefault("HEARTBEAT_SCHEDULE", "*/5 * * * *")
	v.SetDefault("ORDER_REMINDERS_SCHEDULE", "0 8 * * *")
	v.SetDefault("REMINDER_WINDOW", "168h")
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from v and checks it.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:              v.GetString("APP_PORT"),
		DBDriver:             strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:          v.GetString("DATABASE_DSN"),
		DBLogLevel:           strings.ToLower(v.GetString("DB_LOG_LEVEL")),
		AuthEnabled:          v.GetBool("AUTH_ENABLED"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		AuthClientID:         v.GetString("AUTH_CLIENT_ID"),
		AuthClientSecretHash: v.GetString("AUTH_CLIENT_SECRET_HASH"),
		TokenTTL:             v.GetDuration("TOKEN_TTL"),
		RabbitMQURL:          v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:        v.GetString("RABBITMQ_QUEUE"),
		LowStockThreshold:    v.GetInt("LOW_STOCK_THRESHOLD"),
		RestockIncrement:     v.GetInt("RESTOCK_INCREMENT"),
		Jobs: JobsConfig{
			APIBaseURL:             strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			APIClientID:            v.GetString("API_CLIENT_ID"),
			APIClientSecret:        v.GetString("API_CLIENT_SECRET"),
			APITimeout:             v.GetDuration("API_TIMEOUT"),
			LowStockLog:            v.GetString("LOW_STOCK_LOG"),
			HeartbeatLog:           v.GetString("HEARTBEAT_LOG"),
			OrderRemindersLog:      v.GetString("ORDER_REMINDERS_LOG"),
			LowStockSchedule:       v.GetString("LOW_STOCK_SCHEDULE"),
			HeartbeatSchedule:      v.GetString("HEARTBEAT_SCHEDULE"),
			OrderRemindersSchedule: v.GetString("ORDER_REMINDERS_SCHEDULE"),
			ReminderWindow:         v.GetDuration("REMINDER_WINDOW"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite)", c.DBDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if c.AuthEnabled && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_ENABLED is set")
	}
	if c.LowStockThreshold < 0 || c.RestockIncrement <= 0 {
		return fmt.Errorf("LOW_STOCK_THRESHOLD must be >= 0 and RESTOCK_INCREMENT > 0")
	}
	return nil
}
