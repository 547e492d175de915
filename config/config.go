package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	minZones = 2
	maxZones = 10
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Delivery DeliveryConfig `yaml:"delivery"`
	Order    OrderConfig    `yaml:"order"`
}

type ServerConfig struct {
	Port      string `yaml:"port"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type RedisConfig struct {
	Host       string        `yaml:"host"`
	Port       string        `yaml:"port"`
	CartTTL    time.Duration `yaml:"cart_ttl"`
	CatalogTTL time.Duration `yaml:"catalog_ttl"`
	// SessionIdle and SessionLimit bound the carts shop-svc keeps in memory
	// in front of the stored copy.
	SessionIdle  time.Duration `yaml:"session_idle"`
	SessionLimit int           `yaml:"session_limit"`
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

func (c PostgresConfig) DSN() string {
	return "host=" + c.Host + " port=" + c.Port + " user=" + c.User +
		" password=" + c.Password + " dbname=" + c.Name + " sslmode=disable"
}

type KafkaConfig struct {
	Broker string `yaml:"broker"`
	Topic  string `yaml:"topic"`
}

type CatalogConfig struct {
	BaseURL     string        `yaml:"base_url"`
	SpaceID     string        `yaml:"space_id"`
	Environment string        `yaml:"environment"`
	AccessToken string        `yaml:"access_token"`
	HouseName   string        `yaml:"house_name"`
	Timeout     time.Duration `yaml:"timeout"`
}

type ZoneConfig struct {
	ID   string          `yaml:"id"`
	Name string          `yaml:"name"`
	Fee  decimal.Decimal `yaml:"fee"`
}

type DeliveryConfig struct {
	Mode        string          `yaml:"mode"`
	FlatFee     decimal.Decimal `yaml:"flat_fee"`
	FlatLabel   string          `yaml:"flat_label"`
	Zones       []ZoneConfig    `yaml:"zones"`
	ZonesFromDB bool            `yaml:"zones_from_db"`
}

type OrderConfig struct {
	ChatBaseURL string        `yaml:"chat_base_url"`
	ChatPhone   string        `yaml:"chat_phone"`
	Currency    string        `yaml:"currency"`
	WebhookURL  string        `yaml:"webhook_url"`
	LogTimeout  time.Duration `yaml:"log_timeout"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080", LogLevel: "info", LogFormat: "json"},
		Redis: RedisConfig{
			Host:       "localhost",
			Port:       "6379",
			CartTTL:      30 * 24 * time.Hour,
			CatalogTTL:   5 * time.Minute,
			SessionIdle:  30 * time.Minute,
			SessionLimit: 10000,
		},
		Postgres: PostgresConfig{Host: "localhost", Port: "5432", Name: "foodwala", User: "postgres"},
		Kafka:    KafkaConfig{Topic: "orders"},
		Catalog: CatalogConfig{
			BaseURL:     "https://cdn.contentful.com",
			Environment: "master",
			HouseName:   "Foodwala",
			Timeout:     10 * time.Second,
		},
		Delivery: DeliveryConfig{
			Mode:      "flat",
			FlatFee:   decimal.NewFromInt(100),
			FlatLabel: "Delivery - Fixed Fee",
		},
		Order: OrderConfig{
			ChatBaseURL: "https://wa.me",
			ChatPhone:   "923181375067",
			Currency:    "Rs. ",
			LogTimeout:  10 * time.Second,
		},
	}
}

// Load reads the optional YAML file at path over the defaults, then applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.LogLevel = getEnv("LOG_LEVEL", c.Server.LogLevel)
	c.Server.LogFormat = getEnv("LOG_FORMAT", c.Server.LogFormat)

	c.Redis.Host = getEnv("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = getEnv("REDIS_PORT", c.Redis.Port)

	c.Postgres.Host = getEnv("DB_HOST", c.Postgres.Host)
	c.Postgres.Port = getEnv("DB_PORT", c.Postgres.Port)
	c.Postgres.Name = getEnv("DB_NAME", c.Postgres.Name)
	c.Postgres.User = getEnv("DB_USER", c.Postgres.User)
	c.Postgres.Password = getEnv("DB_PASSWORD", c.Postgres.Password)

	c.Kafka.Broker = getEnv("KAFKA_BROKER", c.Kafka.Broker)

	c.Catalog.SpaceID = getEnv("CONTENTFUL_SPACE_ID", c.Catalog.SpaceID)
	c.Catalog.AccessToken = getEnv("CONTENTFUL_ACCESS_TOKEN", c.Catalog.AccessToken)
	c.Catalog.Environment = getEnv("CONTENTFUL_ENVIRONMENT", c.Catalog.Environment)

	c.Order.WebhookURL = getEnv("ORDER_WEBHOOK_URL", c.Order.WebhookURL)
	c.Order.ChatPhone = getEnv("CHAT_PHONE", c.Order.ChatPhone)

	c.Delivery.Mode = getEnv("DELIVERY_MODE", c.Delivery.Mode)
	if value := os.Getenv("DELIVERY_FLAT_FEE"); value != "" {
		fee, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("invalid DELIVERY_FLAT_FEE: %w", err)
		}
		c.Delivery.FlatFee = fee
	}
	if value := os.Getenv("DELIVERY_ZONES_FROM_DB"); value != "" {
		fromDB, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid DELIVERY_ZONES_FROM_DB: %w", err)
		}
		c.Delivery.ZonesFromDB = fromDB
	}
	return nil
}

func (c Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}

	switch c.Delivery.Mode {
	case "flat":
		if c.Delivery.FlatFee.IsNegative() {
			return errors.New("delivery flat fee must not be negative")
		}
	case "zones":
		if c.Delivery.ZonesFromDB {
			break
		}
		if n := len(c.Delivery.Zones); n < minZones || n > maxZones {
			return fmt.Errorf("delivery zones: got %d, want %d to %d", n, minZones, maxZones)
		}
	default:
		return fmt.Errorf("unknown delivery mode %q", c.Delivery.Mode)
	}

	if c.Redis.SessionIdle < 0 {
		return errors.New("redis session idle must not be negative")
	}
	if c.Redis.SessionLimit <= 0 {
		return errors.New("redis session limit must be positive")
	}

	if c.Order.ChatPhone == "" {
		return errors.New("chat phone is required")
	}
	if c.Order.LogTimeout <= 0 {
		return errors.New("order log timeout must be positive")
	}
	return nil
}

// NewLogger builds a JSON logger, or a console logger for format "console".
func NewLogger(level, format string) (*zap.Logger, error) {
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zapConfig := zap.NewProductionConfig()
	if format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = atomic
	return zapConfig.Build()
}

func MustInitPostgres(cfg PostgresConfig, logger *zap.Logger) *sql.DB {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err = db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg RedisConfig, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	return client
}

func NewKafkaReader(cfg KafkaConfig, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Broker},
		Topic:   cfg.Topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.Broker),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
