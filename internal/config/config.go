package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramConfig TelegramConfig
	WeatherConfig  WeatherConfig
	PostgresConfig PostgresConfig
	KafkaConfig    KafkaConfig
	TracingConfig  TracingConfig
}

type TracingConfig struct {
	Endpoint string
}

type TelegramConfig struct {
	Token   string
	AdminID int64
}

type WeatherConfig struct {
	APIKey string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}

	config := &Config{
		TelegramConfig: TelegramConfig{
			Token: getEnv("BOT_TOKEN", ""),
		},
		WeatherConfig: WeatherConfig{
			APIKey: getEnv("WEATHER_API", ""),
		},
		PostgresConfig: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "user"),
			Password: getEnv("POSTGRES_PASSWORD", "password"),
			DBName:   getEnv("POSTGRES_DB", "dbname"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		KafkaConfig: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "subscription-events"),
		},
		TracingConfig: TracingConfig{
			Endpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
	}

	if config.TelegramConfig.Token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	if config.WeatherConfig.APIKey == "" {
		return nil, fmt.Errorf("WEATHER_API is required")
	}

	adminID, err := strconv.ParseInt(getEnv("ADMIN_ID", ""), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_ID must be a telegram user id: %w", err)
	}
	config.TelegramConfig.AdminID = adminID

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func (p PostgresConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}
