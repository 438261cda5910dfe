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
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Observ   ObservabilityConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	QueryTimeout int
	MaxOpenConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL int
}

type KafkaConfig struct {
	Brokers       []string
	TopicCatalog  string
	ConsumerGroup string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	cacheTTL, _ := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "300"))
	queryTimeout, _ := strconv.Atoi(getEnv("DB_QUERY_TIMEOUT_SECONDS", "0"))
	maxConns, _ := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "10"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "catalog"),
			Password:     getEnv("DB_PASS", ""),
			Name:         getEnv("DB_NAME", "catalog"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			QueryTimeout: queryTimeout,
			MaxOpenConns: maxConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			CacheTTL: cacheTTL,
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicCatalog:  getEnv("KAFKA_TOPIC_CATALOG_EVENTS", "catalog-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "catalog-service-group"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
	}

	log.Printf("Config loaded: env=%s, port=%s, db=%s@%s:%s/%s",
		cfg.Server.Env, cfg.Server.Port, cfg.Database.User,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	return cfg
}

// DSN builds the postgres connection string. Setting DB_SSLMODE to "disable"
// or "require" turns off certificate verification against the store.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
