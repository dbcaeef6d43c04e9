package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Backend  BackendConfig
	AI       AIConfig
	Snapshot SnapshotConfig
	Kafka    KafkaConfig
}

type ServerConfig struct {
	AppEnv string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
	// RefreshSeconds drives the periodic reconciliation loop.
	RefreshSeconds int
}

type AIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type SnapshotConfig struct {
	Path string
	Key  string
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv: getEnv("APP_ENV", "dev"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://localhost:8080/api"),
			TimeoutSeconds: getEnvInt("BACKEND_TIMEOUT_SECONDS", 15),
			RefreshSeconds: getEnvInt("BACKEND_REFRESH_SECONDS", 60),
		},
		AI: AIConfig{
			BaseURL:        getEnv("AI_BASE_URL", "http://localhost:8000"),
			TimeoutSeconds: getEnvInt("AI_TIMEOUT_SECONDS", 30),
		},
		Snapshot: SnapshotConfig{
			Path: getEnv("SNAPSHOT_PATH", "trace-engine.db"),
			Key:  getEnv("SNAPSHOT_KEY", "farmChainXData"),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC_LEDGER", "provenance.events"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
