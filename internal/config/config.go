package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseSSLMode  string

	RedisHost string
	RedisPort string
	RedisDB   int

	KafkaURL           string
	EventsKafkaTopic   string
	SettingsKafkaTopic string

	AWSRegion          string
	AWSEndpoint        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	SQSInvalidationQueueURL string
	SQSInvalidationQueueARN string
	SchedulerRoleARN        string
	SchedulerGroupName      string

	JWTSecret     string
	PublicBaseURL string

	SupportedLocales []string
	CacheTTLSeconds  int
}

// LoadEnv loads environment variables from .env files
func LoadEnv() {
	// Try to find the .env file from the current working directory
	// and from one level up, so the migrate command works from cmd/.
	envPaths := []string{
		".env",
		"../.env",
	}

	for _, path := range envPaths {
		err := godotenv.Load(path)
		if err == nil {
			log.Printf("Loaded environment variables from %s", path)
			return
		}
	}

	log.Println("No .env file found, using environment variables")
}

func Load() Config {
	// Load environment variables from .env file first
	LoadEnv()

	log.Println("Loading configuration from environment variables")
	return Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8084"),

		DatabaseHost:     getEnv("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnv("DATABASE_PORT", "5432"),
		DatabaseUser:     getEnv("DATABASE_USER", "postgres"),
		DatabasePassword: getEnvSecret("DATABASE_PASSWORD", ""),
		DatabaseName:     getEnv("DATABASE_NAME", "structured_data"),
		DatabaseSSLMode:  getEnv("DATABASE_SSLMODE", "disable"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		KafkaURL:           getEnv("KAFKA_URL", "localhost:9092"),
		EventsKafkaTopic:   getEnv("KAFKA_EVENTS_TOPIC", "dbz.ticketly.public.events"),
		SettingsKafkaTopic: getEnv("KAFKA_SETTINGS_TOPIC", "dbz.ticketly.public.event_settings"),

		AWSRegion:          getEnv("AWS_REGION", "ap-south-1"),
		AWSEndpoint:        getEnv("AWS_LOCAL_ENDPOINT_URL", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnvSecret("AWS_SECRET_ACCESS_KEY", ""),

		SQSInvalidationQueueURL: getEnv("AWS_SQS_INVALIDATION_URL", ""),
		SQSInvalidationQueueARN: getEnv("AWS_SQS_INVALIDATION_QUEUE_ARN", ""),
		SchedulerRoleARN:        getEnv("AWS_SCHEDULER_ROLE_ARN", ""),
		SchedulerGroupName:      getEnv("AWS_SCHEDULER_GROUP_NAME", "default"),

		JWTSecret:     getEnvSecret("JWT_SECRET", ""),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "https://tickets.ticketly.com"),

		SupportedLocales: splitLocales(getEnv("SUPPORTED_LOCALES", "en")),
		CacheTTLSeconds:  getEnvInt("CACHE_TTL_SECONDS", 600),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		log.Printf("Loaded env var %s: %s", key, value)
		return value
	}
	log.Printf("Env var %s not set, using fallback: %s", key, fallback)
	return fallback
}

// getEnvSecret reads an env var without echoing its value into the logs.
func getEnvSecret(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		log.Printf("Loaded env var %s: <redacted>", key)
		return value
	}
	log.Printf("Env var %s not set, using fallback", key)
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := getEnv(key, strconv.Itoa(fallback))
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Env var %s is not a number (%q), using fallback %d", key, raw, fallback)
		return fallback
	}
	return value
}

func splitLocales(raw string) []string {
	var locales []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			locales = append(locales, part)
		}
	}
	if len(locales) == 0 {
		locales = []string{"en"}
	}
	return locales
}
