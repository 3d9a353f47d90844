package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Party    PartyConfig
}

type ServerConfig struct {
	HTTPPort string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Queue    string
}

type PartyConfig struct {
	// CodeLength is the number of characters in a party code.
	CodeLength int
	// HostGraceTimeout is how long a disconnected host may rejoin before
	// the next player is promoted.
	HostGraceTimeout time.Duration
	// SubmitTolerance is how many questions behind the current one an
	// answer submission is still accepted for. This covers the race
	// between the scheduler advancing and an in-flight client submission.
	SubmitTolerance int
	// TeardownDelay is how long a fully validated party lingers so
	// clients can render final results before the record is deleted.
	TeardownDelay time.Duration
	// RematchTriggerDelay is the pause between the last rematch vote and
	// the trigger sent to the host.
	RematchTriggerDelay time.Duration
	// SubmitThrottle is the minimum interval between two submissions from
	// the same connection for the same question (enforced via Redis when
	// available).
	SubmitThrottle time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: getEnv("HTTP_PORT", "8080"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "postgres"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "partyquiz"),
			Password: getEnv("DB_PASSWORD", "partyquiz_password"),
			DBName:   getEnv("DB_NAME", "partyquiz"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "redis"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			Host:     getEnv("RABBITMQ_HOST", "rabbitmq"),
			Port:     getEnv("RABBITMQ_PORT", "5672"),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			Queue:    getEnv("RABBITMQ_PARTY_QUEUE", "party_events"),
		},
		Party: PartyConfig{
			CodeLength:          getEnvAsInt("PARTY_CODE_LENGTH", 6),
			HostGraceTimeout:    getEnvAsDuration("PARTY_HOST_GRACE_TIMEOUT", 15*time.Second),
			SubmitTolerance:     getEnvAsInt("PARTY_SUBMIT_TOLERANCE", 1),
			TeardownDelay:       getEnvAsDuration("PARTY_TEARDOWN_DELAY", 2*time.Second),
			RematchTriggerDelay: getEnvAsDuration("PARTY_REMATCH_TRIGGER_DELAY", 500*time.Millisecond),
			SubmitThrottle:      getEnvAsDuration("PARTY_SUBMIT_THROTTLE", 250*time.Millisecond),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
