package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	App      ApplicationSettings
	Queue    QueueConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	AllowOrigins []string
}

type DatabaseConfig struct {
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

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	// SessionTimeout bounds session resolution; past it the request proceeds anonymously.
	SessionTimeout time.Duration
}

type ApplicationSettings struct {
	// StoreTimeout bounds every data store call.
	StoreTimeout        time.Duration
	TicketIDMaxAttempts int
	DraftTTL            time.Duration
	CompletionInterval  time.Duration
}

type QueueConfig struct {
	// Driver is "memory" or "redis".
	Driver     string
	BufferSize int
	ConsumerID string
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:   GetServerConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Auth:     GetAuthConfig(),
		App:      GetAppConfig(),
		Queue:    GetQueueConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			Mode:         "test",
			AllowOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5433",
			User:     "postgres",
			Password: "postgres",
			DBName:   "evenoo_test",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6380",
			DB:   1,
		},
		Auth: AuthConfig{
			JWTSecret:      "test-secret",
			TokenTTL:       time.Hour,
			SessionTimeout: 3 * time.Second,
		},
		App: ApplicationSettings{
			StoreTimeout:        5 * time.Second,
			TicketIDMaxAttempts: 5,
			DraftTTL:            time.Hour,
			CompletionInterval:  time.Minute,
		},
		Queue: QueueConfig{
			Driver:     "memory",
			BufferSize: 100,
			ConsumerID: "test",
		},
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:         getEnv("PORT", "8080"),
		Mode:         getEnv("GIN_MODE", "debug"),
		AllowOrigins: strings.Split(getEnv("CORS_ALLOW_ORIGINS", "*"), ","),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "evenoo"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}
}

func GetAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:      getEnv("JWT_SECRET", "change-me"),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 21*24*time.Hour),
		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 3*time.Second),
	}
}

func GetAppConfig() ApplicationSettings {
	return ApplicationSettings{
		StoreTimeout:        getEnvDuration("STORE_TIMEOUT", 5*time.Second),
		TicketIDMaxAttempts: getEnvInt("TICKET_ID_MAX_ATTEMPTS", 5),
		DraftTTL:            getEnvDuration("DRAFT_TTL", 7*24*time.Hour),
		CompletionInterval:  getEnvDuration("COMPLETION_INTERVAL", 10*time.Minute),
	}
}

func GetQueueConfig() QueueConfig {
	return QueueConfig{
		Driver:     getEnv("QUEUE_DRIVER", "redis"),
		BufferSize: getEnvInt("QUEUE_BUFFER_SIZE", 1000),
		ConsumerID: getEnv("QUEUE_CONSUMER_ID", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		panic(err)
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil {
		panic(err)
	}
	return value
}
