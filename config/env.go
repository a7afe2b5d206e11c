package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	Port     string
	LogLevel string

	DatabaseURL   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	MigrationsDir string

	JWTSecret string
	JWTExpiry time.Duration

	RedisURL      string
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	UploadDir     string
	MaxUploadSize int64

	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	KafkaBrokers      []string
	KafkaOrdersTopic  string
	KafkaCatalogTopic string

	OriginURL       string
	GuestCookieName string
	GuestCookieTTL  time.Duration

	Currency              string
	StandardShippingFee   int64
	ExpressShippingFee    int64
	FreeShippingThreshold int64
}

var AppConfig *Config

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	AppConfig = &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		Port:     getEnv("APP_PORT", getEnv("PORT", "8082")),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "storefront"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getEnvInt("DB_MAX_CONNS", 25)),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "database/migration"),

		JWTSecret: getEnv("JWT_SECRET", "secret"),
		JWTExpiry: getEnvDuration("JWT_EXPIRY", 24*time.Hour),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),

		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: int64(getEnvInt("MAX_UPLOAD_SIZE", 5242880)),

		CloudinaryURL:       os.Getenv("CLOUDINARY_URL"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: getEnv("SMTP_FROM", "no-reply@storefront.local"),

		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaOrdersTopic:  getEnv("KAFKA_ORDERS_TOPIC", "storefront.orders"),
		KafkaCatalogTopic: getEnv("KAFKA_CATALOG_TOPIC", "storefront.catalog"),

		OriginURL:       os.Getenv("ORIGIN_URL"),
		GuestCookieName: getEnv("GUEST_COOKIE_NAME", "guest_session"),
		GuestCookieTTL:  getEnvDuration("GUEST_COOKIE_TTL", 30*24*time.Hour),

		Currency:              getEnv("CURRENCY", "USD"),
		StandardShippingFee:   int64(getEnvInt("STANDARD_SHIPPING_FEE", 500)),
		ExpressShippingFee:    int64(getEnvInt("EXPRESS_SHIPPING_FEE", 1500)),
		FreeShippingThreshold: int64(getEnvInt("FREE_SHIPPING_THRESHOLD", 10000)),
	}

	return AppConfig
}

// DSN prefers DATABASE_URL over the individual DB_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value == 0 {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
