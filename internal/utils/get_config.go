package utils

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const defaultConfigPath = "config.yaml"

type Config struct {
	// Application configuration
	AppPort          string `yaml:"APP_PORT"`
	AppURL           string `yaml:"APP_URL"`
	LogLevel         string `yaml:"LOG_LEVEL"`
	CORSAllowOrigins string `yaml:"CORS_ALLOW_ORIGINS"`
	RateLimitMax     string `yaml:"RATE_LIMIT_MAX"`

	// Database configuration
	DBUser         string `yaml:"DB_USER"`
	DBName         string `yaml:"DB_NAME"`
	DBPassword     string `yaml:"DB_PASSWORD"`
	DBPort         string `yaml:"DB_PORT"`
	DBHost         string `yaml:"DB_HOST"`
	DBSSLMode      string `yaml:"DB_SSLMODE"`
	DBMaxOpenConns string `yaml:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns string `yaml:"DB_MAX_IDLE_CONNS"`

	// JWT configuration
	JWTSecret        string `yaml:"JWT_SECRET"`
	JWTIssuer        string `yaml:"JWT_ISSUER"`
	JWTExpireMinutes string `yaml:"JWT_EXPIRE_MINUTES"`

	// Search index configuration
	SearchBackend  string `yaml:"SEARCH_BACKEND"`
	SearchURL      string `yaml:"SEARCH_URL"`
	SearchAPIKey   string `yaml:"SEARCH_API_KEY"`
	IndexBatchSize string `yaml:"INDEX_BATCH_SIZE"`
	IndexOnStartup string `yaml:"INDEX_ON_STARTUP"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var (
	config   Config
	configMu sync.RWMutex
)

var defaults = map[string]string{
	"APP_PORT":           "8000",
	"APP_URL":            "http://localhost:8000",
	"LOG_LEVEL":          "info",
	"CORS_ALLOW_ORIGINS": "*",
	"RATE_LIMIT_MAX":     "10",
	"DB_HOST":            "localhost",
	"DB_PORT":            "5432",
	"DB_SSLMODE":         "disable",
	"DB_MAX_OPEN_CONNS":  "25",
	"DB_MAX_IDLE_CONNS":  "5",
	"JWT_ISSUER":         "recipe-catalog",
	"JWT_EXPIRE_MINUTES": "30",
	"SEARCH_BACKEND":     "database",
	"SEARCH_URL":         "http://localhost:7700",
	"INDEX_BATCH_SIZE":   "1000",
	"INDEX_ON_STARTUP":   "false",
	"SMTP_PORT":          "587",
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"APP_PORT":           &c.AppPort,
		"APP_URL":            &c.AppURL,
		"LOG_LEVEL":          &c.LogLevel,
		"CORS_ALLOW_ORIGINS": &c.CORSAllowOrigins,
		"RATE_LIMIT_MAX":     &c.RateLimitMax,
		"DB_USER":            &c.DBUser,
		"DB_NAME":            &c.DBName,
		"DB_PASSWORD":        &c.DBPassword,
		"DB_PORT":            &c.DBPort,
		"DB_HOST":            &c.DBHost,
		"DB_SSLMODE":         &c.DBSSLMode,
		"DB_MAX_OPEN_CONNS":  &c.DBMaxOpenConns,
		"DB_MAX_IDLE_CONNS":  &c.DBMaxIdleConns,
		"JWT_SECRET":         &c.JWTSecret,
		"JWT_ISSUER":         &c.JWTIssuer,
		"JWT_EXPIRE_MINUTES": &c.JWTExpireMinutes,
		"SEARCH_BACKEND":     &c.SearchBackend,
		"SEARCH_URL":         &c.SearchURL,
		"SEARCH_API_KEY":     &c.SearchAPIKey,
		"INDEX_BATCH_SIZE":   &c.IndexBatchSize,
		"INDEX_ON_STARTUP":   &c.IndexOnStartup,
		"SMTP_HOST":          &c.SMTPHost,
		"SMTP_PORT":          &c.SMTPPort,
		"SMTP_SENDER_NAME":   &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &c.SMTPAuthPassword,
		"AWS_S3_BUCKET":      &c.AWSS3Bucket,
		"AWS_S3_REGION":      &c.AWSS3Region,
		"AWS_ACCESS_KEY":     &c.AWSAccessKey,
		"AWS_SECRET_KEY":     &c.AWSSecretKey,
	}
}

// LoadConfig reads .env and config.yaml (or CONFIG_PATH) and applies
// environment overrides. A missing file is not an error.
func LoadConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Error reading .env file: %s\n", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	if err := LoadConfigFrom(path); err != nil {
		log.Printf("Error loading config: %s\n", err)
	}
}

func LoadConfigFrom(path string) error {
	var next Config

	file, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err == nil {
		if err := yaml.Unmarshal(file, &next); err != nil {
			return err
		}
	}

	for key, field := range next.fields() {
		if value, ok := os.LookupEnv(key); ok {
			*field = value
		}
		if strings.TrimSpace(*field) == "" {
			*field = defaults[key]
		}
	}

	configMu.Lock()
	config = next
	configMu.Unlock()
	return nil
}

func GetConfig(key string) string {
	configMu.RLock()
	defer configMu.RUnlock()

	if field, ok := config.fields()[key]; ok && *field != "" {
		return *field
	}
	return defaults[key]
}

// SetConfig overrides a single key in the loaded configuration.
func SetConfig(key, value string) {
	configMu.Lock()
	defer configMu.Unlock()

	if field, ok := config.fields()[key]; ok {
		*field = value
	}
}

func GetConfigInt(key string, fallback int) int {
	value, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return value
}

func GetConfigBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(GetConfig(key))
	if err != nil {
		return fallback
	}
	return value
}

func GetConfigMinutes(key string, fallback time.Duration) time.Duration {
	minutes := GetConfigInt(key, 0)
	if minutes <= 0 {
		return fallback
	}
	return time.Duration(minutes) * time.Minute
}
