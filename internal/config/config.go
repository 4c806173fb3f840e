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

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// AllowedExtensions is the fixed set of upload extensions, lower case without dot.
var AllowedExtensions = []string{"pdf", "txt", "doc", "docx", "png", "jpg", "jpeg", "gif"}

type Config struct {
	App     AppConfig
	Session SessionConfig
	Upload  UploadConfig
	Auth    AuthConfig
	SMTP    SMTPConfig
	Events  EventsConfig
	Tracing TracingConfig
}

type AppConfig struct {
	Host        string
	Port        string
	Environment string
	LogFilePath string
}

type SessionConfig struct {
	SecretKey         string
	Backend           string // "cookie", "memory" or "redis"
	CookieName        string
	CookieSecure      bool
	CookieHTTPOnly    bool
	CookieSameSite    string
	EncryptionKey     string // base64, enables encryptcookie when set
	PermanentLifetime time.Duration
	IdleTimeout       time.Duration
	RedisURL          string
}

type UploadConfig struct {
	Directory         string
	MaxContentLength  int
	AllowedExtensions []string
}

type AuthConfig struct {
	SharedPassword string
}

type SMTPConfig struct {
	Host         string
	Port         int
	Email        string
	Password     string
	SenderName   string
	ContactInbox string
}

type EventsConfig struct {
	NatsURL string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	env := getEnv("APP_ENV", getEnv("FLASK_ENV", EnvDevelopment))

	return &Config{
		App: AppConfig{
			Host:        getEnv("APP_HOST", "localhost"),
			Port:        getEnv("APP_PORT", "5000"),
			Environment: env,
			LogFilePath: getEnv("LOG_FILE_PATH", "logs/app.log"),
		},
		Session: SessionConfig{
			SecretKey:         getEnv("SECRET_KEY", "dev-key-change-in-production"),
			Backend:           strings.ToLower(getEnv("SESSION_BACKEND", "cookie")),
			CookieName:        getEnv("SESSION_COOKIE_NAME", "session"),
			CookieSecure:      getEnvAsBool("SESSION_COOKIE_SECURE", env == EnvProduction),
			CookieHTTPOnly:    true,
			CookieSameSite:    "Lax",
			EncryptionKey:     getEnv("SESSION_ENCRYPTION_KEY", ""),
			PermanentLifetime: time.Duration(getEnvAsInt("PERMANENT_SESSION_LIFETIME_HOURS", 7*24)) * time.Hour,
			IdleTimeout:       time.Duration(getEnvAsInt("SESSION_IDLE_TIMEOUT_MINUTES", 60)) * time.Minute,
			RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Upload: UploadConfig{
			Directory:         getEnv("UPLOAD_FOLDER", "uploads"),
			MaxContentLength:  getEnvAsInt("MAX_CONTENT_LENGTH", 16*1024*1024),
			AllowedExtensions: AllowedExtensions,
		},
		Auth: AuthConfig{
			SharedPassword: getEnv("AUTH_SHARED_PASSWORD", "password123"),
		},
		SMTP: SMTPConfig{
			Host:         getEnv("SMTP_HOST", ""),
			Port:         getEnvAsInt("SMTP_PORT", 587),
			Email:        getEnv("SMTP_EMAIL", ""),
			Password:     getEnv("SMTP_PASSWORD", ""),
			SenderName:   getEnv("SMTP_SENDER_NAME", "Portfolio"),
			ContactInbox: getEnv("CONTACT_INBOX", ""),
		},
		Events: EventsConfig{
			NatsURL: getEnv("NATS_URL", ""),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "portfolio-web"),
		},
	}
}

// EnsureUploadDir creates the upload directory. It is the only startup step
// allowed to fail.
func (c *Config) EnsureUploadDir() error {
	if err := os.MkdirAll(c.Upload.Directory, 0o755); err != nil {
		return fmt.Errorf("create upload directory %q: %w", c.Upload.Directory, err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

func (c *Config) Addr() string {
	return c.App.Host + ":" + c.App.Port
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
