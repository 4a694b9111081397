package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// OAuth userinfo endpoints per provider
	GoogleUserInfoURL string
	GithubUserInfoURL string

	// Notification webhook (Discord style). Empty disables notifications.
	WebhookURL string

	EmailSender string
	Password    string // SMTP App Password

	// Certificate poll schedule (see services/course.RetryPolicy)
	CertPollAttempts        int
	CertPollInitialSeconds  int
	CertPollIntervalSeconds int

	// Bootstrap admin account
	AdminEmail    string
	AdminPassword string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "oakridge"),

		GoogleUserInfoURL: getEnv("GOOGLE_USERINFO_URL", "https://www.googleapis.com/oauth2/v2/userinfo"),
		GithubUserInfoURL: getEnv("GITHUB_USERINFO_URL", "https://api.github.com/user"),

		WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("EMAIL_PASSWORD", ""),

		CertPollAttempts:        getEnvInt("CERT_POLL_ATTEMPTS", 5),
		CertPollInitialSeconds:  getEnvInt("CERT_POLL_INITIAL_SECONDS", 3),
		CertPollIntervalSeconds: getEnvInt("CERT_POLL_INTERVAL_SECONDS", 4),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@oakridge.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.WebhookURL == "" {
		log.Println("Warning: NOTIFY_WEBHOOK_URL not set. Webhook notifications disabled.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
