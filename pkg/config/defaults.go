// Package config provides centralized default values for Tiendo
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Database Configuration
	DatabasePath             string
	TursoDatabaseURL         string
	TursoAuthToken           string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int

	// Admin Authentication
	AdminUser       string
	AdminPass       string
	JWTSecret       string
	AdminSessionTTL time.Duration
	AdminCookieName string

	// Media Configuration
	MediaDirectory string

	// Email Configuration
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	StoreURL      string

	// CORS Configuration
	AllowAllOrigins bool

	// Stats Broadcaster
	StatsBroadcastInterval time.Duration
	LowStockThreshold      int
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8000")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Database Configuration
	DatabasePath = getEnvString("DATABASE_PATH", "tiendo.db")
	TursoDatabaseURL = getEnvString("TURSO_DATABASE_URL", "")
	TursoAuthToken = getEnvString("TURSO_AUTH_TOKEN", "")
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("DB_CONN_MAX_IDLE_MINUTES", 3)

	// Admin Authentication
	AdminUser = getEnvString("ADMIN_USER", "")
	AdminPass = getEnvString("ADMIN_PASS", "")
	JWTSecret = getEnvString("JWT_SECRET", "")
	AdminSessionTTL = getEnvDuration("ADMIN_SESSION_TTL", time.Hour)
	AdminCookieName = getEnvString("ADMIN_COOKIE_NAME", "admin_session")

	// Media Configuration
	MediaDirectory = getEnvString("MEDIA_DIRECTORY", "media/images")

	// Email Configuration
	ResendAPIKey = getEnvString("RESEND_API_KEY", "")
	EmailFrom = getEnvString("EMAIL_FROM", "noreply@tiendo.shop")
	EmailFromName = getEnvString("EMAIL_FROM_NAME", "Tiendo")
	StoreURL = getEnvString("STORE_URL", "")

	// CORS Configuration
	AllowAllOrigins = getEnvBool("CORS_ALLOW_ALL", true)

	// Stats Broadcaster
	StatsBroadcastInterval = getEnvDuration("STATS_BROADCAST_INTERVAL", 20*time.Second)
	LowStockThreshold = getEnvInt("LOW_STOCK_THRESHOLD", 10)
}
