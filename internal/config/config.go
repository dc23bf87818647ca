package config

import (
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatasetPath    string
	ClampPolicy    string
	LogLevel       string
	AllowedOrigins []string
	Database       DatabaseConfig
}

// DatabaseConfig locates an optional PostgreSQL training table.
// Table must be set for the database to be used instead of DatasetPath.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Table    string
}

func (c *DatabaseConfig) Enabled() bool {
	return c.Table != ""
}

// ConnectionString builds a postgres:// URL; credentials are escaped
func (c *DatabaseConfig) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8001"),
		DatasetPath:    getEnv("DATASET_PATH", "student_habits_performance.csv"),
		ClampPolicy:    getEnv("PREDICTION_CLAMP", "none"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "predictor"),
			Password: getEnv("DATABASE_PASSWORD", ""),
			Name:     getEnv("DATABASE_NAME", "predictor"),
			SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
			Table:    getEnv("DATASET_TABLE", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
