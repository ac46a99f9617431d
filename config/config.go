package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config stores the server configuration. Values are loaded from
// environment variables, with optional loading from a .env file.
type Config struct {
	Port           string
	AWSRegion      string
	S3Bucket       string
	AllowedOrigins []string
}

// LoadConfig reads configuration from environment variables and an
// optional .env file.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		AWSRegion:      getEnv("AWS_REGION", ""),
		S3Bucket:       getEnv("S3_BUCKET_NAME", ""),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
	}

	if cfg.AWSRegion == "" {
		log.Println("Warning: AWS_REGION is not set, the AWS SDK will fall back to its own resolution")
	}
	if cfg.S3Bucket == "" {
		log.Println("Warning: S3_BUCKET_NAME is not set, photo URL generation will fail")
	}

	return cfg
}

// getEnv retrieves an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
