package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	LogLevel       string
	OutputDir      string
	SourceManifest string
	CurrentOnly    bool
	ExportType     string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		OutputDir:      getEnv("OUTPUT_DIR", "outputs"),
		SourceManifest: getEnv("SOURCE_MANIFEST", "data/sources.yaml"),
		CurrentOnly:    getEnvBool("CURRENT_ONLY", false),
		ExportType:     getEnv("EXPORT_TYPE", "all"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvBool treats "true" in any casing as true and any other value as
// false, the same way boolean-like request flags are parsed.
func getEnvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return strings.EqualFold(val, "true")
}
