package config

import (
	"fmt"
	"os"
)

type Config struct {
	MongoURI    string
	MongoDB     string
	HTTPAddr    string
	MetricsAddr string
	LogLevel    string
}

// Load reads the configuration from environment variables. MONGO_URI
// is required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getEnv("MONGO_DB", "todo"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		MetricsAddr: getEnv("METRICS_ADDR", ":9090"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	var missing []string
	if cfg.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required env vars: %v", missing)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
