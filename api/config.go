package api

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultMaxFileSize is the default maximum upload size (10MB)
	DefaultMaxFileSize = 10 * 1024 * 1024

	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultTempDir is the default temporary directory
	DefaultTempDir = "./temp"
)

// Config holds application configuration
type Config struct {
	Port        string `yaml:"port"`
	MaxFileSize int64  `yaml:"max_file_size"`
	TempDir     string `yaml:"temp_dir"`
}

// LoadConfig builds the configuration from three layers: built-in defaults,
// an optional YAML file named by CONFIG_FILE, and finally PORT /
// MAX_FILE_SIZE / TEMP_DIR environment variables.
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:        DefaultPort,
		MaxFileSize: DefaultMaxFileSize,
		TempDir:     DefaultTempDir,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %v", path, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %v", path, err)
		}
	}

	config.Port = getEnv("PORT", config.Port)
	config.MaxFileSize = getEnvInt64("MAX_FILE_SIZE", config.MaxFileSize)
	config.TempDir = getEnv("TEMP_DIR", config.TempDir)

	if config.MaxFileSize <= 0 {
		return nil, fmt.Errorf("max file size must be positive, got %d", config.MaxFileSize)
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
