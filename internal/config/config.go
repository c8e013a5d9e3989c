package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	API      APIConfig
	Notifier NotifierConfig
	Storage  StorageConfig
	Log      LogConfig
}

type LogConfig struct {
	Level string
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type NotifierConfig struct {
	ScanInterval    time.Duration
	RefreshInterval time.Duration
	FreshnessWindow time.Duration
	ToastDuration   time.Duration
	SoundEnabled    bool
}

type StorageConfig struct {
	Path string
}

func Load() (*Config, error) {
	serverPort, err := strconv.Atoi(getEnv("SERVER_PORT", "8085"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("SERVER_READ_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("SERVER_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	apiTimeout, err := time.ParseDuration(getEnv("API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT: %w", err)
	}

	scanInterval, err := time.ParseDuration(getEnv("SCAN_INTERVAL", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCAN_INTERVAL: %w", err)
	}

	refreshInterval, err := time.ParseDuration(getEnv("REFRESH_INTERVAL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}

	freshnessWindow, err := time.ParseDuration(getEnv("FRESHNESS_WINDOW", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FRESHNESS_WINDOW: %w", err)
	}

	toastDuration, err := time.ParseDuration(getEnv("TOAST_DURATION", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOAST_DURATION: %w", err)
	}

	soundEnabled, err := strconv.ParseBool(getEnv("SOUND_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SOUND_ENABLED: %w", err)
	}

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL environment variable is required")
	}

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "127.0.0.1"),
			Port:         serverPort,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		API: APIConfig{
			BaseURL: baseURL,
			Timeout: apiTimeout,
		},
		Notifier: NotifierConfig{
			ScanInterval:    scanInterval,
			RefreshInterval: refreshInterval,
			FreshnessWindow: freshnessWindow,
			ToastDuration:   toastDuration,
			SoundEnabled:    soundEnabled,
		},
		Storage: StorageConfig{
			Path: getEnv("STORAGE_PATH", "relationship-manager.db"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
