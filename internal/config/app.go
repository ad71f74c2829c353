package config

import (
	"os"
	"time"
)

type AppConfig struct {
	Remote RemoteConfig
	Bank   BankConfig
}

type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
}

type BankConfig struct {
	// Путь к YAML файлу с локальной базой вопросов; пустое значение
	// означает встроенную базу
	File string
}

// LoadAppConfig загружает конфигурацию приложения из переменных окружения
func LoadAppConfig() *AppConfig {
	return &AppConfig{
		Remote: RemoteConfig{
			BaseURL: getEnv("REMOTE_API_URL", "http://localhost:8000"),
			Timeout: getEnvAsDuration("REMOTE_API_TIMEOUT", 120*time.Second),
		},
		Bank: BankConfig{
			File: getEnv("QUESTION_BANK_FILE", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
