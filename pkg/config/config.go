// Файл: config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string
}

// CMSConfig - настройки удалённой CMS, в которой живут все данные.
type CMSConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
}

type CacheConfig struct {
	TTL time.Duration
}

type Config struct {
	Server ServerConfig
	CMS    CMSConfig
	Redis  RedisConfig
	Cache  CacheConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		CMS: CMSConfig{
			BaseURL:        getEnv("CMS_BASE_URL", "http://localhost:1337"),
			RequestTimeout: getEnvDuration("CMS_REQUEST_TIMEOUT_SECONDS", 15) * time.Second,
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Cache: CacheConfig{
			TTL: getEnvDuration("CACHE_TTL_SECONDS", 60) * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback int64) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil && parsed > 0 {
			return time.Duration(parsed)
		}
	}
	return time.Duration(fallback)
}
