// Файл: internal/config/config.go
package config

import (
	"log"
	"net/url"
	"os"
	"strings"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL string
	AppEnv      string
	Port        string
	PublicURL   string // базовый адрес для ссылок на профили (QR-коды)
	MediaDir    string // каталог для хранения фотографий профилей
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		AppEnv:      os.Getenv("ENV"),
		Port:        os.Getenv("PORT"),
		PublicURL:   os.Getenv("PUBLIC_URL"),
		MediaDir:    os.Getenv("MEDIA_DIR"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.PublicURL == "" {
		log.Println("Предупреждение: PUBLIC_URL не установлен, используется http://localhost:" + cfg.Port)
		cfg.PublicURL = "http://localhost:" + cfg.Port
	}
	if cfg.MediaDir == "" {
		cfg.MediaDir = "media_storage"
	}

	if cfg.DatabaseURL == "" {
		log.Println("Критическая ошибка: DATABASE_URL не установлен.")
	} else {
		parsedURL, parseErr := url.Parse(cfg.DatabaseURL)
		if parseErr != nil {
			log.Printf("Критическая ошибка: ошибка парсинга DATABASE_URL: %v", parseErr)
		} else {
			cfg.DBHost = parsedURL.Hostname()
			cfg.DBPort = parsedURL.Port()
			if cfg.DBPort == "" {
				cfg.DBPort = "5432"
			}
			cfg.DBUser = parsedURL.User.Username()
			cfg.DBPassword, _ = parsedURL.User.Password()
			cfg.DBName = strings.TrimPrefix(parsedURL.Path, "/")
		}
	}

	log.Println("Конфигурация загружена.")
	return cfg, nil
}
