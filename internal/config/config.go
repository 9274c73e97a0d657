// Package config загружает конфигурацию приложения из YAML-файла и
// переменных окружения.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config — вся конфигурация бота и REST API.
type Config struct {
	LogLevel string         `mapstructure:"log_level"`
	Bot      BotConfig      `mapstructure:"bot"`
	HotelAPI HotelAPIConfig `mapstructure:"hotel_api"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	API      APIConfig      `mapstructure:"api"`
}

// BotConfig — настройки Telegram-бота.
type BotConfig struct {
	Token         string `mapstructure:"token"`
	UpdateTimeout int    `mapstructure:"update_timeout"` // long polling, секунды
}

// HotelAPIConfig — настройки доступа к внешнему API отелей.
type HotelAPIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Key     string        `mapstructure:"key"`
	Host    string        `mapstructure:"host"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RedisConfig — настройки хранилища сессий.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PostgresConfig — настройки БД истории поисков. Пустой DSN отключает
// историю, бот работает только с Redis.
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// APIConfig — настройки HTTP-сервера REST API.
type APIConfig struct {
	Port string `mapstructure:"port"`
}

// Load читает конфигурацию из файла (если указан) и окружения.
// Переменные окружения имеют префикс HOTELINE, вложенные ключи
// разделяются подчеркиванием: HOTELINE_BOT_TOKEN, HOTELINE_REDIS_ADDR.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("bot.update_timeout", 60)
	v.SetDefault("hotel_api.base_url", "https://hotels4.p.rapidapi.com")
	v.SetDefault("hotel_api.host", "hotels4.p.rapidapi.com")
	v.SetDefault("hotel_api.timeout", 20*time.Second)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("api.port", "8080")

	v.SetEnvPrefix("HOTELINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации: %w", err)
	}
	return &cfg, nil
}
