package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/RadikAgl/Bot-hoteline/internal/config"
	"github.com/RadikAgl/Bot-hoteline/internal/handler"
	"github.com/RadikAgl/Bot-hoteline/internal/hotelapi"
	"github.com/RadikAgl/Bot-hoteline/internal/repository"
	"github.com/RadikAgl/Bot-hoteline/internal/service"
	"github.com/RadikAgl/Bot-hoteline/internal/translate"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL драйвер
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// История поисков (опционально)
	var historyRepo *repository.HistoryRepository
	if cfg.Postgres.DSN != "" {
		db, err := sqlx.Connect("postgres", cfg.Postgres.DSN)
		if err != nil {
			log.Fatalf("Не удалось подключиться к базе данных: %v", err)
		}
		historyRepo = repository.NewHistoryRepository(db)
	}

	api := hotelapi.NewClient(cfg.HotelAPI.BaseURL, cfg.HotelAPI.Key, cfg.HotelAPI.Host, cfg.HotelAPI.Timeout)

	// Инициализируем сервисы
	locationService := service.NewLocationService(api)
	searchService := service.NewSearchService(api, translate.Lookup, logger)
	historyService := service.NewHistoryService(historyRepo)

	// Создаем Handler и регистрируем маршруты
	h := handler.NewHandler(locationService, searchService, historyService)
	router := gin.Default()
	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/search", h.Search)
		apiGroup.GET("/history", h.History)
	}
	// Health-check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if err := router.Run(":" + cfg.API.Port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
