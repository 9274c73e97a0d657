package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/RadikAgl/Bot-hoteline/internal/model"
	"github.com/RadikAgl/Bot-hoteline/internal/service"
	"github.com/RadikAgl/Bot-hoteline/internal/translate"

	"github.com/gin-gonic/gin"
)

// Handler структурирует зависимости сервисов для обработки HTTP-запросов.
type Handler struct {
	LocationService *service.LocationService
	SearchService   *service.SearchService
	HistoryService  *service.HistoryService
}

// NewHandler создает новый Handler с внедрением зависимостей (сервисов).
func NewHandler(ls *service.LocationService, ss *service.SearchService, hs *service.HistoryService) *Handler {
	return &Handler{
		LocationService: ls,
		SearchService:   ss,
		HistoryService:  hs,
	}
}

// Режимы поиска REST API и их соответствие режимам сортировки.
var sortModes = map[string]model.SortMode{
	"lowprice":  model.SortPriceAsc,
	"highprice": model.SortPriceDesc,
	"bestdeal":  model.SortBestDeal,
}

// Search обработчик для GET /api/search - выполняет поиск отелей без
// диалога: направление берется как первый вариант по введенному названию.
func (h *Handler) Search(c *gin.Context) {
	mode, ok := sortModes[c.DefaultQuery("mode", "lowprice")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неизвестный режим поиска"})
		return
	}
	destination := c.Query("destination")
	if destination == "" || !service.ValidateInput(model.StepDestination, destination) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не указано корректное название города"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 20 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Параметр limit должен быть от 1 до 20"})
		return
	}

	lang := c.DefaultQuery("lang", "en")
	session := &model.Session{
		SortMode:    mode,
		ResultLimit: limit,
		Language:    lang,
		Locale:      c.DefaultQuery("locale", translate.DefaultLocale[lang]),
		Currency:    c.DefaultQuery("currency", translate.DefaultCurrency[lang]),
	}
	if mode == model.SortBestDeal {
		session.MinPrice, _ = strconv.Atoi(c.DefaultQuery("min_price", "0"))
		session.MaxPrice, _ = strconv.Atoi(c.DefaultQuery("max_price", "1000000"))
		session.MaxDistance, err = strconv.ParseFloat(c.DefaultQuery("max_distance", "10"), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный параметр max_distance"})
			return
		}
	}

	locations, err := h.LocationService.SearchLocations(c.Request.Context(), destination, session.Locale)
	if err != nil {
		h.renderSearchError(c, err)
		return
	}
	session.DestinationID = locations[0].DestinationID
	session.DestinationName = locations[0].Name

	hotels, err := h.SearchService.FindHotels(c.Request.Context(), session)
	if err != nil {
		h.renderSearchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"destination": session.DestinationName,
		"hotels":      hotels,
	})
}

// History обработчик для GET /api/history - возвращает последние поиски чата.
func (h *Handler) History(c *gin.Context) {
	if !h.HistoryService.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "История поисков отключена"})
		return
	}
	chatID, err := strconv.ParseInt(c.Query("chat_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный параметр chat_id"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	history, err := h.HistoryService.ListByChat(c.Request.Context(), chatID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить историю"})
		return
	}
	c.JSON(http.StatusOK, history)
}

// renderSearchError переводит ошибки конвейера поиска в HTTP-статусы.
func (h *Handler) renderSearchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoHotelsFound), errors.Is(err, service.ErrNoLocationsFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBadRequest):
		c.JSON(http.StatusBadGateway, gin.H{"error": service.ErrBadRequest.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка"})
	}
}
