package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/RadikAgl/Bot-hoteline/internal/hotelapi"
	"github.com/RadikAgl/Bot-hoteline/internal/model"
	"github.com/RadikAgl/Bot-hoteline/internal/translate"
)

// Ограничения пагинации в режиме bestdeal: страниц с номером 5 и выше
// не запрашиваем, размер страницы фиксирован, чтобы набрать кандидатов
// для переранжирования.
const (
	maxPageNumber    = 5
	bestDealPageSize = 25
)

// SearchService выполняет поиск отелей: строит запрос из сессии,
// агрегирует страницы выдачи и отбирает лучшие предложения.
type SearchService struct {
	api    *hotelapi.Client
	tr     translate.Func
	logger *slog.Logger
	now    func() time.Time
}

// NewSearchService создает новый сервис поиска.
func NewSearchService(api *hotelapi.Client, tr translate.Func, logger *slog.Logger) *SearchService {
	return &SearchService{
		api:    api,
		tr:     tr,
		logger: logger,
		now:    time.Now,
	}
}

// FindHotels возвращает список отелей по параметрам сессии.
//
// В режимах сортировки по цене выполняется ровно один запрос: размер и
// порядок страницы уже заданы API, результат отдается как есть. В режиме
// bestdeal страницы запрашиваются последовательно, пока есть следующая,
// ее номер меньше пяти и последний отель еще в радиусе поиска; затем
// записи фильтруются по расстоянию, сортируются по цене и обрезаются до
// лимита. Ошибка первой страницы — ErrBadRequest; ошибка последующей
// лишь останавливает пагинацию, уже собранные страницы не теряются.
func (s *SearchService) FindHotels(ctx context.Context, session *model.Session) ([]model.HotelRecord, error) {
	page, err := s.requestPage(ctx, session, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	records := appendUnique(nil, page.Results...)

	if session.SortMode == model.SortBestDeal {
		records = s.paginate(ctx, session, records, page.NextPage)
		records = ChooseBestHotels(records, session.MaxDistance, session.ResultLimit)
	}

	if len(records) == 0 {
		return nil, ErrNoHotelsFound
	}
	return records, nil
}

// paginate дозапрашивает страницы выдачи в режиме bestdeal.
func (s *SearchService) paginate(ctx context.Context, session *model.Session, records []model.HotelRecord, nextPage int) []model.HotelRecord {
	for nextPage > 0 && nextPage < maxPageNumber && withinDistance(records, session.MaxDistance) {
		page, err := s.requestPage(ctx, session, nextPage)
		if err != nil {
			// Частичная агрегация: собранное сохраняем, пагинацию
			// прекращаем.
			s.logger.Warn("пагинация прервана",
				"chat_id", session.ChatID, "page", nextPage, "error", err)
			break
		}
		if len(page.Results) == 0 {
			break
		}
		records = appendUnique(records, page.Results...)
		nextPage = page.NextPage
	}
	return records
}

// withinDistance сообщает, укладывается ли последняя собранная запись в
// радиус поиска. Выдача bestdeal отсортирована API по удаленности,
// поэтому выход последней записи за радиус означает, что дальше только
// более далекие отели.
func withinDistance(records []model.HotelRecord, maxDistance float64) bool {
	if len(records) == 0 {
		return false
	}
	distance, err := ParseDistance(records[len(records)-1].Distance)
	if err != nil {
		return false
	}
	return distance <= maxDistance
}

// requestPage запрашивает одну страницу выдачи и нормализует ее.
func (s *SearchService) requestPage(ctx context.Context, session *model.Session, page int) (*model.PagedResult, error) {
	raw, err := s.api.Properties(ctx, s.buildQuery(session, page))
	if err != nil {
		return nil, err
	}
	return s.structureResults(raw, session.Language), nil
}

// buildQuery собирает запрос к API из параметров сессии. Даты проживания
// по умолчанию: заезд сегодня, выезд завтра.
func (s *SearchService) buildQuery(session *model.Session, page int) hotelapi.PropertiesQuery {
	checkIn := s.now()
	checkOut := checkIn.AddDate(0, 0, 1)

	q := hotelapi.PropertiesQuery{
		DestinationID: session.DestinationID,
		Page:          page,
		PageSize:      session.ResultLimit,
		CheckIn:       checkIn.Format("2006-01-02"),
		CheckOut:      checkOut.Format("2006-01-02"),
		SortOrder:     string(session.SortMode),
		Locale:        session.Locale,
		Currency:      session.Currency,
	}
	if session.SortMode == model.SortBestDeal {
		q.PageSize = bestDealPageSize
		q.WithPriceBounds = true
		q.PriceMin = session.MinPrice
		q.PriceMax = session.MaxPrice
	}
	return q
}

// structureResults переводит сырую страницу API в нормализованные записи.
// Отель без извлекаемой цены молча пропускается; повторы внутри страницы
// отбрасываются.
func (s *SearchService) structureResults(raw *hotelapi.PropertiesPage, lang string) *model.PagedResult {
	results := raw.Data.Body.SearchResults
	noInfo := s.tr("no_information", lang)

	page := &model.PagedResult{
		TotalCount: results.TotalCount,
		NextPage:   results.Pagination.NextPageNumber,
	}
	for _, rawHotel := range results.Results {
		price, ok := hotelPrice(rawHotel)
		if !ok {
			continue
		}
		record := model.HotelRecord{
			Name:       rawHotel.Name,
			StarRating: rawHotel.StarRating,
			Price:      price,
			Distance:   noInfo,
			Address:    noInfo,
		}
		if len(rawHotel.Landmarks) > 0 && rawHotel.Landmarks[0].Distance != "" {
			record.Distance = rawHotel.Landmarks[0].Distance
		}
		if rawHotel.Address != nil && rawHotel.Address.StreetAddress != "" {
			record.Address = rawHotel.Address.StreetAddress
		}
		page.Results = appendUnique(page.Results, record)
	}
	return page
}

// hotelPrice извлекает цену отеля: либо точное число exactCurrent, либо
// отформатированная строка current, из которой выкидывается все, кроме
// цифр ("$1,200" -> 1200).
func hotelPrice(raw hotelapi.RawHotel) (float64, bool) {
	if raw.RatePlan == nil {
		return 0, false
	}
	if raw.RatePlan.Price.ExactCurrent > 0 {
		return raw.RatePlan.Price.ExactCurrent, true
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw.RatePlan.Price.Current)
	if digits == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// appendUnique добавляет записи, которых еще нет в списке (полное
// равенство полей). Используется и внутри страницы, и между страницами.
func appendUnique(records []model.HotelRecord, add ...model.HotelRecord) []model.HotelRecord {
	for _, candidate := range add {
		seen := false
		for _, existing := range records {
			if existing == candidate {
				seen = true
				break
			}
		}
		if !seen {
			records = append(records, candidate)
		}
	}
	return records
}

// ChooseBestHotels отбирает лучшие предложения: убирает отели дальше
// maxDistance от центра, остальные устойчиво сортирует по возрастанию
// цены и обрезает до limit. Вторичного ключа сортировки нет — равные
// цены сохраняют исходный порядок.
func ChooseBestHotels(records []model.HotelRecord, maxDistance float64, limit int) []model.HotelRecord {
	filtered := []model.HotelRecord{}
	for _, record := range records {
		distance, err := ParseDistance(record.Distance)
		if err != nil || distance > maxDistance {
			continue
		}
		filtered = append(filtered, record)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Price < filtered[j].Price
	})
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}

// ParseDistance разбирает текст расстояния из API ("1,3 км", "0.7 miles"):
// запятая приводится к точке, берется первый числовой токен до единицы
// измерения. Формат API не документирован, поэтому весь разбор собран
// в одной функции.
func ParseDistance(text string) (float64, error) {
	fields := strings.Fields(strings.ReplaceAll(text, ",", "."))
	if len(fields) == 0 {
		return 0, fmt.Errorf("пустой текст расстояния")
	}
	distance, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("не удалось разобрать расстояние %q: %w", text, err)
	}
	return distance, nil
}
