package service_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RadikAgl/Bot-hoteline/internal/hotelapi"
	"github.com/RadikAgl/Bot-hoteline/internal/model"
	"github.com/RadikAgl/Bot-hoteline/internal/service"
	"github.com/RadikAgl/Bot-hoteline/internal/translate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHotelsAPI — поддельный сервер API отелей: страница выдачи по
// номеру pageNumber, запись всех запрошенных номеров страниц.
type fakeHotelsAPI struct {
	pages     map[string]string
	requested []string
	lastQuery map[string][]string
}

func newFakeHotelsAPI(pages map[string]string) *fakeHotelsAPI {
	return &fakeHotelsAPI{pages: pages}
}

func (f *fakeHotelsAPI) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("pageNumber")
		f.requested = append(f.requested, page)
		f.lastQuery = r.URL.Query()
		body, ok := f.pages[page]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		io.WriteString(w, body)
	}
}

func hotelEntry(name string, price float64, distance string) string {
	return fmt.Sprintf(
		`{"name":%q,"starRating":4,"ratePlan":{"price":{"exactCurrent":%g}},"landmarks":[{"distance":%q}],"address":{"streetAddress":"Main st. 1"}}`,
		name, price, distance,
	)
}

func pageJSON(total, next int, entries ...string) string {
	return fmt.Sprintf(
		`{"data":{"body":{"searchResults":{"totalCount":%d,"pagination":{"nextPageNumber":%d},"results":[%s]}}}}`,
		total, next, strings.Join(entries, ","),
	)
}

func newSearchService(baseURL string) *service.SearchService {
	client := hotelapi.NewClient(baseURL, "test-key", "test-host", time.Second)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewSearchService(client, translate.Lookup, logger)
}

func priceSession(limit int) *model.Session {
	return &model.Session{
		ChatID:        1,
		SortMode:      model.SortPriceAsc,
		DestinationID: "1506246",
		ResultLimit:   limit,
		Language:      "en",
		Locale:        "en_US",
		Currency:      "USD",
	}
}

func bestDealSession(limit int, maxDistance float64) *model.Session {
	return &model.Session{
		ChatID:        1,
		SortMode:      model.SortBestDeal,
		DestinationID: "1506246",
		MinPrice:      50,
		MaxPrice:      500,
		MaxDistance:   maxDistance,
		ResultLimit:   limit,
		Language:      "en",
		Locale:        "en_US",
		Currency:      "USD",
	}
}

// Ценовой режим: ровно один запрос, порядок выдачи API не меняется.
func TestFindHotels_PriceModeSingleFetch(t *testing.T) {
	api := newFakeHotelsAPI(map[string]string{
		"1": pageJSON(10, 2,
			hotelEntry("Expensive", 300, "1 km"),
			hotelEntry("Cheap", 100, "2 km"),
		),
	})
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	hotels, err := newSearchService(srv.URL).FindHotels(context.Background(), priceSession(2))
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, api.requested)
	require.Len(t, hotels, 2)
	assert.Equal(t, "Expensive", hotels[0].Name)
	assert.Equal(t, "Cheap", hotels[1].Name)

	// Размер страницы равен запрошенному лимиту, ценовых границ нет
	assert.Equal(t, "2", api.lastQuery["pageSize"][0])
	assert.NotContains(t, api.lastQuery, "priceMin")
	assert.NotContains(t, api.lastQuery, "priceMax")
}

// Bestdeal: фиксированный размер страницы и ценовые границы в запросе.
func TestFindHotels_BestDealQueryParams(t *testing.T) {
	api := newFakeHotelsAPI(map[string]string{
		"1": pageJSON(1, 0, hotelEntry("Only", 100, "1 km")),
	})
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	_, err := newSearchService(srv.URL).FindHotels(context.Background(), bestDealSession(5, 10))
	require.NoError(t, err)

	assert.Equal(t, "25", api.lastQuery["pageSize"][0])
	assert.Equal(t, "50", api.lastQuery["priceMin"][0])
	assert.Equal(t, "500", api.lastQuery["priceMax"][0])
	assert.Equal(t, "DISTANCE_FROM_LANDMARK", api.lastQuery["sortOrder"][0])
}

// Пагинация останавливается перед пятой страницей даже при наличии
// следующей.
func TestFindHotels_PaginationPageCap(t *testing.T) {
	pages := map[string]string{
		"1": pageJSON(100, 2, hotelEntry("H1", 100, "1 km")),
		"2": pageJSON(100, 3, hotelEntry("H2", 110, "1 km")),
		"3": pageJSON(100, 4, hotelEntry("H3", 120, "1 km")),
		"4": pageJSON(100, 5, hotelEntry("H4", 130, "1 km")),
		"5": pageJSON(100, 6, hotelEntry("H5", 140, "1 km")),
	}
	api := newFakeHotelsAPI(pages)
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	hotels, err := newSearchService(srv.URL).FindHotels(context.Background(), bestDealSession(20, 10))
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3", "4"}, api.requested)
	assert.Len(t, hotels, 4)
}

// Пагинация останавливается, когда последний отель страницы уже дальше
// запрошенного радиуса.
func TestFindHotels_PaginationDistanceStop(t *testing.T) {
	api := newFakeHotelsAPI(map[string]string{
		"1": pageJSON(100, 2,
			hotelEntry("Near", 100, "1 km"),
			hotelEntry("Far", 90, "12 km"),
		),
		"2": pageJSON(100, 3, hotelEntry("Unreachable", 80, "20 km")),
	})
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	hotels, err := newSearchService(srv.URL).FindHotels(context.Background(), bestDealSession(20, 10))
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, api.requested)
	// Далекий отель отсеян отбором
	require.Len(t, hotels, 1)
	assert.Equal(t, "Near", hotels[0].Name)
}

// Повтор записи на соседних страницах схлопывается в одну.
func TestFindHotels_DedupAcrossPages(t *testing.T) {
	duplicate := hotelEntry("Twin", 200, "1 km")
	api := newFakeHotelsAPI(map[string]string{
		"1": pageJSON(100, 2, hotelEntry("A", 100, "1 km"), duplicate),
		"2": pageJSON(100, 0, duplicate, hotelEntry("C", 150, "1 km")),
	})
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	hotels, err := newSearchService(srv.URL).FindHotels(context.Background(), bestDealSession(20, 10))
	require.NoError(t, err)

	require.Len(t, hotels, 3)
	assert.Equal(t, []float64{100, 150, 200}, []float64{hotels[0].Price, hotels[1].Price, hotels[2].Price})
}

// Ошибка первой страницы — терминальная для поиска.
func TestFindHotels_FirstPageError(t *testing.T) {
	api := newFakeHotelsAPI(map[string]string{})
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	_, err := newSearchService(srv.URL).FindHotels(context.Background(), bestDealSession(5, 10))
	assert.ErrorIs(t, err, service.ErrBadRequest)
}

// Ответ с полем message — тоже ошибка внешнего API.
func TestFindHotels_UpstreamMessageError(t *testing.T) {
	api := newFakeHotelsAPI(map[string]string{
		"1": `{"message":"You are not subscribed to this API."}`,
	})
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	_, err := newSearchService(srv.URL).FindHotels(context.Background(), priceSession(5))
	assert.ErrorIs(t, err, service.ErrBadRequest)
}

// Ошибка последующей страницы не теряет уже собранные.
func TestFindHotels_LaterPageErrorKeepsPartial(t *testing.T) {
	api := newFakeHotelsAPI(map[string]string{
		"1": pageJSON(100, 2,
			hotelEntry("A", 100, "1 km"),
			hotelEntry("B", 120, "2 km"),
		),
		// страницы 2 нет — сервер вернет 500
	})
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	hotels, err := newSearchService(srv.URL).FindHotels(context.Background(), bestDealSession(20, 10))
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, api.requested)
	assert.Len(t, hotels, 2)
}

// Извлечение цены: exactCurrent как есть, current очищается от всего,
// кроме цифр, отель без цены молча пропускается.
func TestFindHotels_PriceExtraction(t *testing.T) {
	exact := `{"name":"Exact","starRating":3,"ratePlan":{"price":{"exactCurrent":150}},"landmarks":[{"distance":"1 km"}],"address":{"streetAddress":"a"}}`
	formatted := `{"name":"Formatted","starRating":3,"ratePlan":{"price":{"current":"$1,200"}},"landmarks":[{"distance":"1 km"}],"address":{"streetAddress":"b"}}`
	missing := `{"name":"NoPrice","starRating":3,"landmarks":[{"distance":"1 km"}],"address":{"streetAddress":"c"}}`

	api := newFakeHotelsAPI(map[string]string{
		"1": pageJSON(3, 0, exact, formatted, missing),
	})
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	hotels, err := newSearchService(srv.URL).FindHotels(context.Background(), priceSession(5))
	require.NoError(t, err)

	require.Len(t, hotels, 2)
	assert.Equal(t, 150.0, hotels[0].Price)
	assert.Equal(t, 1200.0, hotels[1].Price)
}

// Отель без landmarks и адреса получает локализованные заглушки.
func TestFindHotels_SentinelFields(t *testing.T) {
	bare := `{"name":"Bare","ratePlan":{"price":{"exactCurrent":90}}}`
	api := newFakeHotelsAPI(map[string]string{
		"1": pageJSON(1, 0, bare),
	})
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	hotels, err := newSearchService(srv.URL).FindHotels(context.Background(), priceSession(5))
	require.NoError(t, err)

	require.Len(t, hotels, 1)
	assert.Equal(t, "No information", hotels[0].Distance)
	assert.Equal(t, "No information", hotels[0].Address)
	assert.Zero(t, hotels[0].StarRating)
}

func TestFindHotels_NoResults(t *testing.T) {
	api := newFakeHotelsAPI(map[string]string{
		"1": pageJSON(0, 0),
	})
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	_, err := newSearchService(srv.URL).FindHotels(context.Background(), priceSession(5))
	assert.ErrorIs(t, err, service.ErrNoHotelsFound)
}

// Сквозной сценарий: ценовой режим с лимитом 2 дает ровно два блока
// описаний в порядке выдачи API.
func TestSearchPipeline_EndToEnd(t *testing.T) {
	api := newFakeHotelsAPI(map[string]string{
		"1": pageJSON(2, 0,
			hotelEntry("Grand Hotel", 250, "0.5 km"),
			hotelEntry("Budget Inn", 80, "3 km"),
		),
	})
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	session := priceSession(2)
	hotels, err := newSearchService(srv.URL).FindHotels(context.Background(), session)
	require.NoError(t, err)

	blocks := make([]string, 0, len(hotels))
	for _, h := range hotels {
		blocks = append(blocks, service.DescribeHotel(h, session.Currency, session.Language, translate.Lookup))
	}
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], "Grand Hotel")
	assert.Contains(t, blocks[1], "Budget Inn")
}
