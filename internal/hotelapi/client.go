// Package hotelapi — клиент внешнего API отелей (hotels4 на RapidAPI).
// Возвращает сырые ответы API как есть, нормализацией занимается
// сервис поиска.
package hotelapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrUpstream — внешний API вернул ошибку (поле message в ответе
// или не-200 статус).
var ErrUpstream = errors.New("ошибка внешнего API отелей")

// Client выполняет запросы к API отелей.
type Client struct {
	baseURL    string
	key        string
	host       string
	httpClient *http.Client
}

// NewClient создает новый клиент API отелей.
func NewClient(baseURL, key, host string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		key:     key,
		host:    host,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PropertiesQuery — параметры запроса списка отелей.
type PropertiesQuery struct {
	DestinationID string
	Page          int
	PageSize      int
	CheckIn       string // YYYY-MM-DD
	CheckOut      string // YYYY-MM-DD
	SortOrder     string
	Locale        string
	Currency      string

	// Ценовые границы отправляются только в режиме bestdeal.
	WithPriceBounds bool
	PriceMin        int
	PriceMax        int
}

// PropertiesPage — сырая страница выдачи properties/list.
type PropertiesPage struct {
	Message string `json:"message"`
	Data    struct {
		Body struct {
			SearchResults SearchResults `json:"searchResults"`
		} `json:"body"`
	} `json:"data"`
}

// SearchResults — содержимое searchResults в ответе API.
type SearchResults struct {
	TotalCount int `json:"totalCount"`
	Pagination struct {
		NextPageNumber int `json:"nextPageNumber"`
	} `json:"pagination"`
	Results []RawHotel `json:"results"`
}

// RawHotel — отель в сыром виде API. Цена может прийти либо точным
// числом (exactCurrent), либо отформатированной строкой (current).
type RawHotel struct {
	Name       string  `json:"name"`
	StarRating float64 `json:"starRating"`
	RatePlan   *struct {
		Price struct {
			ExactCurrent float64 `json:"exactCurrent"`
			Current      string  `json:"current"`
		} `json:"price"`
	} `json:"ratePlan"`
	Landmarks []struct {
		Distance string `json:"distance"`
	} `json:"landmarks"`
	Address *struct {
		StreetAddress string `json:"streetAddress"`
	} `json:"address"`
}

// LocationsResponse — сырой ответ locations/search.
type LocationsResponse struct {
	Message     string `json:"message"`
	Suggestions []struct {
		Entities []struct {
			Caption       string `json:"caption"`
			DestinationID string `json:"destinationId"`
		} `json:"entities"`
	} `json:"suggestions"`
}

// Properties запрашивает одну страницу списка отелей.
func (c *Client) Properties(ctx context.Context, q PropertiesQuery) (*PropertiesPage, error) {
	params := url.Values{}
	params.Set("adults1", "1")
	params.Set("destinationId", q.DestinationID)
	params.Set("pageNumber", strconv.Itoa(q.Page))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	params.Set("checkIn", q.CheckIn)
	params.Set("checkOut", q.CheckOut)
	params.Set("sortOrder", q.SortOrder)
	params.Set("locale", q.Locale)
	params.Set("currency", q.Currency)
	if q.WithPriceBounds {
		params.Set("priceMin", strconv.Itoa(q.PriceMin))
		params.Set("priceMax", strconv.Itoa(q.PriceMax))
	}

	var page PropertiesPage
	if err := c.get(ctx, "/properties/list", params, &page); err != nil {
		return nil, err
	}
	if page.Message != "" {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, page.Message)
	}
	return &page, nil
}

// Locations ищет направления по названию города.
func (c *Client) Locations(ctx context.Context, query, locale string) (*LocationsResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("locale", locale)

	var resp LocationsResponse
	if err := c.get(ctx, "/locations/search", params, &resp); err != nil {
		return nil, err
	}
	if resp.Message != "" {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, resp.Message)
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("некорректный base URL: %w", err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("создание запроса: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.key)
	req.Header.Set("x-rapidapi-host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("запрос %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: статус %d", ErrUpstream, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("разбор ответа %s: %w", path, err)
	}
	return nil
}
