package hotelapi_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/RadikAgl/Bot-hoteline/internal/hotelapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperties_QueryAndHeaders(t *testing.T) {
	var gotQuery url.Values
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotHeader = r.Header
		io.WriteString(w, `{"data":{"body":{"searchResults":{"totalCount":0,"pagination":{},"results":[]}}}}`)
	}))
	defer srv.Close()

	client := hotelapi.NewClient(srv.URL, "secret", "hotels4.p.rapidapi.com", time.Second)
	page, err := client.Properties(context.Background(), hotelapi.PropertiesQuery{
		DestinationID:   "777",
		Page:            3,
		PageSize:        25,
		CheckIn:         "2026-08-28",
		CheckOut:        "2026-08-29",
		SortOrder:       "DISTANCE_FROM_LANDMARK",
		Locale:          "ru_RU",
		Currency:        "RUB",
		WithPriceBounds: true,
		PriceMin:        100,
		PriceMax:        2000,
	})
	require.NoError(t, err)

	assert.Equal(t, "777", gotQuery.Get("destinationId"))
	assert.Equal(t, "3", gotQuery.Get("pageNumber"))
	assert.Equal(t, "25", gotQuery.Get("pageSize"))
	assert.Equal(t, "2026-08-28", gotQuery.Get("checkIn"))
	assert.Equal(t, "2026-08-29", gotQuery.Get("checkOut"))
	assert.Equal(t, "100", gotQuery.Get("priceMin"))
	assert.Equal(t, "2000", gotQuery.Get("priceMax"))
	assert.Equal(t, "1", gotQuery.Get("adults1"))
	assert.Equal(t, "secret", gotHeader.Get("x-rapidapi-key"))
	assert.Equal(t, "hotels4.p.rapidapi.com", gotHeader.Get("x-rapidapi-host"))
	assert.Equal(t, 0, page.Data.Body.SearchResults.TotalCount)
}

func TestProperties_OmitsPriceBounds(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		io.WriteString(w, `{"data":{"body":{"searchResults":{"totalCount":0,"pagination":{},"results":[]}}}}`)
	}))
	defer srv.Close()

	client := hotelapi.NewClient(srv.URL, "secret", "host", time.Second)
	_, err := client.Properties(context.Background(), hotelapi.PropertiesQuery{
		DestinationID: "777",
		Page:          1,
		PageSize:      5,
		SortOrder:     "PRICE",
	})
	require.NoError(t, err)

	assert.False(t, gotQuery.Has("priceMin"))
	assert.False(t, gotQuery.Has("priceMax"))
}

func TestProperties_MessageMeansError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message":"Not subscribed"}`)
	}))
	defer srv.Close()

	client := hotelapi.NewClient(srv.URL, "secret", "host", time.Second)
	_, err := client.Properties(context.Background(), hotelapi.PropertiesQuery{Page: 1})
	assert.ErrorIs(t, err, hotelapi.ErrUpstream)
}

func TestLocations_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := hotelapi.NewClient(srv.URL, "secret", "host", time.Second)
	_, err := client.Locations(context.Background(), "Paris", "en_US")
	assert.ErrorIs(t, err, hotelapi.ErrUpstream)
}
