package service_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RadikAgl/Bot-hoteline/internal/hotelapi"
	"github.com/RadikAgl/Bot-hoteline/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locationsServer(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	}))
}

func newLocationService(baseURL string) *service.LocationService {
	return service.NewLocationService(hotelapi.NewClient(baseURL, "k", "h", time.Second))
}

func TestSearchLocations_StripsHTMLTags(t *testing.T) {
	srv := locationsServer(`{"suggestions":[{"entities":[
		{"caption":"Paris, <span class='highlighted'>France</span>","destinationId":"1506246"},
		{"caption":"Paris, Texas","destinationId":"12345"}
	]},{"entities":[{"caption":"Landmark","destinationId":"999"}]}]}`)
	defer srv.Close()

	locations, err := newLocationService(srv.URL).SearchLocations(context.Background(), "Paris", "en_US")
	require.NoError(t, err)

	// Берется только первая группа предложений, порядок API сохраняется
	require.Len(t, locations, 2)
	assert.Equal(t, "Paris, France", locations[0].Name)
	assert.Equal(t, "1506246", locations[0].DestinationID)
	assert.Equal(t, "Paris, Texas", locations[1].Name)
}

func TestSearchLocations_Empty(t *testing.T) {
	srv := locationsServer(`{"suggestions":[{"entities":[]}]}`)
	defer srv.Close()

	_, err := newLocationService(srv.URL).SearchLocations(context.Background(), "Нарния", "ru_RU")
	assert.ErrorIs(t, err, service.ErrNoLocationsFound)
}

func TestSearchLocations_UpstreamError(t *testing.T) {
	srv := locationsServer(`{"message":"rate limit exceeded"}`)
	defer srv.Close()

	_, err := newLocationService(srv.URL).SearchLocations(context.Background(), "Paris", "en_US")
	assert.ErrorIs(t, err, service.ErrBadRequest)
}
