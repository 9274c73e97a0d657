package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/RadikAgl/Bot-hoteline/internal/hotelapi"
	"github.com/RadikAgl/Bot-hoteline/internal/model"
)

// Подписи направлений приходят с HTML-разметкой (<span>...), в кнопки
// идет чистый текст.
var htmlTagRe = regexp.MustCompile(`<[^<>]*>`)

// LocationService подбирает направления поиска по названию города.
type LocationService struct {
	api *hotelapi.Client
}

// NewLocationService создает новый сервис направлений.
func NewLocationService(api *hotelapi.Client) *LocationService {
	return &LocationService{api: api}
}

// SearchLocations запрашивает у внешнего API направления, похожие на
// введенное название, и возвращает их в порядке выдачи API.
func (s *LocationService) SearchLocations(ctx context.Context, query, locale string) ([]model.Location, error) {
	resp, err := s.api.Locations(ctx, query, locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	locations := []model.Location{}
	for _, group := range resp.Suggestions {
		for _, entity := range group.Entities {
			if entity.DestinationID == "" {
				continue
			}
			locations = append(locations, model.Location{
				DestinationID: entity.DestinationID,
				Name:          htmlTagRe.ReplaceAllString(entity.Caption, ""),
			})
		}
		// Интересна только первая группа предложений — города.
		break
	}
	if len(locations) == 0 {
		return nil, ErrNoLocationsFound
	}
	return locations, nil
}
