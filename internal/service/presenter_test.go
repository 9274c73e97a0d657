package service_test

import (
	"testing"

	"github.com/RadikAgl/Bot-hoteline/internal/model"
	"github.com/RadikAgl/Bot-hoteline/internal/service"
	"github.com/RadikAgl/Bot-hoteline/internal/translate"

	"github.com/stretchr/testify/assert"
)

func TestDescribeHotel(t *testing.T) {
	hotel := model.HotelRecord{
		Name:       "Grand Hotel",
		StarRating: 4.5,
		Price:      150,
		Distance:   "1.2 miles",
		Address:    "Main st. 1",
	}

	text := service.DescribeHotel(hotel, "USD", "en", translate.Lookup)

	assert.Contains(t, text, "Hotel: Grand Hotel")
	// Целая часть рейтинга — четыре звезды
	assert.Contains(t, text, "⭐⭐⭐⭐")
	assert.NotContains(t, text, "⭐⭐⭐⭐⭐")
	assert.Contains(t, text, "Price: 150 USD")
	assert.Contains(t, text, "1.2 miles")
	assert.Contains(t, text, "Main st. 1")
}

func TestDescribeHotel_NoRating(t *testing.T) {
	hotel := model.HotelRecord{Name: "X", Price: 10.5, Distance: "1 km", Address: "y"}

	en := service.DescribeHotel(hotel, "USD", "en", translate.Lookup)
	assert.Contains(t, en, "No information")
	assert.Contains(t, en, "10.5 USD")

	ru := service.DescribeHotel(hotel, "RUB", "ru", translate.Lookup)
	assert.Contains(t, ru, "Нет данных")
	assert.Contains(t, ru, "10.5 RUB")
}

func TestSearchSummary(t *testing.T) {
	session := &model.Session{
		SortMode:        model.SortBestDeal,
		DestinationName: "Paris, France",
		MinPrice:        50,
		MaxPrice:        200,
		MaxDistance:     1.5,
		Language:        "en",
		Currency:        "USD",
	}

	summary := service.SearchSummary(session, translate.Lookup)
	assert.Contains(t, summary, "Search parameters")
	assert.Contains(t, summary, "City: Paris, France")
	assert.Contains(t, summary, "50 - 200 USD")
	assert.Contains(t, summary, "1.5 miles")
}

// В ценовых режимах сводка не содержит цен и радиуса.
func TestSearchSummary_PriceMode(t *testing.T) {
	session := &model.Session{
		SortMode:        model.SortPriceAsc,
		DestinationName: "London",
		Language:        "en",
		Currency:        "USD",
	}

	summary := service.SearchSummary(session, translate.Lookup)
	assert.Contains(t, summary, "City: London")
	assert.NotContains(t, summary, "Maximum distance")
}
