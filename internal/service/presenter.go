package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RadikAgl/Bot-hoteline/internal/model"
	"github.com/RadikAgl/Bot-hoteline/internal/translate"
)

// DescribeHotel строит текстовый блок описания отеля для чата: название,
// класс звездочками (целая часть рейтинга), цена с валютой, расстояние
// до центра и адрес. Чистая функция, без состояния и ошибок.
func DescribeHotel(hotel model.HotelRecord, currency, lang string, tr translate.Func) string {
	rating := tr("no_information", lang)
	if hotel.StarRating > 0 {
		rating = strings.Repeat("⭐", int(hotel.StarRating))
	}
	return fmt.Sprintf(
		"%s: %s\n%s: %s\n%s: %s %s\n%s: %s\n%s: %s\n",
		tr("hotel", lang), hotel.Name,
		tr("rating", lang), rating,
		tr("price", lang), formatNumber(hotel.Price), currency,
		tr("distance", lang), hotel.Distance,
		tr("address", lang), hotel.Address,
	)
}

// SearchSummary строит сводку параметров выполненного поиска: город,
// а в режиме bestdeal еще диапазон цен и радиус.
func SearchSummary(session *model.Session, tr translate.Func) string {
	lang := session.Language
	summary := fmt.Sprintf(
		"<b>%s</b>\n%s: %s\n",
		tr("parameters", lang),
		tr("city", lang), session.DestinationName,
	)
	if session.SortMode == model.SortBestDeal {
		summary += fmt.Sprintf(
			"%s: %d - %d %s\n%s: %s %s",
			tr("price", lang), session.MinPrice, session.MaxPrice, session.Currency,
			tr("max_distance", lang), formatNumber(session.MaxDistance), tr("dis_unit", lang),
		)
	}
	return summary
}

// formatNumber печатает число без хвостовых нулей: 150 вместо 150.00,
// но 150.5 как есть.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
