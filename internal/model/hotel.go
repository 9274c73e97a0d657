package model

// HotelRecord — нормализованная запись об отеле из выдачи внешнего API.
// Структура сравнима по ==, на этом построена дедупликация при агрегации.
type HotelRecord struct {
	Name       string
	StarRating float64 // 0 — рейтинг неизвестен
	Price      float64 // в валюте сессии
	Distance   string  // расстояние до центра как текст API, например "1,3 км"
	Address    string
}

// PagedResult — одна страница выдачи после нормализации. Живет только
// внутри агрегации.
type PagedResult struct {
	TotalCount int
	NextPage   int // 0 — следующей страницы нет
	Results    []HotelRecord
}
