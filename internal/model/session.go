package model

// Step — шаг диалога подбора параметров поиска.
type Step int

const (
	StepIdle        Step = 0 // диалог не запущен
	StepDestination Step = 1 // ожидается название города
	StepPriceRange  Step = 2 // ожидается диапазон цен (только bestdeal)
	StepDistance    Step = 3 // ожидается радиус поиска (только bestdeal)
	StepResultLimit Step = 4 // ожидается количество отелей
)

// SortMode — режим сортировки выдачи. Значения совпадают с токенами
// sortOrder внешнего API отелей.
type SortMode string

const (
	SortPriceAsc  SortMode = "PRICE"
	SortPriceDesc SortMode = "PRICE_HIGHEST_FIRST"
	SortBestDeal  SortMode = "DISTANCE_FROM_LANDMARK"
)

// Session хранит накопленное состояние диалога для одного чата.
// Поля сериализуются в Redis-хэш по ключу чата.
type Session struct {
	ChatID          int64    `redis:"-"`
	Step            Step     `redis:"step"`
	SortMode        SortMode `redis:"sort_mode"`
	DestinationID   string   `redis:"destination_id"`
	DestinationName string   `redis:"destination_name"`
	MinPrice        int      `redis:"min_price"`
	MaxPrice        int      `redis:"max_price"`
	MaxDistance     float64  `redis:"max_distance"`
	ResultLimit     int      `redis:"result_limit"`
	Locale          string   `redis:"locale"`
	Currency        string   `redis:"currency"`
	Language        string   `redis:"language"`
}

// NextStep возвращает следующий шаг диалога для текущего режима сортировки:
// в режиме bestdeal после выбора города запрашиваются цены и радиус,
// в остальных режимах — сразу количество отелей.
func (s *Session) NextStep() Step {
	if s.Step == StepDestination && s.SortMode != SortBestDeal {
		return StepResultLimit
	}
	return s.Step + 1
}
