// Package translate содержит словарь локализованных сообщений бота.
package translate

// Func — возможность локализации, внедряется в сервисы: ключ + язык
// ("ru"/"en") -> текст сообщения.
type Func func(key, lang string) string

// Lookup возвращает сообщение из словаря. Для неизвестного языка
// используется английский, для неизвестного ключа возвращается сам ключ,
// чтобы опечатка была видна в чате, а не терялась молча.
func Lookup(key, lang string) string {
	entry, ok := vocabulary[key]
	if !ok {
		return key
	}
	if text, ok := entry[lang]; ok {
		return text
	}
	return entry["en"]
}

// DefaultLocale и DefaultCurrency — настройки по умолчанию для языка
// пользователя.
var (
	DefaultLocale   = map[string]string{"ru": "ru_RU", "en": "en_US"}
	DefaultCurrency = map[string]string{"ru": "RUB", "en": "USD"}
)

var vocabulary = map[string]map[string]string{
	"help": {
		"ru": "<b>Команды бота</b>\n" +
			"/help - список всех команд\n" +
			"/lowprice - отели с низкими ценами\n" +
			"/highprice - отели с высокими ценами\n" +
			"/bestdeal - лучшие предложения\n" +
			"/history - история поисков\n" +
			"/settings - настройки\n",
		"en": "<b>Bot commands</b>\n" +
			"/help - list of all commands\n" +
			"/lowprice - top cheap hotels\n" +
			"/highprice - top luxury hotels\n" +
			"/bestdeal - best deals\n" +
			"/history - search history\n" +
			"/settings - settings\n",
	},
	"hello": {
		"ru": "Привет, рад приветствовать вас. Начните с команды /help.",
		"en": "Hello, glad to welcome you here. Start with the /help command.",
	},
	"mistake_1": {
		"ru": "Некорректный ввод. Название города должно содержать только буквы английского или русского алфавита и символ \"-\". Попробуйте ввести название еще раз.",
		"en": "Invalid input. City name can contain only letters and the symbol \"-\". Try to enter the city name again.",
	},
	"mistake_2": {
		"ru": "Некорректный ввод. Нужно ввести два положительных целых числа, разделенных пробелом. Пример \"1000 2000\". Повторите еще раз.",
		"en": "Invalid input. You need to enter two positive integers separated by a space. Example: \"10 20\". Try again.",
	},
	"mistake_3": {
		"ru": "Некорректный ввод. Нужно ввести положительное число. Пример: \"10\" или \"1.5\". Повторите еще раз.",
		"en": "Invalid input. Positive number must be entered. Example: \"10\" or \"1.5\" Try again.",
	},
	"mistake_4": {
		"ru": "Некорректный ввод. Число должно быть положительным, целым и не больше 20. Пример: \"10\". Повторите еще раз.",
		"en": "Invalid input. Positive integer no more than 20 must be entered. Example: \"10\". Try again.",
	},
	"question_1": {
		"ru": "В каком городе искать отели?",
		"en": "In which city to look for hotels?",
	},
	"question_2": {
		"ru": "Введите диапазон цен через пробел",
		"en": "Enter the prices range separated by space",
	},
	"question_3": {
		"ru": "Введите радиус поиска от центра города в км",
		"en": "Enter the search radius from the city center in miles",
	},
	"question_4": {
		"ru": "Сколько отелей вывести? Максимум - 20",
		"en": "How many hotels to show? Maximum - 20",
	},
	"locations_not_found": {
		"ru": "- по запросу ничего не найдено. Возможно вы допустили ошибку в названии? Повторите еще раз.",
		"en": "not found. Perhaps you made a mistake in the name? Try again.",
	},
	"hotels_not_found": {
		"ru": "Отели не найдены. Попробуйте еще раз с другими параметрами.",
		"en": "Hotels not found. Try again with another parameters.",
	},
	"bad_request": {
		"ru": "К сожалению, не могу получить ответ от сервера. Повторите поиск позже.",
		"en": "Sorry, I could not get a response from the server, please try again later.",
	},
	"hotel": {
		"ru": "Отель",
		"en": "Hotel",
	},
	"address": {
		"ru": "Адрес",
		"en": "Address",
	},
	"rating": {
		"ru": "Класс отеля",
		"en": "Rating",
	},
	"price": {
		"ru": "Стоимость",
		"en": "Price",
	},
	"distance": {
		"ru": "Расстояние до центра города",
		"en": "Distance to city center",
	},
	"loc_choose": {
		"ru": "Выберите город из списка",
		"en": "Select the city from list",
	},
	"loc_selected": {
		"ru": "Выбрана локация",
		"en": "Location selected",
	},
	"cancel": {
		"ru": "Отмена",
		"en": "Cancel",
	},
	"canceled": {
		"ru": "Отменено",
		"en": "Canceled",
	},
	"ask_to_select": {
		"ru": "Выберите один из вариантов",
		"en": "Select one of next options",
	},
	"current_language": {
		"ru": "Текущий язык",
		"en": "Current language",
	},
	"current_currency": {
		"ru": "Текущая валюта",
		"en": "Current currency",
	},
	"language": {
		"ru": "Русский",
		"en": "English",
	},
	"language_": {
		"ru": "Язык",
		"en": "Language",
	},
	"currency_": {
		"ru": "Валюта",
		"en": "Currency",
	},
	"hotels_found": {
		"ru": "Найдено отелей",
		"en": "Hotels found",
	},
	"misunderstanding": {
		"ru": "Я вас не понимаю. Для ознакомления с командами бота напишите /help.",
		"en": "I do not understand. To learn more about the bot commands enter /help",
	},
	"settings": {
		"ru": "Настройки",
		"en": "Settings",
	},
	"wait": {
		"ru": "Пожалуйста, подождите\nЗапрашиваю информацию...",
		"en": "Please, wait\nRequesting information...",
	},
	"parameters": {
		"ru": "Параметры поиска",
		"en": "Search parameters",
	},
	"city": {
		"ru": "Город",
		"en": "City",
	},
	"max_distance": {
		"ru": "Максимальное расстояние до центра города",
		"en": "Maximum distance to city center",
	},
	"dis_unit": {
		"ru": "км",
		"en": "miles",
	},
	"no_information": {
		"ru": "Нет данных",
		"en": "No information",
	},
	"enter_command": {
		"ru": "Пожалуйста, сначала введите нужную команду",
		"en": "Please, first enter the command you want",
	},
	"history": {
		"ru": "История поисков",
		"en": "Search history",
	},
	"history_empty": {
		"ru": "История поисков пуста",
		"en": "Search history is empty",
	},
	"history_unavailable": {
		"ru": "История поисков недоступна",
		"en": "Search history is unavailable",
	},
}
