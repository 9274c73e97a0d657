package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/RadikAgl/Bot-hoteline/internal/config"
	"github.com/RadikAgl/Bot-hoteline/internal/hotelapi"
	"github.com/RadikAgl/Bot-hoteline/internal/model"
	"github.com/RadikAgl/Bot-hoteline/internal/repository"
	"github.com/RadikAgl/Bot-hoteline/internal/service"
	"github.com/RadikAgl/Bot-hoteline/internal/translate"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// app собирает зависимости бота в одном месте.
type app struct {
	bot       *tgbotapi.BotAPI
	wizard    *service.WizardService
	locations *service.LocationService
	search    *service.SearchService
	history   *service.HistoryService
	sessions  repository.SessionRepository
	tr        translate.Func
	logger    *slog.Logger
}

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Хранилище сессий
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis недоступен: %v", err)
	}
	sessions := repository.NewRedisSessionRepository(rdb)

	// История поисков (опционально)
	var historyRepo *repository.HistoryRepository
	if cfg.Postgres.DSN != "" {
		db, err := sqlx.Connect("postgres", cfg.Postgres.DSN)
		if err != nil {
			log.Fatalf("Не удалось подключиться к базе данных: %v", err)
		}
		if _, err := db.Exec(
			`CREATE TABLE IF NOT EXISTS search_history (
				id UUID PRIMARY KEY,
				chat_id BIGINT NOT NULL,
				sort_mode TEXT NOT NULL,
				destination_name TEXT NOT NULL,
				result_count INT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			)`); err != nil {
			log.Fatalf("Не удалось подготовить таблицу истории: %v", err)
		}
		historyRepo = repository.NewHistoryRepository(db)
	}

	api := hotelapi.NewClient(cfg.HotelAPI.BaseURL, cfg.HotelAPI.Key, cfg.HotelAPI.Host, cfg.HotelAPI.Timeout)

	if cfg.Bot.Token == "" {
		log.Fatal("Не указан токен бота (HOTELINE_BOT_TOKEN)")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Fatal("Ошибка инициализации бота:", err)
	}
	log.Printf("Запущен бот %s", bot.Self.UserName)

	a := &app{
		bot:       bot,
		wizard:    service.NewWizardService(sessions),
		locations: service.NewLocationService(api),
		search:    service.NewSearchService(api, translate.Lookup, logger),
		history:   service.NewHistoryService(historyRepo),
		sessions:  sessions,
		tr:        translate.Lookup,
		logger:    logger,
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Bot.UpdateTimeout
	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		if cq := update.CallbackQuery; cq != nil {
			a.handleCallback(ctx, cq)
			continue
		}
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		a.handleMessage(ctx, update.Message)
	}
}

// session возвращает сессию чата, при первом обращении регистрирует
// пользователя с языком из клиента Telegram.
func (a *app) session(ctx context.Context, chatID int64, languageCode string) (*model.Session, error) {
	exists, err := a.sessions.Exists(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return a.wizard.Register(ctx, chatID, languageCode)
	}
	return a.sessions.Get(ctx, chatID)
}

func (a *app) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := a.bot.Send(msg); err != nil {
		a.logger.Error("отправка сообщения", "chat_id", chatID, "error", err)
	}
}

// handleMessage обрабатывает команды и текстовые сообщения.
func (a *app) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	languageCode := ""
	if msg.From != nil {
		languageCode = msg.From.LanguageCode
	}
	session, err := a.session(ctx, chatID, languageCode)
	if err != nil {
		a.logger.Error("загрузка сессии", "chat_id", chatID, "error", err)
		return
	}
	lang := session.Language

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			a.send(chatID, a.tr("hello", lang))

		case "help":
			a.send(chatID, a.tr("help", lang))

		case "lowprice", "highprice", "bestdeal":
			mode := model.SortPriceAsc
			switch msg.Command() {
			case "highprice":
				mode = model.SortPriceDesc
			case "bestdeal":
				mode = model.SortBestDeal
			}
			if err := a.wizard.Start(ctx, session, mode); err != nil {
				a.logger.Error("запуск диалога", "chat_id", chatID, "error", err)
				return
			}
			a.send(chatID, a.question(session))

		case "settings":
			a.sendSettingsMenu(session)

		case "history":
			a.sendHistory(ctx, session)

		default:
			a.send(chatID, a.tr("misunderstanding", lang))
		}
		return
	}

	switch session.Step {
	case model.StepDestination:
		a.handleDestinationInput(ctx, session, msg.Text)
	case model.StepPriceRange, model.StepDistance, model.StepResultLimit:
		a.handleParameterInput(ctx, session, msg.Text)
	default:
		a.send(chatID, a.tr("misunderstanding", lang))
	}
}

// handleDestinationInput обрабатывает введенное название города: ищет
// направления и предлагает выбрать одно из них кнопками.
func (a *app) handleDestinationInput(ctx context.Context, session *model.Session, text string) {
	chatID := session.ChatID
	lang := session.Language

	event, err := a.wizard.HandleInput(ctx, session, text)
	if err != nil {
		a.logger.Error("обработка ввода", "chat_id", chatID, "error", err)
		return
	}
	if event != service.EventSearchLocations {
		a.send(chatID, a.mistake(session))
		return
	}

	a.send(chatID, a.tr("wait", lang))
	locations, err := a.locations.SearchLocations(ctx, strings.TrimSpace(text), session.Locale)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNoLocationsFound):
		a.send(chatID, strings.TrimSpace(text)+" "+a.tr("locations_not_found", lang))
		return
	default:
		a.logger.Warn("подбор направлений", "chat_id", chatID, "error", err)
		a.send(chatID, a.tr("bad_request", lang))
		return
	}

	menu := tgbotapi.NewInlineKeyboardMarkup()
	for _, loc := range locations {
		name := loc.Name
		if len(name) > 60 {
			name = name[:60]
		}
		row := tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(name, "code"+loc.DestinationID),
		)
		menu.InlineKeyboard = append(menu.InlineKeyboard, row)
	}
	menu.InlineKeyboard = append(menu.InlineKeyboard, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(a.tr("cancel", lang), "cancel"),
	))
	out := tgbotapi.NewMessage(chatID, a.tr("loc_choose", lang))
	out.ReplyMarkup = menu
	if _, err := a.bot.Send(out); err != nil {
		a.logger.Error("отправка меню направлений", "chat_id", chatID, "error", err)
	}
}

// handleParameterInput обрабатывает ответы на вопросы о ценах, радиусе
// и количестве отелей.
func (a *app) handleParameterInput(ctx context.Context, session *model.Session, text string) {
	chatID := session.ChatID

	event, err := a.wizard.HandleInput(ctx, session, text)
	if err != nil {
		a.logger.Error("обработка ввода", "chat_id", chatID, "error", err)
		return
	}
	switch event {
	case service.EventInvalid:
		a.send(chatID, a.mistake(session))
	case service.EventAskNext:
		a.send(chatID, a.question(session))
	case service.EventComplete:
		// Поиск идет в своей горутине, чтобы медленный ответ API
		// не задерживал другие чаты.
		go a.runSearch(ctx, session)
	}
}

// runSearch выполняет поиск по собранным параметрам и выводит результат.
func (a *app) runSearch(ctx context.Context, session *model.Session) {
	chatID := session.ChatID
	lang := session.Language

	a.send(chatID, a.tr("wait", lang))
	hotels, err := a.search.FindHotels(ctx, session)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNoHotelsFound):
		a.send(chatID, a.tr("hotels_not_found", lang))
		return
	default:
		a.logger.Warn("поиск отелей", "chat_id", chatID, "error", err)
		a.send(chatID, a.tr("bad_request", lang))
		return
	}

	a.send(chatID, service.SearchSummary(session, a.tr))
	a.send(chatID, fmt.Sprintf("%s: %d", a.tr("hotels_found", lang), len(hotels)))
	for _, hotel := range hotels {
		a.send(chatID, service.DescribeHotel(hotel, session.Currency, lang, a.tr))
	}

	if err := a.history.RecordSearch(ctx, session, len(hotels)); err != nil {
		a.logger.Warn("сохранение истории", "chat_id", chatID, "error", err)
	}
}

// handleCallback обрабатывает нажатия inline-кнопок.
func (a *app) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	a.bot.Request(tgbotapi.NewCallback(cq.ID, ""))
	// Убираем клавиатуру, по которой кликнули
	a.bot.Request(tgbotapi.NewEditMessageReplyMarkup(chatID, cq.Message.MessageID,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}))

	session, err := a.session(ctx, chatID, "")
	if err != nil {
		a.logger.Error("загрузка сессии", "chat_id", chatID, "error", err)
		return
	}
	lang := session.Language
	data := cq.Data

	switch {
	// Выбор направления из меню
	case strings.HasPrefix(data, "code"):
		if session.Step != model.StepDestination {
			a.send(chatID, a.tr("enter_command", lang))
			a.wizard.Cancel(ctx, chatID)
			return
		}
		name := buttonText(cq.Message, data)
		if err := a.wizard.SelectDestination(ctx, session, strings.TrimPrefix(data, "code"), name); err != nil {
			a.logger.Error("выбор направления", "chat_id", chatID, "error", err)
			return
		}
		a.send(chatID, fmt.Sprintf("%s: %s", a.tr("loc_selected", lang), name))
		a.send(chatID, a.question(session))

	// Меню настроек
	case data == "set_locale":
		menu := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Русский", "locale_ru_RU")),
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("English", "locale_en_US")),
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(a.tr("cancel", lang), "cancel")),
		)
		out := tgbotapi.NewMessage(chatID, a.tr("ask_to_select", lang))
		out.ReplyMarkup = menu
		a.bot.Send(out)

	case data == "set_currency":
		menu := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("RUB", "currency_RUB")),
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("USD", "currency_USD")),
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("EUR", "currency_EUR")),
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(a.tr("cancel", lang), "cancel")),
		)
		out := tgbotapi.NewMessage(chatID, a.tr("ask_to_select", lang))
		out.ReplyMarkup = menu
		a.bot.Send(out)

	// Смена языка: locale_ru_RU -> язык ru, локаль ru_RU
	case strings.HasPrefix(data, "locale_"):
		locale := strings.TrimPrefix(data, "locale_")
		language := locale[:2]
		if err := a.sessions.SetLanguage(ctx, chatID, language, locale); err != nil {
			a.logger.Error("смена языка", "chat_id", chatID, "error", err)
			return
		}
		a.send(chatID, fmt.Sprintf("%s: %s", a.tr("current_language", language), a.tr("language", language)))

	// Смена валюты: currency_RUB -> RUB
	case strings.HasPrefix(data, "currency_"):
		currency := strings.TrimPrefix(data, "currency_")
		if err := a.sessions.SetCurrency(ctx, chatID, currency); err != nil {
			a.logger.Error("смена валюты", "chat_id", chatID, "error", err)
			return
		}
		a.send(chatID, fmt.Sprintf("%s: %s", a.tr("current_currency", lang), currency))

	case data == "cancel":
		if err := a.wizard.Cancel(ctx, chatID); err != nil {
			a.logger.Error("отмена диалога", "chat_id", chatID, "error", err)
			return
		}
		a.send(chatID, a.tr("canceled", lang))
	}
}

// sendSettingsMenu показывает меню настроек языка и валюты.
func (a *app) sendSettingsMenu(session *model.Session) {
	lang := session.Language
	menu := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(a.tr("language_", lang), "set_locale")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(a.tr("currency_", lang), "set_currency")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(a.tr("cancel", lang), "cancel")),
	)
	out := tgbotapi.NewMessage(session.ChatID, a.tr("settings", lang))
	out.ReplyMarkup = menu
	a.bot.Send(out)
}

// sendHistory выводит последние поиски чата.
func (a *app) sendHistory(ctx context.Context, session *model.Session) {
	chatID := session.ChatID
	lang := session.Language
	if !a.history.Enabled() {
		a.send(chatID, a.tr("history_unavailable", lang))
		return
	}
	records, err := a.history.ListByChat(ctx, chatID, 10)
	if err != nil {
		a.logger.Warn("чтение истории", "chat_id", chatID, "error", err)
		a.send(chatID, a.tr("history_unavailable", lang))
		return
	}
	if len(records) == 0 {
		a.send(chatID, a.tr("history_empty", lang))
		return
	}
	var b strings.Builder
	b.WriteString("<b>" + a.tr("history", lang) + "</b>\n")
	for _, rec := range records {
		b.WriteString(fmt.Sprintf("%s — %s, %d (%s)\n",
			rec.CreatedAt.Format("2006-01-02 15:04"), rec.DestinationName,
			rec.ResultCount, strings.ToLower(rec.SortMode)))
	}
	a.send(chatID, b.String())
}

// question возвращает вопрос текущего шага; для диапазона цен
// добавляется валюта.
func (a *app) question(session *model.Session) string {
	text := a.tr(fmt.Sprintf("question_%d", session.Step), session.Language)
	if session.Step == model.StepPriceRange {
		text += " (" + session.Currency + ")"
	}
	return text
}

// mistake возвращает сообщение об ошибке ввода текущего шага.
func (a *app) mistake(session *model.Session) string {
	text := a.tr(fmt.Sprintf("mistake_%d", session.Step), session.Language)
	if session.Step == model.StepPriceRange {
		text += " (" + session.Currency + ")"
	}
	return text
}

// buttonText находит подпись нажатой кнопки в клавиатуре сообщения.
func buttonText(msg *tgbotapi.Message, callbackData string) string {
	if msg.ReplyMarkup == nil {
		return ""
	}
	for _, row := range msg.ReplyMarkup.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil && *btn.CallbackData == callbackData {
				return btn.Text
			}
		}
	}
	return ""
}
