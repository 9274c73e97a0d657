package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/RadikAgl/Bot-hoteline/internal/model"
	"github.com/RadikAgl/Bot-hoteline/internal/repository"
	"github.com/RadikAgl/Bot-hoteline/internal/translate"
)

// WizardEvent — результат обработки очередного сообщения пользователя
// машиной состояний диалога.
type WizardEvent int

const (
	// EventInvalid — ввод не прошел проверку, шаг не изменился,
	// нужно повторить вопрос с подсказкой об ошибке.
	EventInvalid WizardEvent = iota
	// EventSearchLocations — введено название города, нужно запустить
	// подбор направлений (сам шаг пока не продвигается).
	EventSearchLocations
	// EventAskNext — параметр записан, нужно задать вопрос нового шага.
	EventAskNext
	// EventComplete — все параметры собраны, пора выполнять поиск.
	EventComplete
)

// WizardService — машина состояний диалога подбора параметров поиска.
// Единственное место, где мутируется сессия.
type WizardService struct {
	sessions repository.SessionRepository
}

// NewWizardService создает новый сервис диалога.
func NewWizardService(sessions repository.SessionRepository) *WizardService {
	return &WizardService{sessions: sessions}
}

// Register регистрирует чат при первом обращении: язык берется из
// настроек клиента Telegram (всё, кроме русского, считается английским),
// локаль и валюта — по языку.
func (s *WizardService) Register(ctx context.Context, chatID int64, languageCode string) (*model.Session, error) {
	lang := "en"
	if languageCode == "ru" {
		lang = "ru"
	}
	session := &model.Session{
		ChatID:   chatID,
		Step:     model.StepIdle,
		Language: lang,
		Locale:   translate.DefaultLocale[lang],
		Currency: translate.DefaultCurrency[lang],
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("регистрация чата %d: %w", chatID, err)
	}
	return session, nil
}

// Start запускает диалог: сбрасывает шаг на выбор города и фиксирует
// режим сортировки.
func (s *WizardService) Start(ctx context.Context, session *model.Session, mode model.SortMode) error {
	session.Step = model.StepDestination
	session.SortMode = mode
	if err := s.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("запуск диалога чата %d: %w", session.ChatID, err)
	}
	return nil
}

// HandleInput обрабатывает текст пользователя на текущем шаге диалога.
// При некорректном вводе состояние не меняется. Шаг выбора города не
// записывает поля сам — выбор подтверждается кнопкой через
// SelectDestination.
func (s *WizardService) HandleInput(ctx context.Context, session *model.Session, text string) (WizardEvent, error) {
	if !ValidateInput(session.Step, text) {
		return EventInvalid, nil
	}
	text = strings.TrimSpace(text)

	switch session.Step {
	case model.StepDestination:
		return EventSearchLocations, nil

	case model.StepPriceRange:
		bounds := strings.Fields(text)
		low, _ := strconv.Atoi(bounds[0])
		high, _ := strconv.Atoi(bounds[1])
		if low > high {
			low, high = high, low
		}
		session.MinPrice = low
		session.MaxPrice = high
		session.Step = session.NextStep()

	case model.StepDistance:
		distance, _ := strconv.ParseFloat(text, 64)
		session.MaxDistance = distance
		session.Step = session.NextStep()

	case model.StepResultLimit:
		limit, _ := strconv.Atoi(text)
		session.ResultLimit = limit
		session.Step = model.StepIdle

	default:
		return EventInvalid, nil
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return EventInvalid, fmt.Errorf("сохранение шага чата %d: %w", session.ChatID, err)
	}
	if session.Step == model.StepIdle {
		return EventComplete, nil
	}
	return EventAskNext, nil
}

// SelectDestination записывает выбранное направление и продвигает диалог:
// в режиме bestdeal — к диапазону цен, иначе сразу к количеству отелей.
func (s *WizardService) SelectDestination(ctx context.Context, session *model.Session, destinationID, name string) error {
	session.DestinationID = destinationID
	session.DestinationName = name
	session.Step = session.NextStep()
	if err := s.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("выбор направления чата %d: %w", session.ChatID, err)
	}
	return nil
}

// Cancel прерывает диалог. Сбрасывается только шаг: уже записанные поля
// остаются и будут перезаписаны следующим запуском диалога.
func (s *WizardService) Cancel(ctx context.Context, chatID int64) error {
	if err := s.sessions.SetStep(ctx, chatID, model.StepIdle); err != nil {
		return fmt.Errorf("отмена диалога чата %d: %w", chatID, err)
	}
	return nil
}
