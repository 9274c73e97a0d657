package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/RadikAgl/Bot-hoteline/internal/model"

	"github.com/redis/go-redis/v9"
)

// SessionRepository — хранилище состояния диалога по ключу чата.
// Доступ всегда по ключу одного чата, межсессионных блокировок не нужно.
type SessionRepository interface {
	// Get возвращает сессию чата. Для неизвестного чата возвращается
	// пустая сессия с заполненным ChatID.
	Get(ctx context.Context, chatID int64) (*model.Session, error)
	// Exists сообщает, зарегистрирован ли чат (проходил ли онбординг).
	Exists(ctx context.Context, chatID int64) (bool, error)
	// Save записывает все поля сессии.
	Save(ctx context.Context, session *model.Session) error
	// SetStep атомарно меняет только шаг диалога (отмена, сброс).
	SetStep(ctx context.Context, chatID int64, step model.Step) error
	// SetLanguage меняет язык и локаль пользователя.
	SetLanguage(ctx context.Context, chatID int64, language, locale string) error
	// SetCurrency меняет валюту пользователя.
	SetCurrency(ctx context.Context, chatID int64, currency string) error
}

// RedisSessionRepository хранит сессии в Redis: хэш на чат, поле на
// параметр.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository создает репозиторий сессий поверх Redis.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(chatID int64) string {
	return "session:" + strconv.FormatInt(chatID, 10)
}

// Get загружает сессию из Redis-хэша.
func (r *RedisSessionRepository) Get(ctx context.Context, chatID int64) (*model.Session, error) {
	session := &model.Session{ChatID: chatID}
	cmd := r.client.HGetAll(ctx, sessionKey(chatID))
	if err := cmd.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения сессии чата %d: %w", chatID, err)
	}
	if err := cmd.Scan(session); err != nil {
		return nil, fmt.Errorf("ошибка разбора сессии чата %d: %w", chatID, err)
	}
	return session, nil
}

// Exists проверяет по полю language, что чат уже регистрировался.
func (r *RedisSessionRepository) Exists(ctx context.Context, chatID int64) (bool, error) {
	ok, err := r.client.HExists(ctx, sessionKey(chatID), "language").Result()
	if err != nil {
		return false, fmt.Errorf("ошибка проверки сессии чата %d: %w", chatID, err)
	}
	return ok, nil
}

// Save записывает все поля сессии в хэш одной командой.
func (r *RedisSessionRepository) Save(ctx context.Context, session *model.Session) error {
	fields := map[string]any{
		"step":             int(session.Step),
		"sort_mode":        string(session.SortMode),
		"destination_id":   session.DestinationID,
		"destination_name": session.DestinationName,
		"min_price":        session.MinPrice,
		"max_price":        session.MaxPrice,
		"max_distance":     session.MaxDistance,
		"result_limit":     session.ResultLimit,
		"locale":           session.Locale,
		"currency":         session.Currency,
		"language":         session.Language,
	}
	if err := r.client.HSet(ctx, sessionKey(session.ChatID), fields).Err(); err != nil {
		return fmt.Errorf("ошибка сохранения сессии чата %d: %w", session.ChatID, err)
	}
	return nil
}

// SetStep меняет только шаг диалога.
func (r *RedisSessionRepository) SetStep(ctx context.Context, chatID int64, step model.Step) error {
	if err := r.client.HSet(ctx, sessionKey(chatID), "step", int(step)).Err(); err != nil {
		return fmt.Errorf("ошибка смены шага чата %d: %w", chatID, err)
	}
	return nil
}

// SetLanguage меняет язык и локаль.
func (r *RedisSessionRepository) SetLanguage(ctx context.Context, chatID int64, language, locale string) error {
	err := r.client.HSet(ctx, sessionKey(chatID), "language", language, "locale", locale).Err()
	if err != nil {
		return fmt.Errorf("ошибка смены языка чата %d: %w", chatID, err)
	}
	return nil
}

// SetCurrency меняет валюту.
func (r *RedisSessionRepository) SetCurrency(ctx context.Context, chatID int64, currency string) error {
	if err := r.client.HSet(ctx, sessionKey(chatID), "currency", currency).Err(); err != nil {
		return fmt.Errorf("ошибка смены валюты чата %d: %w", chatID, err)
	}
	return nil
}
