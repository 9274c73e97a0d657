package repository

import (
	"context"
	"sync"

	"github.com/RadikAgl/Bot-hoteline/internal/model"
)

// MemorySessionRepository хранит сессии в памяти процесса. Используется
// в тестах и при запуске без Redis; состояние теряется при перезапуске.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[int64]model.Session
}

// NewMemorySessionRepository создает репозиторий сессий в памяти.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[int64]model.Session)}
}

// Get возвращает копию сессии чата.
func (r *MemorySessionRepository) Get(ctx context.Context, chatID int64) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session := r.sessions[chatID]
	session.ChatID = chatID
	return &session, nil
}

// Exists сообщает, регистрировался ли чат.
func (r *MemorySessionRepository) Exists(ctx context.Context, chatID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[chatID]
	return ok && session.Language != "", nil
}

// Save записывает все поля сессии.
func (r *MemorySessionRepository) Save(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ChatID] = *session
	return nil
}

// SetStep меняет только шаг диалога.
func (r *MemorySessionRepository) SetStep(ctx context.Context, chatID int64, step model.Step) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session := r.sessions[chatID]
	session.Step = step
	r.sessions[chatID] = session
	return nil
}

// SetLanguage меняет язык и локаль.
func (r *MemorySessionRepository) SetLanguage(ctx context.Context, chatID int64, language, locale string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session := r.sessions[chatID]
	session.Language = language
	session.Locale = locale
	r.sessions[chatID] = session
	return nil
}

// SetCurrency меняет валюту.
func (r *MemorySessionRepository) SetCurrency(ctx context.Context, chatID int64, currency string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session := r.sessions[chatID]
	session.Currency = currency
	r.sessions[chatID] = session
	return nil
}
