package service

import (
	"context"
	"time"

	"github.com/RadikAgl/Bot-hoteline/internal/model"
	"github.com/RadikAgl/Bot-hoteline/internal/repository"

	"github.com/google/uuid"
)

// HistoryService ведет историю выполненных поисков. Репозиторий может
// отсутствовать (бот запущен без Postgres) — тогда история отключена.
type HistoryService struct {
	historyRepo *repository.HistoryRepository
}

// NewHistoryService создает новый сервис истории поисков.
func NewHistoryService(historyRepo *repository.HistoryRepository) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

// Enabled сообщает, ведется ли история.
func (s *HistoryService) Enabled() bool {
	return s.historyRepo != nil
}

// RecordSearch сохраняет запись об успешном поиске.
func (s *HistoryService) RecordSearch(ctx context.Context, session *model.Session, resultCount int) error {
	if s.historyRepo == nil {
		return nil
	}
	return s.historyRepo.Save(ctx, &model.SearchHistory{
		ID:              uuid.NewString(),
		ChatID:          session.ChatID,
		SortMode:        string(session.SortMode),
		DestinationName: session.DestinationName,
		ResultCount:     resultCount,
		CreatedAt:       time.Now().UTC(),
	})
}

// ListByChat возвращает последние поиски чата.
func (s *HistoryService) ListByChat(ctx context.Context, chatID int64, limit int) ([]model.SearchHistory, error) {
	if s.historyRepo == nil {
		return nil, nil
	}
	return s.historyRepo.ListByChat(ctx, chatID, limit)
}
