package repository

import (
	"context"
	"fmt"

	"github.com/RadikAgl/Bot-hoteline/internal/model"

	"github.com/jmoiron/sqlx"
)

// HistoryRepository обеспечивает доступ к истории поисков в базе данных.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository создает новый репозиторий истории поисков.
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Save сохраняет запись о выполненном поиске.
func (r *HistoryRepository) Save(ctx context.Context, h *model.SearchHistory) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO search_history (id, chat_id, sort_mode, destination_name, result_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		h.ID, h.ChatID, h.SortMode, h.DestinationName, h.ResultCount, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении истории поиска: %w", err)
	}
	return nil
}

// ListByChat возвращает последние поиски чата, новые первыми.
func (r *HistoryRepository) ListByChat(ctx context.Context, chatID int64, limit int) ([]model.SearchHistory, error) {
	history := []model.SearchHistory{}
	err := r.db.SelectContext(ctx, &history,
		`SELECT * FROM search_history WHERE chat_id=$1 ORDER BY created_at DESC LIMIT $2`,
		chatID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении истории поисков: %w", err)
	}
	return history, nil
}
