package model

import "time"

// SearchHistory — запись о выполненном поиске отелей (для команды /history
// и REST API).
type SearchHistory struct {
	ID              string    `db:"id"`
	ChatID          int64     `db:"chat_id"`
	SortMode        string    `db:"sort_mode"`
	DestinationName string    `db:"destination_name"`
	ResultCount     int       `db:"result_count"`
	CreatedAt       time.Time `db:"created_at"`
}
