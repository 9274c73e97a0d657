package service

import "errors"

// Ошибки конвейера поиска. Любая операция, запущенная сообщением
// пользователя, завершается либо успехом, либо одной из них.
var (
	// ErrBadRequest — внешний API недоступен или вернул некорректный
	// ответ на первой же странице. Поиск прерван, сессия жива.
	ErrBadRequest = errors.New("не удалось получить ответ от сервера")

	// ErrNoHotelsFound — после нормализации и фильтрации не осталось
	// ни одного отеля.
	ErrNoHotelsFound = errors.New("отели не найдены")

	// ErrNoLocationsFound — по введенному названию города ничего
	// не найдено.
	ErrNoLocationsFound = errors.New("направления не найдены")
)
