package model

// Location — вариант направления поиска, предложенный внешним API
// по введенному названию города.
type Location struct {
	DestinationID string
	Name          string
}
