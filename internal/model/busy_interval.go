package model

import "time"

// BusyInterval - занятый промежуток календаря [Start, End) в часовом поясе студии
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid проверяет инвариант Start < End
func (iv BusyInterval) Valid() bool {
	return iv.Start.Before(iv.End)
}

// Overlaps сообщает, пересекается ли интервал с [start, end).
// Интервалы, которые только касаются друг друга, не пересекаются.
func (iv BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(iv.End) && end.After(iv.Start)
}

// FreeDay - день с количеством свободных слотов
type FreeDay struct {
	Date  time.Time `json:"date"`
	Slots int       `json:"slots"`
}
