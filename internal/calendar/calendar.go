// Package calendar - доступ к внешнему календарю студии: занятость дня и создание событий.
package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
)

var (
	// ErrUnavailable - календарь не ответил после повторов
	ErrUnavailable = errors.New("calendar is unavailable")
	// ErrNotConfigured - интеграция с календарём не настроена
	ErrNotConfigured = errors.New("calendar is not configured")
)

// Event - событие, которое создаётся при записи клиента
type Event struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Reminders   []time.Duration // за сколько до начала напомнить
}

// EventRef - ссылка на созданное событие
type EventRef struct {
	ID   string
	Link string
}

// Oracle отвечает на два вопроса: что занято в день и можно ли добавить событие.
// ListBusy возвращает события как есть, без перерывов и склейки.
type Oracle interface {
	ListBusy(ctx context.Context, day time.Time) ([]model.BusyInterval, error)
	InsertEvent(ctx context.Context, ev Event) (EventRef, error)
}

// Disabled используется, когда календарь не настроен
type Disabled struct{}

func (Disabled) ListBusy(context.Context, time.Time) ([]model.BusyInterval, error) {
	return nil, ErrNotConfigured
}

func (Disabled) InsertEvent(context.Context, Event) (EventRef, error) {
	return EventRef{}, ErrNotConfigured
}
