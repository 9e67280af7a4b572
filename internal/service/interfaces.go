package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
)

// BookingStore - локальное долговременное хранилище записей
type BookingStore interface {
	Create(ctx context.Context, rec *model.BookingRecord) error
	ListByVisitDate(ctx context.Context, day time.Time) ([]model.BookingRecord, error)
	MonthlyStats(ctx context.Context) ([]model.MonthStats, error)
}

// ReviewStore - журнал отзывов
type ReviewStore interface {
	Create(ctx context.Context, review *model.Review) error
	ListRecent(ctx context.Context, limit int) ([]model.Review, error)
	Count(ctx context.Context) (int, error)
}

// BookingLog - внешний журнал записей (таблица)
type BookingLog interface {
	Append(ctx context.Context, rec model.BookingRecord) error
}

// Notifier доставляет сообщения оператору
type Notifier interface {
	Notify(ctx context.Context, text string)
}

// Recorder - счётчики для метрик
type Recorder interface {
	Reservation(status model.ReservationStatus)
	Submission()
	Review()
}

type nopRecorder struct{}

func (nopRecorder) Reservation(model.ReservationStatus) {}
func (nopRecorder) Submission()                         {}
func (nopRecorder) Review()                             {}

type nopLog struct{}

func (nopLog) Append(context.Context, model.BookingRecord) error { return nil }
