package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Форматы даты и времени, в которых пользователь видит и вводит запись
const (
	DateLayout = "02.01.2006"
	TimeLayout = "15:04"
	ISODate    = "2006-01-02"
	MonthKey   = "2006-01"
)

// BookingDraft - заявка, которую пользователь собирает по шагам диалога
type BookingDraft struct {
	Service      Service   `json:"service"`
	Date         time.Time `json:"date"` // полночь выбранного дня в часовом поясе студии
	Time         string    `json:"time"` // "15:04"
	AllowOverlap bool      `json:"allow_overlap"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Notes        string    `json:"notes"`
}

// Start объединяет дату и время заявки в момент начала визита
func (d BookingDraft) Start(loc *time.Location) (time.Time, error) {
	clock, err := time.Parse(TimeLayout, d.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", d.Time, err)
	}
	return time.Date(d.Date.Year(), d.Date.Month(), d.Date.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

// BookingRecord - завершённая запись, сохраняемая локально и в таблицу
type BookingRecord struct {
	ID              uuid.UUID `json:"id"`
	RequesterID     int64     `json:"requester_id"`
	RequesterHandle string    `json:"requester_handle"`
	ClientName      string    `json:"client_name"`
	Phone           string    `json:"phone"`
	ServiceName     string    `json:"service_name"`
	Price           float64   `json:"price"`
	Currency        string    `json:"currency"`
	VisitDate       time.Time `json:"visit_date"`
	VisitTime       string    `json:"visit_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes"`
	EventID         string    `json:"event_id"`
	EventLink       string    `json:"event_link"`
	Overlapped      bool      `json:"overlapped"`
	CalendarSynced  bool      `json:"calendar_synced"`
	CreatedAt       time.Time `json:"created_at"`
}

// MonthStats - сводка выручки и минут за месяц
type MonthStats struct {
	Month    string  `json:"month"` // "2006-01"
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
	Minutes  int     `json:"minutes"`
}

// Submission - итог отправки заявки
type Submission struct {
	Result ReservationResult
	Record *BookingRecord // nil при конфликте
}
