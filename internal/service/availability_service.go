package service

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/availability"
	"github.com/Freeeeeet/makeup_room_bot/internal/calendar"
	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"go.uber.org/zap"
)

const (
	// NearestDaysLimit - сколько свободных дней предлагать
	NearestDaysLimit = 7
	// NearestDaysHorizon - на сколько дней вперёд искать
	NearestDaysHorizon = 30
	// NearestDaysTimeout - общий лимит на обращения к календарю при поиске дней
	NearestDaysTimeout = 8 * time.Second
)

// AvailabilityService считает свободные слоты по занятости календаря
type AvailabilityService struct {
	oracle calendar.Oracle
	hours  availability.Hours
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewAvailabilityService(oracle calendar.Oracle, hours availability.Hours, loc *time.Location, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		oracle: oracle,
		hours:  hours,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// Busy возвращает занятость дня, расширенную на перерыв и склеенную.
// Если календарь не ответил, день считается свободным.
func (s *AvailabilityService) Busy(ctx context.Context, day time.Time) []model.BusyInterval {
	busy, err := s.listBusy(ctx, day)
	if err != nil {
		s.logListError(day, err)
		return nil
	}
	return busy
}

func (s *AvailabilityService) listBusy(ctx context.Context, day time.Time) ([]model.BusyInterval, error) {
	raw, err := s.oracle.ListBusy(ctx, day)
	if err != nil {
		return nil, err
	}
	return availability.Merge(availability.Pad(raw, s.hours.Buffer)), nil
}

func (s *AvailabilityService) logListError(day time.Time, err error) {
	if errors.Is(err, calendar.ErrNotConfigured) {
		s.logger.Debug("Calendar is not configured, day treated as free")
		return
	}
	s.logger.Warn("Failed to list busy intervals, day treated as free",
		zap.Time("day", day),
		zap.Error(err),
	)
}

// FreeSlots возвращает моменты начала визита длительностью minutes в день day
func (s *AvailabilityService) FreeSlots(ctx context.Context, day time.Time, minutes int) []time.Time {
	day = s.Day(day)
	busy := s.Busy(ctx, day)
	return availability.FreeSlots(day, time.Duration(minutes)*time.Minute, busy, s.now().In(s.loc), s.hours)
}

// NearestFreeDays ищет дни после anchor, где есть хотя бы один слот
func (s *AvailabilityService) NearestFreeDays(ctx context.Context, anchor time.Time, minutes int) []model.FreeDay {
	anchor = s.Day(anchor)
	duration := time.Duration(minutes) * time.Minute
	now := s.now().In(s.loc)

	ctx, cancel := context.WithTimeout(ctx, NearestDaysTimeout)
	defer cancel()

	// после первой ошибки календарь больше не спрашиваем, остальные дни считаются свободными
	calendarDown := false

	var days []model.FreeDay
	for i := 1; i <= NearestDaysHorizon && len(days) < NearestDaysLimit; i++ {
		day := anchor.AddDate(0, 0, i)

		var busy []model.BusyInterval
		if !calendarDown {
			var err error
			busy, err = s.listBusy(ctx, day)
			if err != nil {
				s.logListError(day, err)
				calendarDown = true
			}
		}

		if slots := availability.FreeSlots(day, duration, busy, now, s.hours); len(slots) > 0 {
			days = append(days, model.FreeDay{Date: day, Slots: len(slots)})
		}
	}

	return days
}

// Day приводит момент к полуночи того же дня в часовом поясе студии
func (s *AvailabilityService) Day(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

func (s *AvailabilityService) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *AvailabilityService) Location() *time.Location {
	return s.loc
}
