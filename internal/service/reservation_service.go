package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/availability"
	"github.com/Freeeeeet/makeup_room_bot/internal/calendar"
	"github.com/Freeeeeet/makeup_room_bot/internal/catalog"
	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"go.uber.org/zap"
)

// ReservationService создаёт событие в календаре с проверкой пересечений в момент подтверждения
type ReservationService struct {
	oracle       calendar.Oracle
	availability *AvailabilityService
	brand        catalog.Brand
	reminders    []time.Duration
	recorder     Recorder
	logger       *zap.Logger
}

func NewReservationService(
	oracle calendar.Oracle,
	availability *AvailabilityService,
	brand catalog.Brand,
	reminders []time.Duration,
	recorder Recorder,
	logger *zap.Logger,
) *ReservationService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &ReservationService{
		oracle:       oracle,
		availability: availability,
		brand:        brand,
		reminders:    reminders,
		recorder:     recorder,
		logger:       logger,
	}
}

// Reserve пытается занять время из заявки.
//
// Без AllowOverlap пересечение с занятостью даёт Conflict и событие не создаётся.
// С AllowOverlap событие создаётся всегда, пересечение отмечается флагом.
// Если календарь не принял событие, возвращается Unavailable.
func (s *ReservationService) Reserve(ctx context.Context, draft model.BookingDraft, requester model.Requester) (model.ReservationResult, error) {
	start, err := draft.Start(s.availability.Location())
	if err != nil {
		return model.ReservationResult{}, fmt.Errorf("reserve: %w", err)
	}
	end := start.Add(time.Duration(draft.Service.Minutes()) * time.Minute)

	busy := s.availability.Busy(ctx, start)
	hit, overlapped := availability.FirstOverlap(busy, start, end)

	if overlapped && !draft.AllowOverlap {
		s.logger.Info("Reservation conflict",
			zap.Int64("telegram_id", requester.TelegramID),
			zap.Time("start", start),
			zap.Time("busy_start", hit.Start),
			zap.Time("busy_end", hit.End),
		)
		s.recorder.Reservation(model.ReservationConflict)
		return model.Conflict(hit), nil
	}

	ref, err := s.oracle.InsertEvent(ctx, calendar.Event{
		Summary:     fmt.Sprintf("%s — %s", draft.Service.Name, draft.Name),
		Description: eventDescription(draft, requester),
		Location:    s.brand.Location(),
		Start:       start,
		End:         end,
		Reminders:   s.reminders,
	})
	if err != nil {
		s.logger.Warn("Calendar event not created, booking accepted without sync",
			zap.Int64("telegram_id", requester.TelegramID),
			zap.Time("start", start),
			zap.Error(err),
		)
		s.recorder.Reservation(model.ReservationUnavailable)
		return model.Unavailable(), nil
	}

	s.logger.Info("Calendar event created",
		zap.Int64("telegram_id", requester.TelegramID),
		zap.String("event_id", ref.ID),
		zap.Time("start", start),
		zap.Bool("overlapped", overlapped),
	)
	s.recorder.Reservation(model.ReservationCreated)
	return model.Created(ref.ID, ref.Link, overlapped), nil
}

func eventDescription(draft model.BookingDraft, requester model.Requester) string {
	notes := draft.Notes
	if notes == "" {
		notes = "—"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Услуга: %s\n", draft.Service.Name)
	fmt.Fprintf(&sb, "Имя: %s\n", draft.Name)
	fmt.Fprintf(&sb, "Телефон: %s\n", draft.Phone)
	fmt.Fprintf(&sb, "Комментарий: %s\n", notes)
	fmt.Fprintf(&sb, "От бота Telegram (%s)", requester.Handle())
	return sb.String()
}
