package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/Freeeeeet/makeup_room_bot/internal/notify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService доводит подтверждённую заявку до хранилища, таблицы и оператора
type BookingService struct {
	reservations *ReservationService
	store        BookingStore
	log          BookingLog
	notifier     Notifier
	recorder     Recorder
	now          func() time.Time
	logger       *zap.Logger
}

func NewBookingService(
	reservations *ReservationService,
	store BookingStore,
	log BookingLog,
	notifier Notifier,
	recorder Recorder,
	logger *zap.Logger,
) *BookingService {
	if log == nil {
		log = nopLog{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &BookingService{
		reservations: reservations,
		store:        store,
		log:          log,
		notifier:     notifier,
		recorder:     recorder,
		now:          time.Now,
		logger:       logger,
	}
}

// Submit резервирует время и сохраняет запись.
// При конфликте ничего не сохраняется и Record остаётся nil.
// Сбои хранилища, таблицы и уведомлений не отменяют принятую заявку.
func (s *BookingService) Submit(ctx context.Context, draft model.BookingDraft, requester model.Requester) (model.Submission, error) {
	result, err := s.reservations.Reserve(ctx, draft, requester)
	if err != nil {
		return model.Submission{}, fmt.Errorf("submit booking: %w", err)
	}

	if result.Status == model.ReservationConflict {
		return model.Submission{Result: result}, nil
	}

	rec := s.record(draft, requester, result)

	if err := s.store.Create(ctx, &rec); err != nil {
		s.logger.Error("Failed to store booking",
			zap.String("booking_id", rec.ID.String()),
			zap.Int64("telegram_id", requester.TelegramID),
			zap.Error(err),
		)
		s.notifier.Notify(ctx, notify.StoreFailureText(rec, err))
	}

	if err := s.log.Append(ctx, rec); err != nil {
		s.logger.Warn("Failed to append booking to sheet",
			zap.String("booking_id", rec.ID.String()),
			zap.Error(err),
		)
	}

	s.notifier.Notify(ctx, notify.BookingText(rec))
	s.recorder.Submission()

	s.logger.Info("Booking submitted",
		zap.String("booking_id", rec.ID.String()),
		zap.Int64("telegram_id", requester.TelegramID),
		zap.String("status", string(result.Status)),
		zap.Bool("overlapped", result.Overlapped),
	)

	return model.Submission{Result: result, Record: &rec}, nil
}

// SendDigest отправляет оператору записи на указанный день
func (s *BookingService) SendDigest(ctx context.Context, day time.Time) error {
	records, err := s.store.ListByVisitDate(ctx, day)
	if err != nil {
		return fmt.Errorf("list bookings for digest: %w", err)
	}

	s.notifier.Notify(ctx, notify.DigestText(day, records))
	return nil
}

// MonthlyStats возвращает помесячную сводку из хранилища
func (s *BookingService) MonthlyStats(ctx context.Context) ([]model.MonthStats, error) {
	stats, err := s.store.MonthlyStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("monthly stats: %w", err)
	}
	return stats, nil
}

func (s *BookingService) record(draft model.BookingDraft, requester model.Requester, result model.ReservationResult) model.BookingRecord {
	return model.BookingRecord{
		ID:              uuid.New(),
		RequesterID:     requester.TelegramID,
		RequesterHandle: requester.Handle(),
		ClientName:      draft.Name,
		Phone:           draft.Phone,
		ServiceName:     draft.Service.Name,
		Price:           draft.Service.Price,
		Currency:        draft.Service.Currency,
		VisitDate:       draft.Date,
		VisitTime:       draft.Time,
		DurationMinutes: draft.Service.Minutes(),
		Notes:           draft.Notes,
		EventID:         result.EventID,
		EventLink:       result.Link,
		Overlapped:      result.Overlapped,
		CalendarSynced:  result.Status == model.ReservationCreated,
		CreatedAt:       s.now(),
	}
}
