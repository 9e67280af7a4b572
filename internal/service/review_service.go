package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/Freeeeeet/makeup_room_bot/internal/notify"
	"go.uber.org/zap"
)

// ReviewsPageSize - сколько отзывов показывать за раз
const ReviewsPageSize = 10

type ReviewService struct {
	store    ReviewStore
	notifier Notifier
	recorder Recorder
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewReviewService(store ReviewStore, notifier Notifier, recorder Recorder, loc *time.Location, logger *zap.Logger) *ReviewService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &ReviewService{
		store:    store,
		notifier: notifier,
		recorder: recorder,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
	}
}

// Add сохраняет отзыв и сообщает о нём оператору
func (s *ReviewService) Add(ctx context.Context, name, text string, author model.Requester) (model.Review, error) {
	now := s.now().In(s.loc)
	review := model.Review{
		Name:         name,
		Text:         text,
		Date:         time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc),
		AuthorID:     author.TelegramID,
		AuthorHandle: author.Handle(),
	}

	if err := s.store.Create(ctx, &review); err != nil {
		return model.Review{}, fmt.Errorf("add review: %w", err)
	}

	s.recorder.Review()
	s.notifier.Notify(ctx, notify.ReviewText(review))

	s.logger.Info("Review saved",
		zap.Int64("review_id", review.ID),
		zap.Int64("telegram_id", author.TelegramID),
	)
	return review, nil
}

// Recent возвращает последние отзывы (новые первыми) и общее их число
func (s *ReviewService) Recent(ctx context.Context, limit int) ([]model.Review, int, error) {
	reviews, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("recent reviews: %w", err)
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	return reviews, total, nil
}
