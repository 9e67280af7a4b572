package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/Freeeeeet/makeup_room_bot/internal/retry"
	"go.uber.org/zap"
)

// Observer получает длительность и результат каждого обращения к календарю
type Observer interface {
	CalendarRequest(op string, elapsed time.Duration, err error)
}

// Instrumented повторяет запросы при временных сбоях, пишет метрики и логи.
// Ошибка после всех попыток оборачивается в ErrUnavailable.
type Instrumented struct {
	next     Oracle
	policy   retry.Policy
	observer Observer
	logger   *zap.Logger
}

func NewInstrumented(next Oracle, policy retry.Policy, observer Observer, logger *zap.Logger) *Instrumented {
	return &Instrumented{
		next:     next,
		policy:   policy,
		observer: observer,
		logger:   logger,
	}
}

func (c *Instrumented) ListBusy(ctx context.Context, day time.Time) ([]model.BusyInterval, error) {
	var busy []model.BusyInterval
	err := c.call(ctx, "list", func(ctx context.Context) error {
		var err error
		busy, err = c.next.ListBusy(ctx, day)
		return err
	})
	if err != nil {
		return nil, err
	}
	return busy, nil
}

func (c *Instrumented) InsertEvent(ctx context.Context, ev Event) (EventRef, error) {
	var ref EventRef
	err := c.call(ctx, "insert", func(ctx context.Context) error {
		var err error
		ref, err = c.next.InsertEvent(ctx, ev)
		return err
	})
	if err != nil {
		return EventRef{}, err
	}
	return ref, nil
}

func (c *Instrumented) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	started := time.Now()
	err := retry.Do(ctx, c.policy, retry.IsGoogleTransient, fn)
	if c.observer != nil {
		c.observer.CalendarRequest(op, time.Since(started), err)
	}
	if err == nil {
		return nil
	}

	c.logger.Warn("Calendar request failed",
		zap.String("op", op),
		zap.Duration("elapsed", time.Since(started)),
		zap.Error(err),
	)
	return fmt.Errorf("calendar %s: %w: %w", op, ErrUnavailable, err)
}
