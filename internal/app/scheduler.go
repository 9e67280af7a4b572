package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DigestSender рассылает оператору записи на день
type DigestSender interface {
	SendDigest(ctx context.Context, day time.Time) error
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	cron   *cron.Cron
	digest DigestSender
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewScheduler регистрирует ежедневную сводку на завтра по расписанию spec (cron, 5 полей)
func NewScheduler(spec string, digest DigestSender, loc *time.Location, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		digest: digest,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}

	if _, err := s.cron.AddFunc(spec, s.sendTomorrowDigest); err != nil {
		return nil, fmt.Errorf("parse digest schedule %q: %w", spec, err)
	}

	return s, nil
}

// Start запускает фоновые задачи
func (s *Scheduler) Start() {
	s.logger.Info("Starting background scheduler")
	s.cron.Start()
}

// Stop останавливает планировщик и ждёт завершения текущей задачи
func (s *Scheduler) Stop(ctx context.Context) {
	s.logger.Info("Stopping background scheduler")
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
	}
}

func (s *Scheduler) sendTomorrowDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := s.now().In(s.loc)
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)

	if err := s.digest.SendDigest(ctx, tomorrow); err != nil {
		s.logger.Error("Failed to send daily digest", zap.Time("day", tomorrow), zap.Error(err))
		return
	}

	s.logger.Info("Daily digest sent", zap.Time("day", tomorrow))
}
