package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DropRecorder считает отброшенные апдейты
type DropRecorder interface {
	DroppedUpdate()
}

// RateLimiter ограничивает число апдейтов от одного пользователя
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	limit    rate.Limit
	burst    int
	dropped  DropRecorder
	logger   *zap.Logger
}

// NewRateLimiter разрешает perMinute апдейтов в минуту с пиком burst
func NewRateLimiter(perMinute, burst int, dropped DropRecorder, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[int64]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		dropped:  dropped,
		logger:   logger,
	}
}

// Allow сообщает, можно ли обработать ещё один апдейт пользователя
func (rl *RateLimiter) Allow(telegramID int64) bool {
	rl.mu.Lock()
	l, ok := rl.limiters[telegramID]
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[telegramID] = l
	}
	rl.mu.Unlock()

	return l.Allow()
}

// Middleware отбрасывает апдейты сверх лимита
func (rl *RateLimiter) Middleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		id, ok := senderID(update)
		if ok && !rl.Allow(id) {
			rl.logger.Warn("Update dropped by rate limit", zap.Int64("telegram_id", id))
			if rl.dropped != nil {
				rl.dropped.DroppedUpdate()
			}
			return
		}
		next(ctx, b, update)
	}
}

func senderID(update *models.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, true
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID, true
	}
	return 0, false
}

// requireAdmin проверяет что команду прислал администратор
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	if update.Message == nil || update.Message.From == nil {
		return false
	}

	if !h.operator.IsAdmin(update.Message.From.ID) {
		h.sendText(ctx, b, update.Message.Chat.ID, "❌ Эта команда доступна только администратору.")
		return false
	}

	return true
}
