package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithMessage создаёт HandlerContext и проверяет, что исходное сообщение ещё доступно.
// Иначе отвечает пользователю и handler не вызывается.
func WithMessage(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	logger *zap.Logger,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback)

	if hc.Message == nil {
		logger.Warn("Callback message is inaccessible",
			zap.Int64("telegram_id", hc.Requester.TelegramID),
			zap.String("data", callback.Data))
		hc.AnswerAlert("Это сообщение устарело. Нажми /start, чтобы начать заново.")
		return
	}

	handler(hc)
}
