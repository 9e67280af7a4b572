// Package notify доставляет служебные сообщения оператору (администраторам бота).
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/retry"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Sender - часть Telegram клиента, нужная для отправки сообщений
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

var _ Sender = (*bot.Bot)(nil)

// Notifier рассылает текст всем администраторам.
// Ошибки доставки только логируются.
type Notifier struct {
	sender  Sender
	admins  []int64
	limiter *rate.Limiter
	policy  retry.Policy
	logger  *zap.Logger
}

func New(sender Sender, admins []int64, policy retry.Policy, logger *zap.Logger) *Notifier {
	return &Notifier{
		sender:  sender,
		admins:  admins,
		limiter: rate.NewLimiter(rate.Every(50*time.Millisecond), 5),
		policy:  policy,
		logger:  logger,
	}
}

// Notify отправляет text каждому администратору
func (n *Notifier) Notify(ctx context.Context, text string) {
	if len(n.admins) == 0 {
		n.logger.Info("No admin chats configured, operator notice skipped", zap.String("text", text))
		return
	}

	for _, chatID := range n.admins {
		if err := n.limiter.Wait(ctx); err != nil {
			n.logger.Warn("Operator notice cancelled", zap.Int64("chat_id", chatID), zap.Error(err))
			return
		}

		err := retry.Do(ctx, n.policy, IsTransient, func(ctx context.Context) error {
			_, err := n.sender.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   text,
			})
			return err
		})
		if err != nil {
			n.logger.Error("Failed to notify operator",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
	}
}

// IsAdmin проверяет, входит ли пользователь в список администраторов
func (n *Notifier) IsAdmin(telegramID int64) bool {
	for _, id := range n.admins {
		if id == telegramID {
			return true
		}
	}
	return false
}

// IsTransient - сбои Telegram API, которые стоит повторить.
// Ошибки запроса и доступа постоянны.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	for _, permanent := range []error{
		bot.ErrorBadRequest,
		bot.ErrorForbidden,
		bot.ErrorUnauthorized,
		bot.ErrorNotFound,
	} {
		if errors.Is(err, permanent) {
			return false
		}
	}
	return true
}
