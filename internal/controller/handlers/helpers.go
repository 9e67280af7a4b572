package handlers

import (
	"context"

	"github.com/Freeeeeet/makeup_room_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/makeup_room_bot/internal/dialog"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// dispatch прогоняет действие через автомат и отвечает новым сообщением
func (h *Handlers) dispatch(ctx context.Context, b *bot.Bot, msg *models.Message, action dialog.Action) {
	who := common.RequesterOf(msg.From)

	var reply dialog.Reply
	h.sessions.With(who.TelegramID, func(sess *dialog.Session) {
		reply = h.machine.Handle(ctx, sess, who, action)
	})

	if reply.Screen == dialog.ScreenNone {
		return
	}

	text, kb := h.screens.Render(reply)
	h.send(ctx, b, msg.Chat.ID, text, kb)
}

// send отправляет сообщение и логирует если не удалось
func (h *Handlers) send(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	if err := common.Send(ctx, b, chatID, text, kb); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendText отправляет сообщение без клавиатуры
func (h *Handlers) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	h.send(ctx, b, chatID, text, nil)
}
