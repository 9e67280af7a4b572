package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/makeup_room_bot/internal/dialog"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleTextMessage передаёт свободный текст в текущий шаг диалога.
// Используется как обработчик по умолчанию, поэтому сюда попадают и прочие апдейты.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Text == "" {
		return
	}

	if strings.HasPrefix(msg.Text, "/") {
		h.sendText(ctx, b, msg.Chat.ID, "Не знаю такой команды. Нажми /start, чтобы открыть меню.")
		return
	}

	h.dispatch(ctx, b, msg, dialog.Text{Text: msg.Text})
}
