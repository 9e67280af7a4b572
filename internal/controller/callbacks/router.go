package callbacks

import (
	"context"

	"github.com/Freeeeeet/makeup_room_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/makeup_room_bot/internal/dialog"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleCallbackQuery разбирает callback data в действие, прогоняет его через автомат
// и заменяет сообщение с кнопками новым экраном
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	h.logger.Info("Routing callback",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID))

	action, err := dialog.ParseCallback(callback.Data, h.loc)
	if err != nil {
		// кнопки старых версий бота и мусор отвечаем молча
		h.logger.Warn("Unknown callback", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	common.WithMessage(ctx, b, callback, h.logger, func(hc *common.HandlerContext) {
		h.route(hc, action)
	})
}

func (h *Handler) route(hc *common.HandlerContext, action dialog.Action) {
	var reply dialog.Reply
	h.sessions.With(hc.Requester.TelegramID, func(sess *dialog.Session) {
		reply = h.machine.Handle(hc.Ctx, sess, hc.Requester, action)
	})

	switch reply.Screen {
	case dialog.ScreenNone:
		hc.Answer("")
		return
	case dialog.ScreenError:
		// сообщение с кнопками остаётся, можно нажать ещё раз
		hc.AnswerAlert(common.ErrorText)
		return
	}

	hc.Answer("")

	text, kb := h.screens.Render(reply)
	if err := hc.EditMessage(text, kb); err != nil {
		h.logger.Warn("Failed to edit message, sending new one",
			zap.Int64("chat_id", hc.ChatID),
			zap.Error(err))

		if err := hc.SendMessage(text, kb); err != nil {
			h.logger.Error("Failed to send message",
				zap.Int64("chat_id", hc.ChatID),
				zap.Error(err))
		}
	}
}
