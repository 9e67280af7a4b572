package common

import (
	"context"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/Freeeeeet/makeup_room_bot/internal/notify"
	"github.com/Freeeeeet/makeup_room_bot/internal/retry"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
}

// AnswerCallbackAlert отвечает на callback query всплывающим окном
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query.
// Для недоступных (слишком старых) сообщений возвращает nil.
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	return callback.Message.Message
}

// RequesterOf описывает автора апдейта
func RequesterOf(u *models.User) model.Requester {
	if u == nil {
		return model.Requester{}
	}
	return model.Requester{TelegramID: u.ID, Username: u.Username}
}

// Send отправляет сообщение в HTML, повторяя попытку при сетевых сбоях
func Send(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) error {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	return retry.Do(ctx, retry.DefaultPolicy(), notify.IsTransient, func(ctx context.Context) error {
		_, err := b.SendMessage(ctx, params)
		return err
	})
}

// Edit заменяет текст и клавиатуру сообщения. "Не изменено" ошибкой не считается.
func Edit(ctx context.Context, b *bot.Bot, chatID int64, messageID int, text string, kb *models.InlineKeyboardMarkup) error {
	params := &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	err := retry.Do(ctx, retry.DefaultPolicy(), notify.IsTransient, func(ctx context.Context) error {
		_, err := b.EditMessageText(ctx, params)
		return err
	})
	if IsMessageNotModifiedError(err) {
		return nil
	}
	return err
}
