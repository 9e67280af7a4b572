package common

import (
	"context"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlerContext содержит общие данные для обработки callback
type HandlerContext struct {
	Ctx       context.Context
	Bot       *bot.Bot
	Callback  *models.CallbackQuery
	Message   *models.Message
	Requester model.Requester
	ChatID    int64
}

func NewHandlerContext(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:       ctx,
		Bot:       b,
		Callback:  callback,
		Message:   msg,
		Requester: RequesterOf(&callback.From),
		ChatID:    chatID,
	}
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение с кнопками
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}
	return Edit(hc.Ctx, hc.Bot, hc.ChatID, hc.Message.ID, text, keyboard)
}

// SendMessage отправляет новое сообщение в тот же чат
func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}
	return Send(hc.Ctx, hc.Bot, hc.ChatID, text, keyboard)
}
