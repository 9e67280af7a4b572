package handlers

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/makeup_room_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/makeup_room_bot/internal/dialog"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start: сбрасывает диалог и показывает меню
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	h.sessions.ClearState(update.Message.From.ID)

	text, kb := h.screens.BuildStartScreen()
	h.send(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleBook обрабатывает команду /book
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.command(ctx, b, update, dialog.StartBooking{})
}

// HandleReview обрабатывает команду /review
func (h *Handlers) HandleReview(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.command(ctx, b, update, dialog.StartReview{})
}

// HandleReviews обрабатывает команду /reviews
func (h *Handlers) HandleReviews(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.command(ctx, b, update, dialog.ShowReviews{})
}

// HandleCancel обрабатывает команду /cancel
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.command(ctx, b, update, dialog.Cancel{})
}

// HandleMyID отвечает идентификатором пользователя, нужен для ADMIN_CHAT_ID
func (h *Handlers) HandleMyID(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.sendText(ctx, b, update.Message.Chat.ID, fmt.Sprintf("Ваш chat_id: %d", update.Message.From.ID))
}

// HandleHereID отвечает идентификатором текущего чата (для групп)
func (h *Handlers) HandleHereID(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendText(ctx, b, update.Message.Chat.ID, fmt.Sprintf("ID этого чата: %d", update.Message.Chat.ID))
}

// HandleAdminTest отправляет тестовое уведомление администратору
func (h *Handlers) HandleAdminTest(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.operator.Notify(ctx, "🔔 Тестовое уведомление администратору.")
	h.sendText(ctx, b, update.Message.Chat.ID, "Тестовое уведомление отправлено (смотрите логи, если не пришло).")
}

// HandleStats показывает администратору выручку и загрузку по месяцам
func (h *Handlers) HandleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	stats, err := h.stats.MonthlyStats(ctx)
	if err != nil {
		h.logger.Error("Failed to load monthly stats", zap.Error(err))
		h.sendText(ctx, b, update.Message.Chat.ID, common.ErrorText)
		return
	}

	h.sendText(ctx, b, update.Message.Chat.ID, common.BuildStatsScreen(stats, h.currency))
}

func (h *Handlers) command(ctx context.Context, b *bot.Bot, update *models.Update, action dialog.Action) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.dispatch(ctx, b, update.Message, action)
}
