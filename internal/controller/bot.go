package controller

import (
	"context"

	"github.com/Freeeeeet/makeup_room_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/makeup_room_bot/internal/controller/handlers"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

// NewBotController связывает бота с обработчиками. Текст вне команд бот
// должен передавать в handlers.HandleTextMessage через bot.WithDefaultHandler.
func NewBotController(
	botInstance *bot.Bot,
	cmdHandlers *handlers.Handlers,
	callbackHandler *callbacks.Handler,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	commands := map[string]bot.HandlerFunc{
		"/start":      c.handlers.HandleStart,
		"/book":       c.handlers.HandleBook,
		"/review":     c.handlers.HandleReview,
		"/reviews":    c.handlers.HandleReviews,
		"/cancel":     c.handlers.HandleCancel,
		"/myid":       c.handlers.HandleMyID,
		"/hereid":     c.handlers.HandleHereID,
		"/admin_test": c.handlers.HandleAdminTest,
		"/stats":      c.handlers.HandleStats,
	}
	for pattern, handler := range commands {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, pattern, bot.MatchTypeExact, handler)
	}

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🏠 Главное меню"},
		{Command: "book", Description: "📝 Записаться"},
		{Command: "reviews", Description: "⭐ Отзывы"},
		{Command: "review", Description: "✍️ Оставить отзыв"},
		{Command: "cancel", Description: "❌ Отменить запись"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает long polling и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
