package handlers

import (
	"context"

	"github.com/Freeeeeet/makeup_room_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/makeup_room_bot/internal/controller/state"
	"github.com/Freeeeeet/makeup_room_bot/internal/dialog"
	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"go.uber.org/zap"
)

// Machine - автомат диалога записи
type Machine interface {
	Handle(ctx context.Context, sess *dialog.Session, who model.Requester, a dialog.Action) dialog.Reply
}

// Operator - уведомления администратору
type Operator interface {
	Notify(ctx context.Context, text string)
	IsAdmin(telegramID int64) bool
}

// Stats - сводка по записям для /stats
type Stats interface {
	MonthlyStats(ctx context.Context) ([]model.MonthStats, error)
}

// Handlers содержит все зависимости для обработки команд и текста
type Handlers struct {
	machine  Machine
	sessions *state.Manager
	screens  *common.Screens
	operator Operator
	stats    Stats
	currency string
	logger   *zap.Logger
}

func NewHandlers(
	machine Machine,
	sessions *state.Manager,
	screens *common.Screens,
	operator Operator,
	stats Stats,
	currency string,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		machine:  machine,
		sessions: sessions,
		screens:  screens,
		operator: operator,
		stats:    stats,
		currency: currency,
		logger:   logger,
	}
}
