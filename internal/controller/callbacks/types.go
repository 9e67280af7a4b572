package callbacks

import (
	"context"
	"time"

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

// Handler обрабатывает нажатия inline кнопок
type Handler struct {
	machine  Machine
	sessions *state.Manager
	screens  *common.Screens
	loc      *time.Location
	logger   *zap.Logger
}

func NewHandler(
	machine Machine,
	sessions *state.Manager,
	screens *common.Screens,
	loc *time.Location,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		machine:  machine,
		sessions: sessions,
		screens:  screens,
		loc:      loc,
		logger:   logger,
	}
}
