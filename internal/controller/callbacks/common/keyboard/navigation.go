package keyboard

import (
	"github.com/Freeeeeet/makeup_room_bot/internal/dialog"
	"github.com/go-telegram/bot/models"
)

// ActionButton создаёт кнопку для действия диалога
func ActionButton(text string, a dialog.Action) models.InlineKeyboardButton {
	return Button(text, dialog.Encode(a))
}

// Inert - кнопка без действия (заголовки, прошедшие дни)
func Inert(text string) models.InlineKeyboardButton {
	return ActionButton(text, dialog.Noop{})
}

// MenuButton возвращает в главное меню
func MenuButton() models.InlineKeyboardButton {
	return ActionButton("◀️ В меню", dialog.BackToMenu{})
}

// CancelButton отменяет текущий диалог
func CancelButton() models.InlineKeyboardButton {
	return ActionButton("❌ Отменить", dialog.Cancel{})
}
