package model

import "fmt"

// Requester - пользователь Telegram, от имени которого создаётся запись или отзыв
type Requester struct {
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username"`
}

// Handle возвращает "@username" или "id:123", если username не задан
func (r Requester) Handle() string {
	if r.Username != "" {
		return "@" + r.Username
	}
	return fmt.Sprintf("id:%d", r.TelegramID)
}
