package common

import (
	"errors"
	"strings"
)

var ErrNoMessage = errors.New("no message in callback")

// IsMessageNotModifiedError - Telegram отказал в редактировании, потому что текст не изменился
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
