package dialog

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
)

// Ошибки ввода. Автомат остаётся в том же шаге и просит повторить.
var (
	ErrInvalidDate  = errors.New("date must look like 05.10.2025")
	ErrInvalidTime  = errors.New("time must look like 10:30")
	ErrTimeInPast   = errors.New("time is in the past")
	ErrEmptyInput   = errors.New("input is empty")
	ErrInvalidPhone = errors.New("phone must contain at least 6 digits")
)

const minPhoneDigits = 6

// noNotes - ответ "комментариев нет"
const noNotes = "-"

func parseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(model.DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

func parseClock(s string) (string, error) {
	t, err := time.Parse(model.TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidTime
	}
	// "9:05" приводится к "09:05"
	return t.Format(model.TimeLayout), nil
}

func requireText(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyInput
	}
	return s, nil
}

func parsePhone(s string) (string, error) {
	s = strings.TrimSpace(s)
	digits := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < minPhoneDigits {
		return "", ErrInvalidPhone
	}
	return s, nil
}

func parseNotes(s string) string {
	s = strings.TrimSpace(s)
	if s == noNotes {
		return ""
	}
	return s
}
