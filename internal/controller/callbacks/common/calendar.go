package common

import (
	"strconv"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/makeup_room_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/makeup_room_bot/internal/dialog"
	"github.com/go-telegram/bot/models"
)

// BuildMonthCalendar строит сетку месяца month. Дни раньше today неактивны.
func BuildMonthCalendar(month, today time.Time) *models.InlineKeyboardMarkup {
	loc := month.Location()
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)
	days := first.AddDate(0, 1, -1).Day()

	kb := keyboard.NewBuilder()
	kb.Row(keyboard.Inert(formatting.MonthTitle(first)))

	header := make([]models.InlineKeyboardButton, 0, 7)
	for _, name := range formatting.WeekdayHeader {
		header = append(header, keyboard.Inert(name))
	}
	kb.Row(header...)

	week := make([]models.InlineKeyboardButton, 0, 7)
	for i := 0; i < formatting.MondayIndex(first); i++ {
		week = append(week, keyboard.Inert(" "))
	}
	for d := 1; d <= days; d++ {
		week = append(week, dayButton(first.AddDate(0, 0, d-1), today))
		if len(week) == 7 {
			kb.Row(week...)
			week = make([]models.InlineKeyboardButton, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, keyboard.Inert(" "))
		}
		kb.Row(week...)
	}

	// от 15-го числа соседний месяц не перескакивает
	mid := first.AddDate(0, 0, 14)
	kb.Row(
		keyboard.ActionButton("« Пред. месяц", dialog.ShowMonth{Month: mid.AddDate(0, -1, 0)}),
		keyboard.ActionButton("Отмена", dialog.Cancel{}),
		keyboard.ActionButton("След. месяц »", dialog.ShowMonth{Month: mid.AddDate(0, 1, 0)}),
	)

	return kb.Build()
}

func dayButton(day, today time.Time) models.InlineKeyboardButton {
	label := strconv.Itoa(day.Day())
	if day.Before(today) {
		return keyboard.Inert("·" + label + "·")
	}
	return keyboard.ActionButton(label, dialog.PickDay{Date: day})
}
