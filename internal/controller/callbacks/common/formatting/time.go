package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
)

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// WeekdayHeader - дни недели с понедельника
var WeekdayHeader = [...]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// MonthName возвращает название месяца в именительном падеже
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return "?"
	}
	return monthNames[m-1]
}

// MonthTitle - заголовок календаря: "Октябрь 2025"
func MonthTitle(t time.Time) string {
	return fmt.Sprintf("%s %d", MonthName(t.Month()), t.Year())
}

// FormatDate форматирует дату как 05.10.2025
func FormatDate(t time.Time) string {
	return t.Format(model.DateLayout)
}

// FormatDayMonth форматирует дату как 05.10
func FormatDayMonth(t time.Time) string {
	return t.Format("02.01")
}

// FormatTime форматирует только время
func FormatTime(t time.Time) string {
	return t.Format(model.TimeLayout)
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// MondayIndex - номер дня недели, где понедельник 0
func MondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
