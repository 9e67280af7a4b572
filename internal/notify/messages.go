package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
)

const dash = "—"

// BookingText - уведомление о новой заявке
func BookingText(rec model.BookingRecord) string {
	var sb strings.Builder

	sb.WriteString("🆕 Новая заявка:\n")
	fmt.Fprintf(&sb, "Услуга: %s\n", rec.ServiceName)
	fmt.Fprintf(&sb, "Дата/время: %s %s\n", rec.VisitDate.Format(model.DateLayout), rec.VisitTime)
	fmt.Fprintf(&sb, "Имя: %s\n", rec.ClientName)
	fmt.Fprintf(&sb, "Телефон: %s\n", rec.Phone)
	fmt.Fprintf(&sb, "Комментарий: %s\n", orDash(rec.Notes))
	fmt.Fprintf(&sb, "От: %s", rec.RequesterHandle)

	if rec.EventLink != "" {
		fmt.Fprintf(&sb, "\n📅 В календаре: %s", rec.EventLink)
	}
	if rec.Overlapped {
		sb.WriteString("\n⚠️ Внимание: ВЫБРАНО РУЧНОЕ ВРЕМЯ, ЕСТЬ ПЕРЕСЕЧЕНИЕ с другой записью на эту дату. Свяжусь с клиентом для уточнения.")
	}
	if !rec.CalendarSynced {
		sb.WriteString("\n⚠️ Календарь недоступен, событие не создано. Добавьте запись вручную.")
	}

	return sb.String()
}

// ReviewText - уведомление о новом отзыве
func ReviewText(r model.Review) string {
	return fmt.Sprintf("⭐ Новый отзыв:\nИмя: %s\nТекст: %s\nОт: %s\nДата: %s",
		r.Name, r.Text, r.AuthorHandle, r.Date.Format(model.DateLayout))
}

// StoreFailureText - заявка принята, но не записалась в базу
func StoreFailureText(rec model.BookingRecord, err error) string {
	return fmt.Sprintf("❗ Заявка %s %s (%s) не сохранена в базе: %v",
		rec.VisitDate.Format(model.DateLayout), rec.VisitTime, rec.ClientName, err)
}

// DigestText - список записей на день для ежедневной сводки
func DigestText(day time.Time, records []model.BookingRecord) string {
	header := fmt.Sprintf("📋 Записи на %s", day.Format(model.DateLayout))
	if len(records) == 0 {
		return header + ": нет записей."
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString(":\n")
	for _, rec := range records {
		fmt.Fprintf(&sb, "\n%s — %s (%d мин)\n%s, %s", rec.VisitTime, rec.ServiceName, rec.DurationMinutes, rec.ClientName, rec.Phone)
		if rec.Notes != "" {
			fmt.Fprintf(&sb, "\nКомментарий: %s", rec.Notes)
		}
		if rec.Overlapped {
			sb.WriteString("\n⚠️ пересечение")
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func orDash(s string) string {
	if s == "" {
		return dash
	}
	return s
}
