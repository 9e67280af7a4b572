package common

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/catalog"
	"github.com/Freeeeeet/makeup_room_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/makeup_room_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/makeup_room_bot/internal/dialog"
	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// Тексты, которые нужны и вне Render
const (
	MainMenuText = "Главное меню:"
	ErrorText    = "Похоже, временные проблемы со связью. Попробуй ещё раз, пожалуйста."
	ExpiredText  = "Этот шаг записи уже неактуален. Начни, пожалуйста, заново."
)

// Screens собирает текст и клавиатуру для каждого экрана бота
type Screens struct {
	catalog *catalog.Catalog
}

func NewScreens(cat *catalog.Catalog) *Screens {
	return &Screens{catalog: cat}
}

// BuildStartScreen - приветствие для /start
func (s *Screens) BuildStartScreen() (string, *models.InlineKeyboardMarkup) {
	brand := s.catalog.Brand
	text := fmt.Sprintf(
		"Я бот стилиста — <b>%s</b>.\n%s\n\nВыбирай раздел ниже:",
		html.EscapeString(brand.OwnerFullName),
		html.EscapeString(brand.About),
	)
	return text, s.MainMenuKeyboard()
}

// MainMenuKeyboard - главное меню
func (s *Screens) MainMenuKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.ActionButton("💄 Услуги и цены", dialog.ShowServices{})).
		Row(keyboard.ActionButton("📝 Записаться", dialog.StartBooking{})).
		Row(keyboard.ActionButton("⭐ Отзывы", dialog.ShowReviews{})).
		Row(keyboard.ActionButton("📬 Контакты", dialog.ShowContacts{})).
		Row(keyboard.URLButton("✍️ Написать мне", s.catalog.Brand.TelegramURL())).
		Build()
}

// Render переводит ответ автомата в сообщение. Для ScreenNone возвращает пустой текст.
func (s *Screens) Render(r dialog.Reply) (string, *models.InlineKeyboardMarkup) {
	switch r.Screen {
	case dialog.ScreenMainMenu:
		return MainMenuText, s.MainMenuKeyboard()
	case dialog.ScreenCancelled:
		return "Заявка отменена.", s.MainMenuKeyboard()
	case dialog.ScreenServices:
		return s.BuildServicesScreen()
	case dialog.ScreenContacts:
		return s.BuildContactsScreen()
	case dialog.ScreenReviews:
		return BuildReviewsScreen(r.Reviews, r.ReviewsTotal)
	case dialog.ScreenExpired:
		return ExpiredText, s.MainMenuKeyboard()
	case dialog.ScreenError:
		return ErrorText, nil
	case dialog.ScreenInvalidInput:
		return InvalidInputText(r.Err), keyboard.NewBuilder().Row(keyboard.CancelButton()).Build()

	case dialog.ScreenChooseService:
		return "Выберите услугу:", s.serviceKeyboard()
	case dialog.ScreenCalendar:
		return "Выберите дату:", BuildMonthCalendar(r.Month, r.Today)
	case dialog.ScreenTimes:
		return fmt.Sprintf("Дата: %s\nВыберите время:", formatting.FormatDate(r.Date)), BuildTimesKeyboard(r.Date, r.Slots)
	case dialog.ScreenNoSlots:
		text := fmt.Sprintf("На %s свободных слотов нет.\nВыберите ближайшую свободную дату:", formatting.FormatDate(r.Date))
		return text, BuildFreeDaysKeyboard(r.FreeDays, keyboard.ActionButton("← Изменить дату", dialog.ChangeDate{Date: r.Date}))
	case dialog.ScreenNearestDays:
		return "Ближайшие свободные дни:", BuildFreeDaysKeyboard(r.FreeDays, keyboard.ActionButton("← Назад ко времени", dialog.PickDay{Date: r.Date}))
	case dialog.ScreenAskManualTime:
		return "Укажи удобное время в формате ЧЧ:ММ (например, 18:00):", cancelKeyboard()
	case dialog.ScreenAskTimeAfterDate:
		return "Во сколько тебе удобно? (например, 10:30). Допускаются пересечения — я уточню лично.", cancelKeyboard()
	case dialog.ScreenAskName:
		return "Твоё имя и фамилия:", cancelKeyboard()
	case dialog.ScreenAskPhone:
		return "Телефон (для подтверждения):", cancelKeyboard()
	case dialog.ScreenAskNotes:
		return "Пожелания/комментарии (или «-», если нет):", cancelKeyboard()
	case dialog.ScreenConfirm:
		return BuildConfirmScreen(r.Draft)
	case dialog.ScreenSlotTaken:
		return "Упс, это время уже занято. Выберите другое:", BuildTimesKeyboard(r.Date, r.Slots)
	case dialog.ScreenSubmitted:
		return BuildSubmittedText(r.Submission), s.MainMenuKeyboard()

	case dialog.ScreenReviewAskName:
		return "Как тебя зовут? (Имя, можно без фамилии)", cancelKeyboard()
	case dialog.ScreenReviewAskText:
		return "Оставь, пожалуйста, отзыв (пара предложений):", cancelKeyboard()
	case dialog.ScreenReviewSaved:
		return "Спасибо за отзыв! Он очень важен для нас ❤️", s.MainMenuKeyboard()
	}

	return "", nil
}

// BuildServicesScreen - прайс-лист
func (s *Screens) BuildServicesScreen() (string, *models.InlineKeyboardMarkup) {
	lines := []string{"<b>Услуги и цены</b>"}
	for _, svc := range s.catalog.Services {
		lines = append(lines, fmt.Sprintf("• %s — <b>%s</b> (%s)",
			html.EscapeString(svc.Name),
			html.EscapeString(formatting.FormatPrice(svc.Price, svc.Currency)),
			html.EscapeString(svc.Duration),
		))
	}
	lines = append(lines,
		"",
		"Индивидуальный выезд, ранние выезды и срочные бронирования — по договоренности.",
		"Чтобы записаться, нажмите «📝 Записаться».",
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.ActionButton("📝 Записаться", dialog.StartBooking{})).
		Row(keyboard.MenuButton()).
		Build()

	return strings.Join(lines, "\n"), kb
}

// BuildContactsScreen - контакты студии
func (s *Screens) BuildContactsScreen() (string, *models.InlineKeyboardMarkup) {
	brand := s.catalog.Brand

	tg := ""
	if brand.TelegramUsername != "" {
		tg = "@" + brand.TelegramUsername
	}

	lines := []string{
		"<b>Контакты</b>",
		"📞 Телефон: " + html.EscapeString(brand.Phone),
		"📸 Instagram: " + html.EscapeString(brand.Instagram),
		"✈️ Telegram: " + html.EscapeString(tg),
		"💬 WhatsApp: " + html.EscapeString(brand.WhatsApp),
	}
	if brand.Address != "" {
		lines = append(lines, "🗺️ Адрес студии: "+html.EscapeString(brand.Address))
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.URLButton("🗺️ Показать на карте", brand.MapURL())).
		Row(keyboard.MenuButton()).
		Build()

	return strings.Join(lines, "\n"), kb
}

// BuildReviewsScreen - последние отзывы, новые сверху
func BuildReviewsScreen(reviews []model.Review, total int) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().
		Row(keyboard.ActionButton("✍️ Оставить отзыв", dialog.StartReview{})).
		Row(keyboard.MenuButton()).
		Build()

	if len(reviews) == 0 {
		return "Пока отзывов нет. Будем рады, если вы поделитесь впечатлением! Нажмите «✍️ Оставить отзыв».", kb
	}

	lines := []string{"<b>Отзывы клиентов</b>"}
	for _, r := range reviews {
		name := r.Name
		if name == "" {
			name = "Гость"
		}
		lines = append(lines, fmt.Sprintf("— <b>%s</b> (%s): %s",
			html.EscapeString(name),
			formatting.FormatDate(r.Date),
			html.EscapeString(r.Text),
		))
	}
	if total > len(reviews) {
		lines = append(lines, fmt.Sprintf("\nПоказано %d из %d %s.", len(reviews), total, formatting.PluralizeReviews(total)))
	}

	return strings.Join(lines, "\n"), kb
}

// BuildTimesKeyboard - свободное время по три в ряд и переходы
func BuildTimesKeyboard(date time.Time, slots []time.Time) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()

	if len(slots) == 0 {
		kb.Row(keyboard.Inert("Свободных слотов нет"))
	} else {
		buttons := make([]models.InlineKeyboardButton, 0, len(slots))
		for _, slot := range slots {
			clock := formatting.FormatTime(slot)
			buttons = append(buttons, keyboard.ActionButton(clock, dialog.PickTime{Date: date, Clock: clock}))
		}
		kb.Grid(3, buttons...)
	}

	return kb.
		Row(keyboard.ActionButton("🕒 Другое время", dialog.OtherTime{Date: date})).
		Row(keyboard.ActionButton("📅 Ближайшие свободные дни", dialog.NearestDays{Anchor: date})).
		Row(keyboard.ActionButton("← Изменить дату", dialog.ChangeDate{Date: date})).
		Row(keyboard.MenuButton()).
		Build()
}

// BuildFreeDaysKeyboard - ближайшие дни со свободным временем, back - кнопка возврата
func BuildFreeDaysKeyboard(days []model.FreeDay, back models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()

	if len(days) == 0 {
		kb.Row(keyboard.Inert("Свободных дней в ближайший месяц нет"))
	}
	for _, d := range days {
		label := fmt.Sprintf("%s — %d сл.", formatting.FormatDayMonth(d.Date), d.Slots)
		kb.Row(keyboard.ActionButton(label, dialog.PickDay{Date: d.Date}))
	}

	return kb.Row(back).Row(keyboard.MenuButton()).Build()
}

// BuildConfirmScreen - сводка заявки перед отправкой
func BuildConfirmScreen(d model.BookingDraft) (string, *models.InlineKeyboardMarkup) {
	notes := d.Notes
	if notes == "" {
		notes = "-"
	}

	text := fmt.Sprintf(
		"<b>Проверь заявку:</b>\n"+
			"Услуга: %s\n"+
			"Дата: %s\n"+
			"Время: %s\n"+
			"Имя: %s\n"+
			"Телефон: %s\n"+
			"Пожелания: %s",
		html.EscapeString(d.Service.Name),
		formatting.FormatDate(d.Date),
		html.EscapeString(d.Time),
		html.EscapeString(d.Name),
		html.EscapeString(d.Phone),
		html.EscapeString(notes),
	)

	kb := keyboard.NewBuilder().
		Row(
			keyboard.ActionButton("✅ Отправить", dialog.Send{}),
			keyboard.ActionButton("❌ Отменить", dialog.Cancel{}),
		).
		Build()

	return text, kb
}

// BuildSubmittedText - благодарность после отправки
func BuildSubmittedText(sub model.Submission) string {
	text := "Спасибо! Заявка отправлена. Мы свяжемся с тобой для подтверждения."

	switch {
	case sub.Result.Status == model.ReservationUnavailable:
		text += "\n\nℹ️ Внутренний календарь временно недоступен, но мы получили вашу заявку."
	case sub.Result.Overlapped:
		text += "\n\n⚠️ Обрати внимание: на эту дату уже есть запись другого клиента. " +
			"Я свяжусь с тобой, чтобы уточнить время."
	}

	return text
}

// InvalidInputText объясняет, что не так с вводом
func InvalidInputText(err error) string {
	switch {
	case errors.Is(err, dialog.ErrInvalidDate):
		return "Не понял дату. Напиши в формате ДД.ММ.ГГГГ, например 05.10.2025."
	case errors.Is(err, dialog.ErrInvalidTime):
		return "Не понял время. Напиши в формате ЧЧ:ММ, например 18:00."
	case errors.Is(err, dialog.ErrTimeInPast):
		return "Это время уже прошло. Укажи, пожалуйста, другое."
	case errors.Is(err, dialog.ErrEmptyInput):
		return "Напиши, пожалуйста, ответ текстом."
	case errors.Is(err, dialog.ErrInvalidPhone):
		return "Проверь номер телефона: в нём должно быть хотя бы 6 цифр."
	default:
		return "Не получилось разобрать ответ. Попробуй ещё раз."
	}
}

// BuildStatsScreen - сводка по месяцам для оператора
func BuildStatsScreen(stats []model.MonthStats, currency string) string {
	if len(stats) == 0 {
		return "Записей пока нет."
	}

	lines := []string{"<b>Статистика по месяцам</b>"}
	var bookings, minutes int
	var revenue float64
	for _, st := range stats {
		lines = append(lines, fmt.Sprintf("%s: %d %s, %s, %s",
			st.Month,
			st.Bookings, formatting.PluralizeBookings(st.Bookings),
			formatting.FormatPrice(st.Revenue, currency),
			formatting.FormatDuration(st.Minutes),
		))
		bookings += st.Bookings
		revenue += st.Revenue
		minutes += st.Minutes
	}
	lines = append(lines, "", fmt.Sprintf("<b>Итого:</b> %d %s, %s, %s",
		bookings, formatting.PluralizeBookings(bookings),
		formatting.FormatPrice(revenue, currency),
		formatting.FormatDuration(minutes),
	))

	return strings.Join(lines, "\n")
}

func (s *Screens) serviceKeyboard() *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	for i, svc := range s.catalog.Services {
		label := fmt.Sprintf("%s — %s", svc.Name, formatting.FormatPrice(svc.Price, svc.Currency))
		kb.Row(keyboard.ActionButton(label, dialog.PickService{Index: i}))
	}
	return kb.Row(keyboard.MenuButton()).Build()
}

func cancelKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().Row(keyboard.CancelButton()).Build()
}
