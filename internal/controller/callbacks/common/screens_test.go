package common

import (
	"testing"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/catalog"
	"github.com/Freeeeeet/makeup_room_bot/internal/dialog"
	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var msk = time.FixedZone("MSK", 3*60*60)

func newScreens(t *testing.T) *Screens {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return NewScreens(cat)
}

func callbacks(kb *models.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			out = append(out, b.CallbackData)
		}
	}
	return out
}

func TestMonthCalendarLayout(t *testing.T) {
	month := time.Date(2025, time.October, 1, 0, 0, 0, 0, msk)
	today := time.Date(2025, time.October, 15, 0, 0, 0, 0, msk)

	kb := BuildMonthCalendar(month, today)
	rows := kb.InlineKeyboard

	assert.Equal(t, "Октябрь 2025", rows[0][0].Text)
	assert.Equal(t, "Пн", rows[1][0].Text)
	assert.Equal(t, "Вс", rows[1][6].Text)

	// 1 октября 2025 - среда
	week := rows[2]
	require.Len(t, week, 7)
	assert.Equal(t, " ", week[0].Text)
	assert.Equal(t, "·1·", week[2].Text)
	assert.Equal(t, "cal:noop", week[2].CallbackData)

	data := callbacks(kb)
	assert.Contains(t, data, "cal:day:2025-10-15")
	assert.Contains(t, data, "cal:day:2025-10-31")
	assert.NotContains(t, data, "cal:day:2025-10-14")

	nav := rows[len(rows)-1]
	assert.Equal(t, "cal:show:2025-09", nav[0].CallbackData)
	assert.Equal(t, "book:cancel", nav[1].CallbackData)
	assert.Equal(t, "cal:show:2025-11", nav[2].CallbackData)

	for _, row := range rows[2 : len(rows)-1] {
		assert.Len(t, row, 7)
	}
}

func TestMonthCalendarNavigationNeverSkips(t *testing.T) {
	jan := time.Date(2026, time.January, 1, 0, 0, 0, 0, msk)
	nav := BuildMonthCalendar(jan, jan).InlineKeyboard
	last := nav[len(nav)-1]
	assert.Equal(t, "cal:show:2025-12", last[0].CallbackData)
	assert.Equal(t, "cal:show:2026-02", last[2].CallbackData)
}

func TestTimesKeyboard(t *testing.T) {
	day := time.Date(2025, time.October, 6, 0, 0, 0, 0, msk)
	var slots []time.Time
	for _, h := range []int{9, 10, 11, 12} {
		slots = append(slots, day.Add(time.Duration(h)*time.Hour))
	}

	kb := BuildTimesKeyboard(day, slots)
	rows := kb.InlineKeyboard
	require.Len(t, rows, 6)
	assert.Len(t, rows[0], 3)
	assert.Equal(t, "09:00", rows[0][0].Text)
	assert.Equal(t, "time:2025-10-06:09:00", rows[0][0].CallbackData)
	assert.Equal(t, "time:other:2025-10-06", rows[2][0].CallbackData)
	assert.Equal(t, "free:next:2025-10-06", rows[3][0].CallbackData)
	assert.Equal(t, "cal:change:2025-10-06", rows[4][0].CallbackData)
	assert.Equal(t, "menu:back", rows[5][0].CallbackData)

	empty := BuildTimesKeyboard(day, nil)
	assert.Equal(t, "Свободных слотов нет", empty.InlineKeyboard[0][0].Text)
}

func TestNearestDaysScreen(t *testing.T) {
	s := newScreens(t)
	anchor := time.Date(2025, time.October, 6, 0, 0, 0, 0, msk)
	day := anchor.AddDate(0, 0, 1)

	text, kb := s.Render(dialog.Reply{
		Screen:   dialog.ScreenNearestDays,
		Date:     anchor,
		FreeDays: []model.FreeDay{{Date: day, Slots: 2}},
	})
	assert.Equal(t, "Ближайшие свободные дни:", text)
	assert.Equal(t, "07.10 — 2 сл.", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "cal:day:2025-10-07", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "cal:day:2025-10-06", kb.InlineKeyboard[1][0].CallbackData)

	_, kb = s.Render(dialog.Reply{Screen: dialog.ScreenNoSlots, Date: anchor})
	assert.Equal(t, "Свободных дней в ближайший месяц нет", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "cal:change:2025-10-06", kb.InlineKeyboard[1][0].CallbackData)
}

func TestServicesAndContacts(t *testing.T) {
	s := newScreens(t)

	text, _ := s.BuildServicesScreen()
	assert.Contains(t, text, "<b>Услуги и цены</b>")
	assert.Contains(t, text, "• Макияж дневной — <b>60 €</b> (60–75 мин)")

	text, kb := s.BuildContactsScreen()
	assert.Contains(t, text, "✈️ Telegram: @tanya_kir30")
	assert.Contains(t, kb.InlineKeyboard[0][0].URL, "yandex.ru/maps")

	_, menu := s.BuildStartScreen()
	assert.Equal(t, "https://t.me/tanya_kir30", menu.InlineKeyboard[4][0].URL)
}

func TestConfirmEscapesInput(t *testing.T) {
	text, kb := BuildConfirmScreen(model.BookingDraft{
		Service: model.Service{Name: "Макияж дневной"},
		Date:    time.Date(2025, time.October, 6, 0, 0, 0, 0, msk),
		Time:    "10:00",
		Name:    "<script>",
		Phone:   "+7 999",
	})
	assert.Contains(t, text, "Дата: 06.10.2025")
	assert.Contains(t, text, "Имя: &lt;script&gt;")
	assert.Contains(t, text, "Пожелания: -")
	assert.Equal(t, []string{"book:send", "book:cancel"}, callbacks(kb))
}

func TestSubmittedText(t *testing.T) {
	plain := BuildSubmittedText(model.Submission{Result: model.Created("e", "l", false)})
	assert.NotContains(t, plain, "⚠️")

	overlap := BuildSubmittedText(model.Submission{Result: model.Created("e", "l", true)})
	assert.Contains(t, overlap, "⚠️ Обрати внимание")

	offline := BuildSubmittedText(model.Submission{Result: model.Unavailable()})
	assert.Contains(t, offline, "Внутренний календарь временно недоступен")
}

func TestReviewsScreen(t *testing.T) {
	text, _ := BuildReviewsScreen(nil, 0)
	assert.Contains(t, text, "Пока отзывов нет")

	reviews := []model.Review{{Name: "Оля", Text: "Супер", Date: time.Date(2025, 10, 1, 0, 0, 0, 0, msk)}}
	text, _ = BuildReviewsScreen(reviews, 12)
	assert.Contains(t, text, "— <b>Оля</b> (01.10.2025): Супер")
	assert.Contains(t, text, "Показано 1 из 12 отзывов.")
}

func TestInvalidInputText(t *testing.T) {
	s := newScreens(t)
	text, kb := s.Render(dialog.Reply{Screen: dialog.ScreenInvalidInput, Err: dialog.ErrInvalidPhone})
	assert.Contains(t, text, "6 цифр")
	assert.Equal(t, []string{"book:cancel"}, callbacks(kb))

	text, _ = s.Render(dialog.Reply{})
	assert.Empty(t, text)
}

func TestStatsScreen(t *testing.T) {
	text := BuildStatsScreen([]model.MonthStats{
		{Month: "2025-09", Bookings: 2, Revenue: 140, Minutes: 135},
		{Month: "2025-10", Bookings: 1, Revenue: 60, Minutes: 68},
	}, "€")
	assert.Contains(t, text, "2025-09: 2 записи, 140 €, 2 ч 15 мин")
	assert.Contains(t, text, "<b>Итого:</b> 3 записи, 200 €, 3 ч 23 мин")
	assert.Equal(t, "Записей пока нет.", BuildStatsScreen(nil, "€"))
}
