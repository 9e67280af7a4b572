package notify

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/Freeeeeet/makeup_room_bot/internal/retry"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSender struct {
	failFirst int
	err       error
	calls     int
	sent      []int64
}

func (f *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.calls++
	if f.calls <= f.failFirst {
		return nil, f.err
	}
	f.sent = append(f.sent, params.ChatID.(int64))
	return &models.Message{}, nil
}

var fastPolicy = retry.Policy{Attempts: 3, Base: time.Millisecond}

func TestNotifySendsToEveryAdmin(t *testing.T) {
	s := &fakeSender{}
	n := New(s, []int64{1, 2}, fastPolicy, zap.NewNop())

	n.Notify(context.Background(), "hello")

	assert.Equal(t, []int64{1, 2}, s.sent)
}

func TestNotifyRetriesTransient(t *testing.T) {
	s := &fakeSender{failFirst: 2, err: errors.New("connection reset")}
	n := New(s, []int64{7}, fastPolicy, zap.NewNop())

	n.Notify(context.Background(), "hello")

	assert.Equal(t, 3, s.calls)
	assert.Equal(t, []int64{7}, s.sent)
}

func TestNotifySwallowsPermanent(t *testing.T) {
	s := &fakeSender{failFirst: 1, err: fmt.Errorf("send: %w", bot.ErrorForbidden)}
	n := New(s, []int64{7, 8}, fastPolicy, zap.NewNop())

	n.Notify(context.Background(), "hello")

	assert.Equal(t, 2, s.calls)
	assert.Equal(t, []int64{8}, s.sent)
}

func TestNotifyWithoutAdmins(t *testing.T) {
	s := &fakeSender{}
	New(s, nil, fastPolicy, zap.NewNop()).Notify(context.Background(), "hello")
	assert.Zero(t, s.calls)
}

func TestIsAdmin(t *testing.T) {
	n := New(&fakeSender{}, []int64{10, 20}, fastPolicy, zap.NewNop())
	assert.True(t, n.IsAdmin(20))
	assert.False(t, n.IsAdmin(30))
}

func TestBookingText(t *testing.T) {
	rec := model.BookingRecord{
		ServiceName:     "Вечерний образ",
		VisitDate:       time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC),
		VisitTime:       "16:00",
		ClientName:      "Анна",
		Phone:           "+7 999 000-00-00",
		RequesterHandle: "@anna",
		EventLink:       "https://calendar/evt",
		Overlapped:      true,
		CalendarSynced:  true,
	}

	text := BookingText(rec)
	assert.Contains(t, text, "Дата/время: 05.10.2025 16:00")
	assert.Contains(t, text, "Комментарий: —")
	assert.Contains(t, text, "От: @anna")
	assert.Contains(t, text, "📅 В календаре: https://calendar/evt")
	assert.Contains(t, text, "ПЕРЕСЕЧЕНИЕ")
	assert.NotContains(t, text, "Календарь недоступен")

	rec.CalendarSynced = false
	rec.EventLink = ""
	rec.Overlapped = false
	text = BookingText(rec)
	assert.Contains(t, text, "Календарь недоступен")
	assert.NotContains(t, text, "В календаре")
}

func TestDigestText(t *testing.T) {
	day := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "📋 Записи на 06.10.2025: нет записей.", DigestText(day, nil))

	text := DigestText(day, []model.BookingRecord{
		{VisitTime: "10:00", ServiceName: "Дневной образ", DurationMinutes: 60, ClientName: "Анна", Phone: "1"},
		{VisitTime: "12:00", ServiceName: "Укладка", DurationMinutes: 45, ClientName: "Ольга", Phone: "2", Notes: "локоны"},
	})
	assert.Contains(t, text, "10:00 — Дневной образ (60 мин)\nАнна, 1")
	assert.Contains(t, text, "Комментарий: локоны")
}
