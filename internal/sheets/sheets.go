// Package sheets ведёт журнал записей в Google Таблице: лист "Записи" и сводку "Статистика".
package sheets

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/Freeeeeet/makeup_room_bot/internal/retry"
	"go.uber.org/zap"
)

const (
	BookingsSheet = "Записи"
	StatsSheet    = "Статистика"

	timestampLayout = "2006-01-02T15:04:05"
)

// Headers - заголовки листа "Записи", колонки A..O
var Headers = []string{
	"№п/п", "ФИО", "телеграм-ник", "телефон",
	"выбранная услуга", "стоимость услуги",
	"дата визита", "время визита", "продолжительность визита (мин)",
	"комментарий клиента", "дата формирования записи",
	"id события в Google Calendar", "ссылка на событие в календаре",
	"дата визита ISO", "месяц (YYYY-MM)",
}

// table - операции над таблицей, которые нужны журналу
type table interface {
	SheetTitles(ctx context.Context) ([]string, error)
	AddSheet(ctx context.Context, title string, rows, cols int64) error
	ReadRow(ctx context.Context, rng string) ([]string, error)
	Write(ctx context.Context, rng string, rows [][]interface{}) error
	Append(ctx context.Context, rng string, row []interface{}) error
	Clear(ctx context.Context, rng string) error
}

// Log - журнал записей в таблице. Листы проверяются при первой записи за процесс.
type Log struct {
	table  table
	loc    *time.Location
	policy retry.Policy
	logger *zap.Logger

	mu    sync.Mutex
	ready bool
}

func newLog(t table, loc *time.Location, policy retry.Policy, logger *zap.Logger) *Log {
	return &Log{
		table:  t,
		loc:    loc,
		policy: policy,
		logger: logger,
	}
}

// Append добавляет строку о записи. Формулы в строке вычисляются таблицей.
func (l *Log) Append(ctx context.Context, rec model.BookingRecord) error {
	if err := l.ensure(ctx); err != nil {
		return err
	}

	row := BookingRow(rec, l.loc)
	err := retry.Do(ctx, l.policy, retry.IsGoogleTransient, func(ctx context.Context) error {
		return l.table.Append(ctx, BookingsSheet+"!A1", row)
	})
	if err != nil {
		return fmt.Errorf("append booking row: %w", err)
	}

	l.logger.Info("Booking logged to sheet",
		zap.String("booking_id", rec.ID.String()),
		zap.String("event_id", rec.EventID),
	)
	return nil
}

// Reset заставляет заново проверить листы при следующей записи
func (l *Log) Reset() {
	l.mu.Lock()
	l.ready = false
	l.mu.Unlock()
}

func (l *Log) ensure(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ready {
		return nil
	}

	titles, err := l.table.SheetTitles(ctx)
	if err != nil {
		return fmt.Errorf("list sheets: %w", err)
	}

	if !slices.Contains(titles, BookingsSheet) {
		if err := l.table.AddSheet(ctx, BookingsSheet, 1000, int64(len(Headers))); err != nil {
			return fmt.Errorf("add sheet %s: %w", BookingsSheet, err)
		}
	}
	if err := l.ensureHeaders(ctx); err != nil {
		return err
	}

	if !slices.Contains(titles, StatsSheet) {
		if err := l.table.AddSheet(ctx, StatsSheet, 200, 10); err != nil {
			return fmt.Errorf("add sheet %s: %w", StatsSheet, err)
		}
	}
	if err := l.table.Clear(ctx, StatsSheet); err != nil {
		return fmt.Errorf("clear %s: %w", StatsSheet, err)
	}
	if err := l.table.Write(ctx, StatsSheet+"!A1:B12", statsBlock()); err != nil {
		return fmt.Errorf("write %s: %w", StatsSheet, err)
	}

	l.ready = true
	return nil
}

func (l *Log) ensureHeaders(ctx context.Context) error {
	headerRange := BookingsSheet + "!A1:O1"

	existing, err := l.table.ReadRow(ctx, headerRange)
	if err != nil {
		return fmt.Errorf("read headers: %w", err)
	}
	if slices.Equal(existing, Headers) {
		return nil
	}

	row := make([]interface{}, len(Headers))
	for i, h := range Headers {
		row[i] = h
	}
	if err := l.table.Write(ctx, headerRange, [][]interface{}{row}); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	return nil
}

// BookingRow - строка листа "Записи" в порядке Headers
func BookingRow(rec model.BookingRecord, loc *time.Location) []interface{} {
	handle := rec.RequesterHandle
	if handle != "" && handle[0] != '@' {
		handle = "@" + handle
	}

	var dateVisit, dateISO, month string
	if !rec.VisitDate.IsZero() {
		dateVisit = rec.VisitDate.Format(model.DateLayout)
		dateISO = rec.VisitDate.Format(model.ISODate)
		month = rec.VisitDate.Format(model.MonthKey)
	}

	return []interface{}{
		"=ROW()-1",
		rec.ClientName,
		handle,
		rec.Phone,
		rec.ServiceName,
		rec.Price,
		dateVisit,
		rec.VisitTime,
		rec.DurationMinutes,
		rec.Notes,
		rec.CreatedAt.In(loc).Format(timestampLayout),
		rec.EventID,
		rec.EventLink,
		dateISO,
		month,
	}
}

// statsBlock - содержимое листа "Статистика", столбцы A и B с первой строки
func statsBlock() [][]interface{} {
	query := `=QUERY({Записи!O2:O, Записи!F2:F, Записи!I2:I}, ` +
		`"select Col1, sum(Col2), sum(Col3), sum(Col3)/60 where Col1 is not null group by Col1 order by Col1 ` +
		`label Col1 'Месяц', sum(Col2) 'Выручка', sum(Col3) 'Минуты', sum(Col3)/60 'Часы'", 0)`

	return [][]interface{}{
		{"Итоги"},
		{"Сумма выручки", "=SUM(Записи!F2:F)"},
		{"Суммарные минуты", "=SUM(Записи!I2:I)"},
		{"Суммарные часы", "=B3/60"},
		{},
		{"Сводка по месяцам"},
		{query},
		{},
		{},
		{"Подсказка"},
		{"• В листе «Записи» колонки N и O используются для расчётов (ISO-дата и ключ месяца)."},
		{"• Здесь можно строить графики на основе таблицы начиная с A7."},
	}
}
