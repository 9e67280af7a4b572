package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/Freeeeeet/makeup_room_bot/internal/repository/base"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var bookingColumns = []string{
	"id",
	"requester_id",
	"requester_handle",
	"client_name",
	"phone",
	"service_name",
	"price",
	"currency",
	"visit_date",
	"visit_time",
	"duration_minutes",
	"notes",
	"event_id",
	"event_link",
	"overlapped",
	"calendar_synced",
	"created_at",
}

type BookingRepository struct {
	*base.Repository
	loc *time.Location
}

func NewBookingRepository(db base.Querier, loc *time.Location) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(db), loc: loc}
}

// Create сохраняет завершённую запись
func (r *BookingRepository) Create(ctx context.Context, rec *model.BookingRecord) error {
	row, err := r.QueryRow(ctx, insertBooking(rec))
	if err != nil {
		return fmt.Errorf("build insert booking: %w", err)
	}

	if err := row.Scan(&rec.CreatedAt); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// ListByVisitDate возвращает записи на день, по времени визита
func (r *BookingRepository) ListByVisitDate(ctx context.Context, day time.Time) ([]model.BookingRecord, error) {
	rows, err := r.Query(ctx, selectByVisitDate(day))
	if err != nil {
		return nil, fmt.Errorf("list bookings by date: %w", err)
	}
	defer rows.Close()

	var records []model.BookingRecord
	for rows.Next() {
		rec, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return records, nil
}

// MonthlyStats считает записи, выручку и минуты по месяцам визита
func (r *BookingRepository) MonthlyStats(ctx context.Context) ([]model.MonthStats, error) {
	rows, err := r.Query(ctx, selectMonthlyStats())
	if err != nil {
		return nil, fmt.Errorf("monthly stats: %w", err)
	}
	defer rows.Close()

	var stats []model.MonthStats
	for rows.Next() {
		var s model.MonthStats
		if err := rows.Scan(&s.Month, &s.Bookings, &s.Revenue, &s.Minutes); err != nil {
			return nil, fmt.Errorf("scan monthly stats: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly stats: %w", err)
	}

	return stats, nil
}

func (r *BookingRepository) scanBooking(row pgx.Row) (model.BookingRecord, error) {
	var rec model.BookingRecord
	var visitDate time.Time

	err := row.Scan(
		&rec.ID,
		&rec.RequesterID,
		&rec.RequesterHandle,
		&rec.ClientName,
		&rec.Phone,
		&rec.ServiceName,
		&rec.Price,
		&rec.Currency,
		&visitDate,
		&rec.VisitTime,
		&rec.DurationMinutes,
		&rec.Notes,
		&rec.EventID,
		&rec.EventLink,
		&rec.Overlapped,
		&rec.CalendarSynced,
		&rec.CreatedAt,
	)
	if err != nil {
		return model.BookingRecord{}, err
	}

	// DATE приходит полуночью UTC, переносим в часовой пояс студии
	rec.VisitDate = time.Date(visitDate.Year(), visitDate.Month(), visitDate.Day(), 0, 0, 0, 0, r.loc)
	return rec, nil
}

func insertBooking(rec *model.BookingRecord) squirrel.InsertBuilder {
	return base.Psql.Insert("bookings").
		Columns(bookingColumns[:len(bookingColumns)-1]...).
		Values(
			rec.ID,
			rec.RequesterID,
			rec.RequesterHandle,
			rec.ClientName,
			rec.Phone,
			rec.ServiceName,
			rec.Price,
			rec.Currency,
			rec.VisitDate.Format(model.ISODate),
			rec.VisitTime,
			rec.DurationMinutes,
			rec.Notes,
			rec.EventID,
			rec.EventLink,
			rec.Overlapped,
			rec.CalendarSynced,
		).
		Suffix("RETURNING created_at")
}

func selectByVisitDate(day time.Time) squirrel.SelectBuilder {
	return base.Psql.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"visit_date": day.Format(model.ISODate)}).
		OrderBy("visit_time", "created_at")
}

func selectMonthlyStats() squirrel.SelectBuilder {
	return base.Psql.Select(
		"to_char(visit_date, 'YYYY-MM') AS month",
		"COUNT(*)",
		"COALESCE(SUM(price), 0)::float8",
		"COALESCE(SUM(duration_minutes), 0)",
	).
		From("bookings").
		GroupBy("month").
		OrderBy("month")
}
