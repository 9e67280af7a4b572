package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Google - календарь Google, доступ через сервисный аккаунт
type Google struct {
	events     *gcal.EventsService
	calendarID string
	loc        *time.Location
}

// NewGoogle создаёт клиент Google Calendar по файлу ключа сервисного аккаунта
func NewGoogle(ctx context.Context, credentialsFile, calendarID string, loc *time.Location) (*Google, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &Google{
		events:     svc.Events,
		calendarID: calendarID,
		loc:        loc,
	}, nil
}

// ListBusy возвращает неотменённые события дня
func (g *Google) ListBusy(ctx context.Context, day time.Time) ([]model.BusyInterval, error) {
	day = day.In(g.loc)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, g.loc)
	dayEnd := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 0, 0, g.loc)

	resp, err := g.events.List(g.calendarID).
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	busy := make([]model.BusyInterval, 0, len(resp.Items))
	for _, item := range resp.Items {
		if iv, ok := eventInterval(item, g.loc); ok {
			busy = append(busy, iv)
		}
	}
	return busy, nil
}

// InsertEvent создаёт событие с напоминаниями во всплывающих окнах
func (g *Google) InsertEvent(ctx context.Context, ev Event) (EventRef, error) {
	created, err := g.events.Insert(g.calendarID, toGoogleEvent(ev, g.loc)).Context(ctx).Do()
	if err != nil {
		return EventRef{}, fmt.Errorf("insert event: %w", err)
	}
	return EventRef{ID: created.Id, Link: created.HtmlLink}, nil
}

func toGoogleEvent(ev Event, loc *time.Location) *gcal.Event {
	overrides := make([]*gcal.EventReminder, 0, len(ev.Reminders))
	for _, r := range ev.Reminders {
		overrides = append(overrides, &gcal.EventReminder{
			Method:  "popup",
			Minutes: int64(r / time.Minute),
		})
	}

	return &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.In(loc).Format(time.RFC3339),
			TimeZone: loc.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.In(loc).Format(time.RFC3339),
			TimeZone: loc.String(),
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides:  overrides,
			// без этого false не попадёт в запрос и календарь включит свои напоминания
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

// eventInterval переводит событие в интервал занятости.
// У событий на весь день берётся начало первого дня и конец последнего.
func eventInterval(e *gcal.Event, loc *time.Location) (model.BusyInterval, bool) {
	if e == nil || e.Status == "cancelled" || e.Start == nil || e.End == nil {
		return model.BusyInterval{}, false
	}

	start, err := parseEventTime(e.Start, "00:00:00", loc)
	if err != nil {
		return model.BusyInterval{}, false
	}
	end, err := parseEventTime(e.End, "23:59:59", loc)
	if err != nil {
		return model.BusyInterval{}, false
	}

	iv := model.BusyInterval{Start: start, End: end}
	return iv, iv.Valid()
}

func parseEventTime(dt *gcal.EventDateTime, allDayClock string, loc *time.Location) (time.Time, error) {
	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		if err != nil {
			return time.Time{}, err
		}
		return t.In(loc), nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", dt.Date+"T"+allDayClock, loc)
}
