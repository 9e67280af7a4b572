package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/calendar"
	"github.com/Freeeeeet/makeup_room_bot/internal/model"
)

var msk = time.FixedZone("MSK", 3*60*60)

// fakeCalendar - календарь в памяти; вставленные события становятся занятостью
type fakeCalendar struct {
	mu        sync.Mutex
	events    []model.BusyInterval
	listErr   error
	insertErr error
	inserted  []calendar.Event
	listCalls int
}

func (f *fakeCalendar) ListBusy(_ context.Context, day time.Time) ([]model.BusyInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.BusyInterval
	for _, ev := range f.events {
		if ev.Start.Year() == day.Year() && ev.Start.YearDay() == day.YearDay() {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeCalendar) InsertEvent(_ context.Context, ev calendar.Event) (calendar.EventRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return calendar.EventRef{}, f.insertErr
	}
	f.inserted = append(f.inserted, ev)
	f.events = append(f.events, model.BusyInterval{Start: ev.Start, End: ev.End})
	return calendar.EventRef{ID: "evt", Link: "https://calendar/evt"}, nil
}

func (f *fakeCalendar) add(start time.Time, d time.Duration) {
	f.mu.Lock()
	f.events = append(f.events, model.BusyInterval{Start: start, End: start.Add(d)})
	f.mu.Unlock()
}

type fakeBookingStore struct {
	records []model.BookingRecord
	err     error
}

func (f *fakeBookingStore) Create(_ context.Context, rec *model.BookingRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeBookingStore) ListByVisitDate(_ context.Context, day time.Time) ([]model.BookingRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.BookingRecord
	for _, r := range f.records {
		if r.VisitDate.Equal(day) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) MonthlyStats(context.Context) ([]model.MonthStats, error) {
	return []model.MonthStats{{Month: "2025-10", Bookings: len(f.records)}}, f.err
}

type fakeLog struct {
	rows []model.BookingRecord
	err  error
}

func (f *fakeLog) Append(_ context.Context, rec model.BookingRecord) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, rec)
	return nil
}

type fakeNotifier struct {
	texts []string
}

func (f *fakeNotifier) Notify(_ context.Context, text string) {
	f.texts = append(f.texts, text)
}

type fakeReviewStore struct {
	reviews []model.Review
	err     error
}

func (f *fakeReviewStore) Create(_ context.Context, r *model.Review) error {
	if f.err != nil {
		return f.err
	}
	r.ID = int64(len(f.reviews) + 1)
	f.reviews = append(f.reviews, *r)
	return nil
}

func (f *fakeReviewStore) ListRecent(_ context.Context, limit int) ([]model.Review, error) {
	var out []model.Review
	for i := len(f.reviews) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.reviews[i])
	}
	return out, f.err
}

func (f *fakeReviewStore) Count(context.Context) (int, error) {
	return len(f.reviews), f.err
}

type countingRecorder struct {
	reservations map[model.ReservationStatus]int
	submissions  int
	reviews      int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{reservations: map[model.ReservationStatus]int{}}
}

func (r *countingRecorder) Reservation(s model.ReservationStatus) { r.reservations[s]++ }
func (r *countingRecorder) Submission()                           { r.submissions++ }
func (r *countingRecorder) Review()                               { r.reviews++ }

var errCalendarDown = errors.New("calendar: connection refused")
