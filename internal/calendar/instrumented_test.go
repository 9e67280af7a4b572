package calendar

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/Freeeeeet/makeup_room_bot/internal/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

type flakyOracle struct {
	failures int
	err      error
	calls    int
}

func (f *flakyOracle) ListBusy(context.Context, time.Time) ([]model.BusyInterval, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	start := time.Date(2025, 10, 5, 10, 0, 0, 0, time.UTC)
	return []model.BusyInterval{{Start: start, End: start.Add(time.Hour)}}, nil
}

func (f *flakyOracle) InsertEvent(context.Context, Event) (EventRef, error) {
	f.calls++
	if f.calls <= f.failures {
		return EventRef{}, f.err
	}
	return EventRef{ID: "evt", Link: "https://calendar/evt"}, nil
}

type recordingObserver struct {
	ops  []string
	errs []error
}

func (r *recordingObserver) CalendarRequest(op string, _ time.Duration, err error) {
	r.ops = append(r.ops, op)
	r.errs = append(r.errs, err)
}

var fastPolicy = retry.Policy{Attempts: 3, Base: time.Millisecond}

func TestInstrumentedRetriesTransient(t *testing.T) {
	next := &flakyOracle{failures: 2, err: &googleapi.Error{Code: http.StatusBadGateway}}
	obs := &recordingObserver{}
	c := NewInstrumented(next, fastPolicy, obs, zap.NewNop())

	busy, err := c.ListBusy(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Len(t, busy, 1)
	assert.Equal(t, 3, next.calls)
	assert.Equal(t, []string{"list"}, obs.ops)
	assert.NoError(t, obs.errs[0])
}

func TestInstrumentedGivesUp(t *testing.T) {
	next := &flakyOracle{failures: 10, err: &googleapi.Error{Code: http.StatusInternalServerError}}
	c := NewInstrumented(next, fastPolicy, nil, zap.NewNop())

	_, err := c.InsertEvent(context.Background(), Event{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, next.calls)
}

func TestInstrumentedPermanentErrorNotRetried(t *testing.T) {
	permanent := errors.New("forbidden")
	next := &flakyOracle{failures: 10, err: permanent}
	obs := &recordingObserver{}
	c := NewInstrumented(next, fastPolicy, obs, zap.NewNop())

	_, err := c.InsertEvent(context.Background(), Event{})
	assert.ErrorIs(t, err, permanent)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, []string{"insert"}, obs.ops)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.ListBusy(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = Disabled{}.InsertEvent(context.Background(), Event{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
