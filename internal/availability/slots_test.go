package availability

import (
	"testing"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contains(slots []time.Time, t time.Time) bool {
	for _, s := range slots {
		if s.Equal(t) {
			return true
		}
	}
	return false
}

func TestFreeSlotsEmptyDay(t *testing.T) {
	h := DefaultHours()
	now := at(7, 0)

	slots := FreeSlots(testDay, time.Hour, nil, now, h)

	require.NotEmpty(t, slots)
	assert.Equal(t, at(8, 15), slots[0])
	assert.Equal(t, at(18, 0), slots[len(slots)-1], "closing-time start is allowed")
	assert.True(t, contains(slots, at(17, 0)))
	assert.False(t, contains(slots, at(17, 15)), "17:15 + 60 runs past closing")
	assert.False(t, contains(slots, at(17, 45)))
}

func TestFreeSlotsFullGridWhenDurationFitsStep(t *testing.T) {
	h := DefaultHours()
	now := at(6, 0)

	slots := FreeSlots(testDay, h.Step, nil, now, h)

	var want []time.Time
	for cur := at(8, 15); !cur.After(at(18, 0)); cur = cur.Add(h.Step) {
		want = append(want, cur)
	}
	assert.Equal(t, want, slots)
}

func TestFreeSlotsTruncatedByNow(t *testing.T) {
	h := DefaultHours()

	slots := FreeSlots(testDay, 15*time.Minute, nil, at(12, 7), h)

	require.NotEmpty(t, slots)
	assert.Equal(t, at(12, 15), slots[0])

	slots = FreeSlots(testDay, 15*time.Minute, nil, at(12, 15), h)
	assert.Equal(t, at(12, 30), slots[0], "slot must be strictly in the future")
}

func TestFreeSlotsAroundBusyInterval(t *testing.T) {
	h := DefaultHours()
	busy := Merge(Pad([]model.BusyInterval{iv(10, 0, 11, 0)}, h.Buffer))
	require.Equal(t, []model.BusyInterval{iv(9, 45, 11, 15)}, busy)

	slots := FreeSlots(testDay, time.Hour, busy, at(7, 0), h)

	assert.True(t, contains(slots, at(8, 45)), "08:45 + 60 ends exactly at busy start")
	assert.False(t, contains(slots, at(9, 0)))
	assert.False(t, contains(slots, at(9, 30)))
	assert.False(t, contains(slots, at(9, 45)))
	assert.True(t, contains(slots, at(11, 15)))
	for _, s := range slots {
		if s.After(at(8, 45)) && s.Before(at(11, 15)) {
			t.Fatalf("unexpected slot %s inside busy window", s.Format("15:04"))
		}
	}
}

func TestFreeSlotsRoundsFreeStartUp(t *testing.T) {
	h := DefaultHours()
	busy := []model.BusyInterval{iv(8, 0, 10, 7)}

	slots := FreeSlots(testDay, 30*time.Minute, busy, at(7, 0), h)

	require.NotEmpty(t, slots)
	assert.Equal(t, at(10, 15), slots[0])
}

func TestFreeSlotsBusyUntilClosing(t *testing.T) {
	h := DefaultHours()
	busy := []model.BusyInterval{iv(16, 45, 18, 0)}

	slots := FreeSlots(testDay, time.Hour, busy, at(7, 0), h)

	assert.False(t, contains(slots, at(18, 0)), "busy interval reaching closing leaves nothing at 18:00")
	assert.Equal(t, at(15, 45), slots[len(slots)-1])
}

func TestFreeSlotsClosingExceptionOnlyAtDayEnd(t *testing.T) {
	h := DefaultHours()
	busy := []model.BusyInterval{iv(12, 0, 13, 0)}

	slots := FreeSlots(testDay, time.Hour, busy, at(7, 0), h)

	assert.False(t, contains(slots, at(12, 0)), "start at the edge of a busy interval is not the closing exception")
	assert.True(t, contains(slots, at(11, 0)))
	assert.True(t, contains(slots, at(18, 0)))
}

func TestFreeSlotsWholeDayBusy(t *testing.T) {
	h := DefaultHours()
	busy := []model.BusyInterval{iv(0, 0, 23, 59)}

	assert.Empty(t, FreeSlots(testDay, time.Hour, busy, at(7, 0), h))
}

func TestFreeSlotsInvertedWindow(t *testing.T) {
	h := DefaultHours()
	h.Start = Clock{Hour: 18}
	h.End = Clock{Hour: 18, Minute: 10}

	assert.Empty(t, FreeSlots(testDay, time.Hour, nil, at(7, 0), h))
}

func TestFreeSlotsPastDay(t *testing.T) {
	assert.Empty(t, FreeSlots(testDay, time.Hour, nil, testDay.AddDate(0, 0, 1), DefaultHours()))
}

func TestFreeSlotsDeterministic(t *testing.T) {
	h := DefaultHours()
	busy := Merge(Pad([]model.BusyInterval{iv(10, 0, 11, 0), iv(14, 20, 15, 5)}, h.Buffer))
	now := at(9, 3)

	first := FreeSlots(testDay, 75*time.Minute, busy, now, h)
	second := FreeSlots(testDay, 75*time.Minute, busy, now, h)

	assert.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.True(t, first[i-1].Before(first[i]), "ascending and unique")
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 8, Minute: 30}, c)
	assert.Equal(t, "08:30", c.String())

	_, err = ParseClock("8h")
	assert.Error(t, err)
}
