package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/Freeeeeet/makeup_room_bot/internal/retry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTable struct {
	titles   []string
	header   []string
	writes   map[string][][]interface{}
	appended [][]interface{}
	cleared  []string
	added    []string
	listErr  error
	listHits int
}

func newFakeTable() *fakeTable {
	return &fakeTable{writes: map[string][][]interface{}{}}
}

func (f *fakeTable) SheetTitles(context.Context) ([]string, error) {
	f.listHits++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.titles, nil
}

func (f *fakeTable) AddSheet(_ context.Context, title string, _, _ int64) error {
	f.added = append(f.added, title)
	f.titles = append(f.titles, title)
	return nil
}

func (f *fakeTable) ReadRow(context.Context, string) ([]string, error) {
	return f.header, nil
}

func (f *fakeTable) Write(_ context.Context, rng string, rows [][]interface{}) error {
	f.writes[rng] = rows
	return nil
}

func (f *fakeTable) Append(_ context.Context, _ string, row []interface{}) error {
	f.appended = append(f.appended, row)
	return nil
}

func (f *fakeTable) Clear(_ context.Context, rng string) error {
	f.cleared = append(f.cleared, rng)
	return nil
}

var msk = time.FixedZone("MSK", 3*60*60)

func sampleRecord() model.BookingRecord {
	return model.BookingRecord{
		ID:              uuid.New(),
		RequesterHandle: "anna",
		ClientName:      "Анна",
		Phone:           "+79990000000",
		ServiceName:     "Вечерний образ",
		Price:           5000,
		VisitDate:       time.Date(2025, 10, 5, 0, 0, 0, 0, msk),
		VisitTime:       "10:30",
		DurationMinutes: 68,
		Notes:           "",
		EventID:         "evt1",
		EventLink:       "https://calendar/evt1",
		CreatedAt:       time.Date(2025, 10, 1, 9, 15, 30, 0, time.UTC),
	}
}

func TestBookingRow(t *testing.T) {
	row := BookingRow(sampleRecord(), msk)

	require.Len(t, row, len(Headers))
	assert.Equal(t, []interface{}{
		"=ROW()-1", "Анна", "@anna", "+79990000000", "Вечерний образ", 5000.0,
		"05.10.2025", "10:30", 68, "", "2025-10-01T12:15:30", "evt1", "https://calendar/evt1",
		"2025-10-05", "2025-10",
	}, row)
}

func TestBookingRowKeepsExistingAt(t *testing.T) {
	rec := sampleRecord()
	rec.RequesterHandle = "@anna"
	assert.Equal(t, "@anna", BookingRow(rec, msk)[2])
}

func TestAppendInitialisesSheetsOnce(t *testing.T) {
	table := newFakeTable()
	log := newLog(table, msk, retry.Policy{Attempts: 1}, zap.NewNop())

	require.NoError(t, log.Append(context.Background(), sampleRecord()))
	require.NoError(t, log.Append(context.Background(), sampleRecord()))

	assert.Equal(t, []string{BookingsSheet, StatsSheet}, table.added)
	assert.Equal(t, 1, table.listHits)
	assert.Len(t, table.appended, 2)
	assert.Equal(t, []string{StatsSheet}, table.cleared)

	header := table.writes[BookingsSheet+"!A1:O1"]
	require.Len(t, header, 1)
	assert.Equal(t, "№п/п", header[0][0])
	assert.Equal(t, "=SUM(Записи!F2:F)", table.writes[StatsSheet+"!A1:B12"][1][1])

	log.Reset()
	require.NoError(t, log.Append(context.Background(), sampleRecord()))
	assert.Equal(t, 2, table.listHits)
}

func TestAppendKeepsMatchingHeaders(t *testing.T) {
	table := newFakeTable()
	table.titles = []string{BookingsSheet, StatsSheet}
	table.header = Headers
	log := newLog(table, msk, retry.Policy{Attempts: 1}, zap.NewNop())

	require.NoError(t, log.Append(context.Background(), sampleRecord()))

	assert.Empty(t, table.added)
	_, rewritten := table.writes[BookingsSheet+"!A1:O1"]
	assert.False(t, rewritten)
}

func TestAppendFailsWhenSpreadsheetUnreachable(t *testing.T) {
	table := newFakeTable()
	table.listErr = errors.New("403 forbidden")
	log := newLog(table, msk, retry.Policy{Attempts: 1}, zap.NewNop())

	err := log.Append(context.Background(), sampleRecord())
	assert.Error(t, err)
	assert.Empty(t, table.appended)
}
