package repository

import (
	"testing"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertBookingQuery(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	rec := &model.BookingRecord{
		ID:              uuid.New(),
		RequesterID:     42,
		ClientName:      "Анна",
		ServiceName:     "Дневной образ",
		Price:           3500,
		VisitDate:       time.Date(2025, 10, 5, 0, 0, 0, 0, loc),
		VisitTime:       "10:30",
		DurationMinutes: 60,
		Overlapped:      true,
	}

	query, args, err := insertBooking(rec).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO bookings (id,requester_id,")
	assert.Contains(t, query, "$16")
	assert.NotContains(t, query, "$17")
	assert.Contains(t, query, "RETURNING created_at")
	require.Len(t, args, 16)
	assert.Equal(t, rec.ID, args[0])
	assert.Equal(t, "2025-10-05", args[8])
	assert.Equal(t, true, args[14])
}

func TestSelectByVisitDateQuery(t *testing.T) {
	query, args, err := selectByVisitDate(time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM bookings WHERE visit_date = $1")
	assert.Contains(t, query, "ORDER BY visit_time, created_at")
	assert.Equal(t, []interface{}{"2025-10-06"}, args)
}

func TestSelectMonthlyStatsQuery(t *testing.T) {
	query, args, err := selectMonthlyStats().ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "GROUP BY month ORDER BY month")
	assert.Empty(t, args)
}

func TestSelectRecentReviewsQuery(t *testing.T) {
	query, _, err := selectRecentReviews(10).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "ORDER BY created_at DESC, id DESC LIMIT 10")
}

func TestInsertReviewQuery(t *testing.T) {
	query, args, err := insertReview(&model.Review{
		Name: "Ольга",
		Text: "Спасибо!",
		Date: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "RETURNING id, created_at")
	assert.Equal(t, "2025-10-01", args[2])
}
