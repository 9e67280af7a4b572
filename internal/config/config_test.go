package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/availability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"BOT_TOKEN":     "token",
		"DB_DSN":        "postgres://localhost/booking",
		"ADMIN_CHAT_ID": "100, abc, 200,",
	}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, []int64{100, 200}, cfg.AdminIDs)
	assert.Equal(t, "Europe/Moscow", cfg.Location.String())
	assert.Equal(t, availability.DefaultHours(), cfg.Hours)
	assert.Equal(t, []time.Duration{120 * time.Minute, 30 * time.Minute}, cfg.Reminders)
	assert.Equal(t, "0 20 * * *", cfg.DigestCron)
	assert.Equal(t, 30, cfg.RateLimitPerMin)
	assert.False(t, cfg.CalendarEnabled())
	assert.False(t, cfg.SheetsEnabled())
}

func TestFromEnvRequired(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{"DB_DSN": "x"}))
	assert.ErrorIs(t, err, ErrMissing)

	_, err = FromEnv(envOf(map[string]string{"BOT_TOKEN": "x"}))
	assert.ErrorIs(t, err, ErrMissing)
}

func TestFromEnvBusinessHours(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"BOT_TOKEN":     "token",
		"DB_DSN":        "dsn",
		"WORK_START":    "09:30",
		"WORK_END":      "20:00",
		"SLOT_STEP_MIN": "30",
		"BUFFER_MIN":    "10",
		"REMINDERS_MIN": "1440, 60",
		"TZ":            "UTC",
	}))
	require.NoError(t, err)

	assert.Equal(t, availability.Clock{Hour: 9, Minute: 30}, cfg.Hours.Start)
	assert.Equal(t, availability.Clock{Hour: 20}, cfg.Hours.End)
	assert.Equal(t, 30*time.Minute, cfg.Hours.Step)
	assert.Equal(t, 10*time.Minute, cfg.Hours.Buffer)
	assert.Equal(t, []time.Duration{24 * time.Hour, time.Hour}, cfg.Reminders)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestFromEnvInvalidValues(t *testing.T) {
	base := map[string]string{"BOT_TOKEN": "t", "DB_DSN": "d"}
	for key, value := range map[string]string{
		"WORK_START":         "8am",
		"SLOT_STEP_MIN":      "0",
		"BUFFER_MIN":         "-5",
		"TZ":                 "Mars/Olympus",
		"REMINDERS_MIN":      "soon",
		"RATE_LIMIT_PER_MIN": "many",
	} {
		env := map[string]string{key: value}
		for k, v := range base {
			env[k] = v
		}
		_, err := FromEnv(envOf(env))
		assert.Error(t, err, key)
	}
}

func TestFeatureDetection(t *testing.T) {
	key := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(key, []byte("{}"), 0o600))

	cfg := &Config{CalendarID: "cal", SheetID: "sheet", ServiceAccountFile: key}
	assert.True(t, cfg.CalendarEnabled())
	assert.True(t, cfg.SheetsEnabled())

	cfg.ServiceAccountFile = key + ".missing"
	assert.False(t, cfg.CalendarEnabled())
	assert.False(t, cfg.SheetsEnabled())
}
