package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/Freeeeeet/makeup_room_bot/internal/availability"
	"github.com/joho/godotenv"
)

var ErrMissing = errors.New("required setting is not set")

type Config struct {
	TelegramToken string
	DBDSN         string
	Environment   string
	TelegramProxy string

	AdminIDs []int64
	Location *time.Location

	CalendarID         string
	ServiceAccountFile string
	SheetID            string

	Hours     availability.Hours
	Reminders []time.Duration

	CatalogFile     string
	MetricsAddr     string
	DigestCron      string
	RateLimitPerMin int
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфигурацию из функции чтения переменных окружения
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		TelegramToken:      get("BOT_TOKEN", ""),
		DBDSN:              get("DB_DSN", ""),
		Environment:        get("ENV", "development"),
		TelegramProxy:      get("TG_PROXY", ""),
		AdminIDs:           ParseAdminIDs(getenv("ADMIN_CHAT_ID")),
		CalendarID:         get("GOOGLE_CALENDAR_ID", ""),
		ServiceAccountFile: get("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		SheetID:            get("GSHEET_ID", ""),
		CatalogFile:        get("CATALOG_FILE", ""),
		MetricsAddr:        get("METRICS_ADDR", ""),
		DigestCron:         get("DIGEST_CRON", "0 20 * * *"),
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN: %w", ErrMissing)
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN: %w", ErrMissing)
	}

	loc, err := time.LoadLocation(get("TZ", "Europe/Moscow"))
	if err != nil {
		return nil, fmt.Errorf("TZ: %w", err)
	}
	cfg.Location = loc

	hours := availability.DefaultHours()
	if hours.Start, err = availability.ParseClock(get("WORK_START", hours.Start.String())); err != nil {
		return nil, fmt.Errorf("WORK_START: %w", err)
	}
	if hours.End, err = availability.ParseClock(get("WORK_END", hours.End.String())); err != nil {
		return nil, fmt.Errorf("WORK_END: %w", err)
	}
	if hours.Step, err = minutes(get("SLOT_STEP_MIN", "15")); err != nil || hours.Step <= 0 {
		return nil, fmt.Errorf("SLOT_STEP_MIN: invalid value %q", getenv("SLOT_STEP_MIN"))
	}
	if hours.Buffer, err = minutes(get("BUFFER_MIN", "15")); err != nil || hours.Buffer < 0 {
		return nil, fmt.Errorf("BUFFER_MIN: invalid value %q", getenv("BUFFER_MIN"))
	}
	cfg.Hours = hours

	for _, part := range strings.Split(get("REMINDERS_MIN", "120,30"), ",") {
		d, err := minutes(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("REMINDERS_MIN: %w", err)
		}
		cfg.Reminders = append(cfg.Reminders, d)
	}

	cfg.RateLimitPerMin, err = strconv.Atoi(get("RATE_LIMIT_PER_MIN", "30"))
	if err != nil || cfg.RateLimitPerMin <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MIN: invalid value %q", getenv("RATE_LIMIT_PER_MIN"))
	}

	return cfg, nil
}

// CalendarEnabled - интеграция с календарём включается наличием настроек и файла ключа
func (c *Config) CalendarEnabled() bool {
	return c.CalendarID != "" && c.keyFileExists()
}

// SheetsEnabled - логирование в таблицу включается так же
func (c *Config) SheetsEnabled() bool {
	return c.SheetID != "" && c.keyFileExists()
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func (c *Config) keyFileExists() bool {
	if c.ServiceAccountFile == "" {
		return false
	}
	_, err := os.Stat(c.ServiceAccountFile)
	return err == nil
}

// ParseAdminIDs разбирает список chat id через запятую, нечисловые части пропускаются
func ParseAdminIDs(value string) []int64 {
	var ids []int64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Printf("⚠️  ADMIN_CHAT_ID contains non-numeric value: %q", part)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func minutes(s string) (time.Duration, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Minute, nil
}
