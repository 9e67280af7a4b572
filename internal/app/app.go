package app

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/calendar"
	"github.com/Freeeeeet/makeup_room_bot/internal/catalog"
	"github.com/Freeeeeet/makeup_room_bot/internal/config"
	"github.com/Freeeeeet/makeup_room_bot/internal/controller"
	"github.com/Freeeeeet/makeup_room_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/makeup_room_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/makeup_room_bot/internal/controller/handlers"
	"github.com/Freeeeeet/makeup_room_bot/internal/controller/state"
	"github.com/Freeeeeet/makeup_room_bot/internal/dialog"
	"github.com/Freeeeeet/makeup_room_bot/internal/metrics"
	"github.com/Freeeeeet/makeup_room_bot/internal/notify"
	"github.com/Freeeeeet/makeup_room_bot/internal/repository"
	"github.com/Freeeeeet/makeup_room_bot/internal/retry"
	"github.com/Freeeeeet/makeup_room_bot/internal/service"
	"github.com/Freeeeeet/makeup_room_bot/internal/sheets"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	pollTimeout     = time.Minute
	shutdownTimeout = 10 * time.Second
	updateBurst     = 5
)

// App - собранный бот со всеми зависимостями
type App struct {
	cfg        *config.Config
	pool       *pgxpool.Pool
	controller *controller.BotController
	scheduler  *Scheduler
	metrics    *metrics.Server
	logger     *zap.Logger
}

// OpenDB подключается к Postgres и проверяет соединение
func OpenDB(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Migrate применяет миграции через отдельный мигратор
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	migrator, err := NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}

// LoadCatalog возвращает прайс-лист из CATALOG_FILE или встроенный
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile != "" {
		return catalog.Load(cfg.CatalogFile)
	}
	return catalog.Default()
}

// NewCalendar подключает Google Calendar, если он настроен. Иначе календарь отключён.
func NewCalendar(ctx context.Context, cfg *config.Config, observer calendar.Observer, logger *zap.Logger) calendar.Oracle {
	if !cfg.CalendarEnabled() {
		logger.Info("Google Calendar is not configured, all slots are offered as free")
		return calendar.Disabled{}
	}

	google, err := calendar.NewGoogle(ctx, cfg.ServiceAccountFile, cfg.CalendarID, cfg.Location)
	if err != nil {
		logger.Error("Failed to init Google Calendar, continuing without it", zap.Error(err))
		return calendar.Disabled{}
	}

	logger.Info("✅ Google Calendar connected", zap.String("calendar_id", cfg.CalendarID))
	return calendar.NewInstrumented(google, retry.DefaultPolicy(), observer, logger)
}

// New собирает приложение. pool остаётся во владении App и закрывается в Close.
func New(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *zap.Logger) (*App, error) {
	cat, err := LoadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	m := metrics.New()
	oracle := NewCalendar(ctx, cfg, m, logger)

	var bookingLog service.BookingLog
	if cfg.SheetsEnabled() {
		sheet, err := sheets.NewGoogle(ctx, cfg.ServiceAccountFile, cfg.SheetID, cfg.Location, retry.DefaultPolicy(), logger)
		if err != nil {
			logger.Error("Failed to init Google Sheets, bookings will not be logged there", zap.Error(err))
		} else {
			bookingLog = sheet
		}
	}

	bookingRepo := repository.NewBookingRepository(pool, cfg.Location)
	reviewRepo := repository.NewReviewRepository(pool, cfg.Location)

	// default handler нужен до создания бота, а обработчикам нужен бот для уведомлений
	var cmdHandlers *handlers.Handlers
	limiter := handlers.NewRateLimiter(cfg.RateLimitPerMin, updateBurst, m, logger)

	opts := []bot.Option{
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			cmdHandlers.HandleTextMessage(ctx, b, update)
		}),
		bot.WithMiddlewares(limiter.Middleware),
	}
	if cfg.TelegramProxy != "" {
		proxy, err := url.Parse(cfg.TelegramProxy)
		if err != nil {
			return nil, fmt.Errorf("parse TG_PROXY: %w", err)
		}
		client := &http.Client{
			Timeout:   pollTimeout + 10*time.Second,
			Transport: &http.Transport{Proxy: http.ProxyURL(proxy)},
		}
		opts = append(opts, bot.WithHTTPClient(pollTimeout, client))
	}

	b, err := bot.New(cfg.TelegramToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	notifier := notify.New(b, cfg.AdminIDs, retry.DefaultPolicy(), logger)

	availability := service.NewAvailabilityService(oracle, cfg.Hours, cfg.Location, logger)
	reservations := service.NewReservationService(oracle, availability, cat.Brand, cfg.Reminders, m, logger)
	bookings := service.NewBookingService(reservations, bookingRepo, bookingLog, notifier, m, logger)
	reviews := service.NewReviewService(reviewRepo, notifier, m, cfg.Location, logger)

	machine := dialog.NewMachine(cat, availability, bookings, reviews, cfg.Location, logger)
	sessions := state.NewManager()
	screens := common.NewScreens(cat)

	currency := ""
	if len(cat.Services) > 0 {
		currency = cat.Services[0].Currency
	}

	cmdHandlers = handlers.NewHandlers(machine, sessions, screens, notifier, bookings, currency, logger)
	callbackHandler := callbacks.NewHandler(machine, sessions, screens, cfg.Location, logger)

	scheduler, err := NewScheduler(cfg.DigestCron, bookings, cfg.Location, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:        cfg,
		pool:       pool,
		controller: controller.NewBotController(b, cmdHandlers, callbackHandler, logger),
		scheduler:  scheduler,
		logger:     logger,
	}
	if cfg.MetricsAddr != "" {
		a.metrics = metrics.NewServer(cfg.MetricsAddr, m, logger)
	}

	return a, nil
}

// Run запускает бота и фоновые задачи и блокируется до отмены ctx
func (a *App) Run(ctx context.Context) error {
	if err := a.controller.RegisterHandlers(ctx); err != nil {
		// без меню команд бот работает, команды вводятся вручную
		a.logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	if a.metrics != nil {
		a.metrics.Start()
	}
	a.scheduler.Start()

	a.controller.Start(ctx)

	a.shutdown()
	return nil
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.scheduler.Stop(ctx)
	if a.metrics != nil {
		if err := a.metrics.Shutdown(ctx); err != nil {
			a.logger.Warn("Metrics server shutdown failed", zap.Error(err))
		}
	}
	a.pool.Close()

	a.logger.Info("Bot stopped")
}
