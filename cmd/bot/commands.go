package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/app"
	"github.com/Freeeeeet/makeup_room_bot/internal/config"
	"github.com/Freeeeeet/makeup_room_bot/internal/metrics"
	"github.com/Freeeeeet/makeup_room_bot/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bot",
		Short:         "Telegram bot for booking makeup appointments",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runBot,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Start the bot (default)",
			RunE:  runBot,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			RunE:  runMigrate,
		},
		newSlotsCmd(),
	)

	return root
}

// setup читает конфигурацию и создаёт логгер
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, app.NewLogger(cfg.Environment), nil
}

func runBot(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Sugar().Infow("Starting makeup room bot",
		"environment", cfg.Environment,
		"timezone", cfg.Location.String(),
		"calendar", cfg.CalendarEnabled(),
		"sheets", cfg.SheetsEnabled(),
		"admins", len(cfg.AdminIDs))

	pool, err := app.OpenDB(ctx, cfg)
	if err != nil {
		return err
	}

	if err := app.Migrate(ctx, pool, logger); err != nil {
		pool.Close()
		return err
	}

	a, err := app.New(ctx, cfg, pool, logger)
	if err != nil {
		pool.Close()
		return err
	}

	return a.Run(ctx)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	pool, err := app.OpenDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return app.Migrate(cmd.Context(), pool, logger)
}

func newSlotsCmd() *cobra.Command {
	var (
		date    string
		minutes int
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print the free slots offered for a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			day, err := time.ParseInLocation("2006-01-02", date, cfg.Location)
			if err != nil {
				return fmt.Errorf("parse --date: %w", err)
			}
			if minutes <= 0 {
				return fmt.Errorf("--minutes must be positive")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			oracle := app.NewCalendar(ctx, cfg, metrics.New(), logger)
			availability := service.NewAvailabilityService(oracle, cfg.Hours, cfg.Location, logger)

			slots := availability.FreeSlots(ctx, day, minutes)
			out := cmd.OutOrStdout()
			if len(slots) == 0 {
				fmt.Fprintf(out, "%s: no free slots\n", day.Format("02.01.2006"))
				return nil
			}
			fmt.Fprintf(out, "%s: %d slots\n", day.Format("02.01.2006"), len(slots))
			for _, s := range slots {
				fmt.Fprintln(out, s.Format("15:04"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().Format("2006-01-02"), "day to inspect, YYYY-MM-DD")
	cmd.Flags().IntVar(&minutes, "minutes", 60, "visit duration in minutes")

	return cmd
}
