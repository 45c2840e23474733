// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/turnero/internal/api/auth"
	"github.com/codr1/turnero/internal/api/courts"
	"github.com/codr1/turnero/internal/api/grid"
	"github.com/codr1/turnero/internal/api/nav"
	"github.com/codr1/turnero/internal/api/operatinghours"
	"github.com/codr1/turnero/internal/api/reservations"
	"github.com/codr1/turnero/internal/config"
	"github.com/codr1/turnero/internal/db"
	"github.com/codr1/turnero/internal/email"
	"github.com/codr1/turnero/internal/ratelimit"
	"github.com/codr1/turnero/internal/schedule"
	"github.com/codr1/turnero/internal/scheduler"
)

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config/app.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	if cfg.Booking.SeedDefaultSlots {
		inserted, err := database.SeedDefaultSlots(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to seed default time slots")
		}
		if inserted > 0 {
			log.Info().Int("count", inserted).Msg("Seeded default time slots")
		}
	}

	schedules := schedule.NewService(database, schedule.Options{
		Clock:       clockwork.NewRealClock(),
		Location:    cfg.Location(),
		PhoneRegion: cfg.Booking.PhoneRegion,
	})

	notifier, err := newNotifier(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure email")
	}
	defer notifier.Wait()

	auth.InitHandlers(database.Queries, cfg)
	auth.InitClerk(cfg.Clerk.SecretKey)
	nav.InitHandlers(cfg.App.SiteHeader)
	grid.InitHandlers(schedules)
	reservations.InitHandlers(schedules, notifier)
	courts.InitHandlers(schedules)
	operatinghours.InitHandlers(schedules)

	limiter := ratelimit.New(&ratelimit.Config{
		PerMinute:  cfg.Booking.RatePerMinute,
		Burst:      cfg.Booking.RateBurst,
		TrustProxy: cfg.Booking.TrustProxy,
	})
	defer limiter.Close()

	if cfg.Reminders.Enabled {
		if err := startReminders(schedules, notifier, cfg.Reminders.Cron); err != nil {
			log.Fatal().Err(err).Msg("Failed to start reminder scheduler")
		}
		defer func() {
			if err := scheduler.Stop(); err != nil {
				log.Error().Err(err).Msg("Failed to stop scheduler")
			}
		}()
	}

	server := newServer(cfg, limiter)

	g, ctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("environment", cfg.App.Environment).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

// newNotifier returns a notifier that sends nothing when email is disabled.
func newNotifier(ctx context.Context, cfg *config.Config) (*email.Notifier, error) {
	if !cfg.Email.Enabled {
		log.Info().Msg("Email disabled; booking notifications will not be sent")
		return email.NewNotifier(nil, cfg.App.Name), nil
	}
	client, err := email.NewSESClient(ctx, cfg.Email.AccessKeyID, cfg.Email.SecretAccessKey, cfg.Email.Region, cfg.Email.Sender)
	if err != nil {
		return nil, err
	}
	return email.NewNotifier(client, cfg.App.Name), nil
}

func startReminders(schedules *schedule.Service, notifier *email.Notifier, cronExpr string) error {
	if err := scheduler.Init(); err != nil {
		return err
	}
	svc, err := scheduler.ServiceInstance()
	if err != nil {
		return err
	}
	if err := scheduler.RegisterReminderJobs(svc, schedules, notifier, cronExpr); err != nil {
		return err
	}
	return scheduler.Start()
}
