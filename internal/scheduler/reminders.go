package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/codr1/turnero/internal/email"
	"github.com/codr1/turnero/internal/schedule"
)

const (
	reminderJobName    = "reservation_reminders"
	reminderJobTimeout = 2 * time.Minute
)

type ReminderStats struct {
	Sent    int
	Skipped int
	Failed  int
}

// RegisterReminderJobs schedules next-day reminders for confirmed reservations.
func RegisterReminderJobs(svc *Service, schedules *schedule.Service, notifier *email.Notifier, cronExpr string) error {
	if schedules == nil {
		return fmt.Errorf("reminder jobs require the schedule service")
	}

	jobLogger := log.With().
		Str("component", "reservation_reminders_job").
		Str("job_name", reminderJobName).
		Str("cron", cronExpr).
		Logger()

	_, err := svc.AddJob(reminderJobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reminderJobTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		stats, err := SendNextDayReminders(ctx, schedules, notifier)
		if err != nil {
			jobLogger.Error().Err(err).Msg("Reminder job failed")
			return
		}
		jobLogger.Info().
			Int("sent", stats.Sent).
			Int("skipped", stats.Skipped).
			Int("failed", stats.Failed).
			Msg("Reminder job finished")
	}, gocron.WithSingletonMode(gocron.LimitModeReschedule))
	if err != nil {
		return fmt.Errorf("add reservation reminder job: %w", err)
	}

	jobLogger.Info().Msg("Reservation reminder job registered")
	return nil
}

// SendNextDayReminders emails every confirmed reservation for tomorrow in
// the facility timezone. A failed send is counted and does not stop the run.
func SendNextDayReminders(ctx context.Context, schedules *schedule.Service, notifier *email.Notifier) (ReminderStats, error) {
	logger := log.Ctx(ctx)
	tomorrow := schedule.FormatDate(schedules.Today().AddDate(0, 0, 1))

	reservations, err := schedules.ListReservations(ctx, schedule.ReservationFilter{
		Date:   tomorrow,
		Status: schedule.StatusConfirmed,
	})
	if err != nil {
		return ReminderStats{}, fmt.Errorf("list reservations for %s: %w", tomorrow, err)
	}

	var stats ReminderStats
	for _, reservation := range reservations {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		sent, err := notifier.SendReminder(ctx, reservation)
		switch {
		case err != nil:
			stats.Failed++
			logger.Error().Err(err).Int64("reservation_id", reservation.ID).Msg("Failed to send reminder email")
		case sent:
			stats.Sent++
		default:
			stats.Skipped++
		}
	}
	return stats, nil
}
