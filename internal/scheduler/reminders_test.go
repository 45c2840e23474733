package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/codr1/turnero/internal/email"
	"github.com/codr1/turnero/internal/schedule"
	"github.com/codr1/turnero/internal/testutil"
	"github.com/codr1/turnero/internal/testutil/schedtest"
)

type recordingSender struct {
	mu         sync.Mutex
	recipients []string
	failFor    string
}

func (s *recordingSender) Send(ctx context.Context, recipient, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if recipient == s.failFor {
		return errors.New("mailbox unavailable")
	}
	s.recipients = append(s.recipients, recipient)
	return nil
}

func newReminderFixture(t *testing.T) *schedule.Service {
	t.Helper()

	env := schedtest.New(t)
	svc, database := env.Service, env.DB

	court := testutil.CreateCourt(t, database, "Cancha 1", true)
	testutil.CreateTimeSlot(t, database, "12:00", "13:30", 1, true)
	testutil.CreateTimeSlot(t, database, "13:30", "15:00", 2, true)
	testutil.CreateTimeSlot(t, database, "15:00", "16:30", 3, true)

	book := func(date, start, end, name, mail string) schedule.Reservation {
		t.Helper()
		res, err := svc.Book(context.Background(), schedule.BookingRequest{
			Date:    date,
			CourtID: court.ID,
			Start:   start,
			End:     end,
			Client:  schedule.ClientInfo{Name: name, Email: mail},
		})
		if err != nil {
			t.Fatalf("book %s %s: %v", date, start, err)
		}
		return res
	}

	cancelled := book("2025-05-31", "12:00", "13:30", "Dani", "dani@example.com")
	if _, err := svc.CancelReservation(context.Background(), cancelled.ID, schedule.Principal{IsAdmin: true}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	book("2025-05-31", "12:00", "13:30", "Ana", "ana@example.com")
	book("2025-05-31", "13:30", "15:00", "Beto", "")
	book("2025-05-31", "15:00", "16:30", "Caro", "caro@example.com")
	book("2025-06-01", "12:00", "13:30", "Eli", "eli@example.com")
	return svc
}

func TestSendNextDayReminders(t *testing.T) {
	svc := newReminderFixture(t)
	sender := &recordingSender{failFor: "caro@example.com"}

	stats, err := SendNextDayReminders(context.Background(), svc, email.NewNotifier(sender, "Club"))
	if err != nil {
		t.Fatalf("SendNextDayReminders() error = %v", err)
	}
	if stats != (ReminderStats{Sent: 1, Skipped: 1, Failed: 1}) {
		t.Fatalf("stats = %+v", stats)
	}
	if len(sender.recipients) != 1 || sender.recipients[0] != "ana@example.com" {
		t.Fatalf("recipients = %v", sender.recipients)
	}
}

func TestSendNextDayRemindersWithoutEmail(t *testing.T) {
	svc := newReminderFixture(t)

	stats, err := SendNextDayReminders(context.Background(), svc, nil)
	if err != nil {
		t.Fatalf("SendNextDayReminders() error = %v", err)
	}
	if stats.Sent != 0 || stats.Skipped != 3 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestRegisterReminderJobs(t *testing.T) {
	svc, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = svc.Stop() })

	if err := RegisterReminderJobs(svc, nil, nil, "0 9 * * *"); err == nil {
		t.Fatal("expected error without schedule service")
	}

	schedules := schedule.NewService(testutil.NewTestDB(t), schedule.Options{})
	if err := RegisterReminderJobs(svc, schedules, nil, "0 9 * * *"); err != nil {
		t.Fatalf("RegisterReminderJobs() error = %v", err)
	}
	jobs := svc.Jobs()
	if len(jobs) != 1 || jobs[0].Name() != reminderJobName {
		t.Fatalf("jobs = %v", jobs)
	}
}

func TestAddJobValidation(t *testing.T) {
	svc, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = svc.Stop() })

	if _, err := svc.AddJob(" ", "* * * * *", func() {}); !errors.Is(err, ErrEmptyJobName) {
		t.Fatalf("empty name error = %v", err)
	}
	if _, err := svc.AddJob("job", "", func() {}); !errors.Is(err, ErrEmptyCronExpr) {
		t.Fatalf("empty cron error = %v", err)
	}
	if _, err := svc.AddJob("job", "not a cron", func() {}); err == nil {
		t.Fatal("expected invalid cron error")
	}

	var nilService *Service
	if _, err := nilService.AddJob("job", "* * * * *", func() {}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("nil service error = %v", err)
	}
}
