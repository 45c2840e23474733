package email

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codr1/turnero/internal/schedule"
)

type sentEmail struct {
	recipient string
	subject   string
	body      string
	ctxErr    error
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (f *fakeEmailSender) Send(ctx context.Context, recipient, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{recipient: recipient, subject: subject, body: body, ctxErr: ctx.Err()})
	return f.err
}

func (f *fakeEmailSender) messages() []sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentEmail(nil), f.sent...)
}

func testReservation() schedule.Reservation {
	return schedule.Reservation{
		ID:          42,
		CourtID:     1,
		CourtName:   "Cancha 1",
		Date:        "2025-06-01",
		Start:       "12:00",
		End:         "13:30",
		ClientName:  "Ana",
		ClientEmail: "ana@example.com",
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2025-06-01"); got != "domingo 1 de junio de 2025" {
		t.Fatalf("FormatDate() = %q", got)
	}
	if got := FormatDate("mañana"); got != "mañana" {
		t.Fatalf("FormatDate(invalid) = %q", got)
	}
}

func TestBuildMessages(t *testing.T) {
	r := testReservation()
	tests := []struct {
		name    string
		message Message
		subject string
	}{
		{name: "confirmation", message: BuildConfirmationEmail("Club Padel", r), subject: "Reserva confirmada - Club Padel"},
		{name: "cancellation", message: BuildCancellationEmail("Club Padel", r), subject: "Reserva cancelada - Club Padel"},
		{name: "reminder", message: BuildReminderEmail("", r), subject: "Recordatorio de reserva"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.message.Subject != test.subject {
				t.Fatalf("subject = %q, want %q", test.message.Subject, test.subject)
			}
			for _, want := range []string{"Hola Ana,", "domingo 1 de junio de 2025", "12:00 a 13:30", "Cancha 1", "#42"} {
				if !strings.Contains(test.message.Body, want) {
					t.Fatalf("body missing %q:\n%s", want, test.message.Body)
				}
			}
		})
	}
}

func TestReservationConfirmedDetachesFromRequestContext(t *testing.T) {
	sender := &fakeEmailSender{}
	notifier := NewNotifier(sender, "Club Padel")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	notifier.ReservationConfirmed(ctx, testReservation())
	notifier.Wait()

	sent := sender.messages()
	if len(sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sent))
	}
	if sent[0].ctxErr != nil {
		t.Fatalf("send context already done: %v", sent[0].ctxErr)
	}
	if sent[0].recipient != "ana@example.com" {
		t.Fatalf("recipient = %q", sent[0].recipient)
	}
}

func TestNotifierSkipsWithoutRecipientOrSender(t *testing.T) {
	sender := &fakeEmailSender{}
	notifier := NewNotifier(sender, "")

	r := testReservation()
	r.ClientEmail = "  "
	notifier.ReservationCancelled(context.Background(), r)
	notifier.Wait()
	if len(sender.messages()) != 0 {
		t.Fatal("expected no email without recipient")
	}

	var disabled *Notifier
	disabled.ReservationConfirmed(context.Background(), testReservation())
	disabled.Wait()
	sent, err := disabled.SendReminder(context.Background(), testReservation())
	if sent || err != nil {
		t.Fatalf("nil notifier SendReminder() = %v, %v", sent, err)
	}
}

func TestSendReminder(t *testing.T) {
	sender := &fakeEmailSender{}
	notifier := NewNotifier(sender, "Club Padel")

	sent, err := notifier.SendReminder(context.Background(), testReservation())
	if err != nil || !sent {
		t.Fatalf("SendReminder() = %v, %v", sent, err)
	}

	sender.err = errors.New("throttled")
	_, err = notifier.SendReminder(context.Background(), testReservation())
	if err == nil || !strings.Contains(err.Error(), "reservation 42") {
		t.Fatalf("SendReminder() error = %v", err)
	}
}

func TestNewSESClientRequiresRegionAndSender(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := NewSESClient(ctx, "", "", "", "from@example.com"); err == nil {
		t.Fatal("expected error without region")
	}
	if _, err := NewSESClient(ctx, "", "", "us-east-1", ""); err == nil {
		t.Fatal("expected error without sender")
	}
}
