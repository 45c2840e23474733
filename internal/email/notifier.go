package email

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/codr1/turnero/internal/schedule"
)

const sendTimeout = 5 * time.Second

// Notifier emails clients about their reservations. A nil Notifier or one
// without a sender does nothing.
type Notifier struct {
	sender   EmailSender
	siteName string
	wg       sync.WaitGroup
}

func NewNotifier(sender EmailSender, siteName string) *Notifier {
	return &Notifier{sender: sender, siteName: siteName}
}

func (n *Notifier) enabled() bool {
	return n != nil && n.sender != nil
}

// ReservationConfirmed sends the booking confirmation in the background.
func (n *Notifier) ReservationConfirmed(ctx context.Context, r schedule.Reservation) {
	n.sendAsync(ctx, "confirmation", r, BuildConfirmationEmail(n.site(), r))
}

// ReservationCancelled sends the cancellation notice in the background.
func (n *Notifier) ReservationCancelled(ctx context.Context, r schedule.Reservation) {
	n.sendAsync(ctx, "cancellation", r, BuildCancellationEmail(n.site(), r))
}

// Wait blocks until background sends finish.
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}

func (n *Notifier) site() string {
	if n == nil {
		return ""
	}
	return n.siteName
}

func (n *Notifier) sendAsync(ctx context.Context, kind string, r schedule.Reservation, message Message) {
	if !n.enabled() {
		return
	}
	recipient := strings.TrimSpace(r.ClientEmail)
	if recipient == "" {
		return
	}
	logger := zerolog.Ctx(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		sendCtx, cancel := newEmailContext(ctx, sendTimeout)
		defer cancel()
		if err := n.sender.Send(sendCtx, recipient, message.Subject, message.Body); err != nil {
			logger.Error().Err(err).Int64("reservation_id", r.ID).Str("kind", kind).Msg("Failed to send reservation email")
			return
		}
		logger.Debug().Int64("reservation_id", r.ID).Str("kind", kind).Msg("Reservation email sent")
	}()
}

func (n *Notifier) send(ctx context.Context, r schedule.Reservation, message Message) (bool, error) {
	recipient := strings.TrimSpace(r.ClientEmail)
	if recipient == "" {
		return false, nil
	}
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := n.sender.Send(sendCtx, recipient, message.Subject, message.Body); err != nil {
		return false, fmt.Errorf("send reservation %d email: %w", r.ID, err)
	}
	return true, nil
}
