package email

import (
	"context"

	"github.com/codr1/turnero/internal/schedule"
)

// SendReminder emails a reminder synchronously. It reports false without an
// error when the reservation has no email address or sending is disabled.
func (n *Notifier) SendReminder(ctx context.Context, r schedule.Reservation) (bool, error) {
	if !n.enabled() {
		return false, nil
	}
	return n.send(ctx, r, BuildReminderEmail(n.siteName, r))
}
