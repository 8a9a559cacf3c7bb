package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lshmam/neucler-square-sub000/internal/models"
)

// Sender delivers a message to a destination address on the external
// channel. Implementations must not touch the ledger or balances.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// Dispatcher formats per-program award messages and hands them to the
// external channel. Strictly best-effort: failures are logged, never
// escalated, never retried.
type Dispatcher struct {
	sender Sender
}

// NewDispatcher creates a Dispatcher delivering through the given sender.
func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Notify sends one award message. A blank destination is a silent skip:
// the customer has no address on file, there is nothing to deliver.
func (d *Dispatcher) Notify(ctx context.Context, to string, award models.ProgramAward) {
	if to == "" {
		slog.Debug("notification skipped, no destination address",
			"programID", award.ProgramID,
		)
		return
	}

	body := FormatMessage(award)
	if err := d.sender.Send(ctx, to, body); err != nil {
		slog.Warn("notification delivery failed",
			"programID", award.ProgramID,
			"to", to,
			"error", err,
		)
		return
	}

	slog.Info("notification sent",
		"programID", award.ProgramID,
		"points", award.Points,
	)
}

// FormatMessage renders the award message using the program's own
// terminology label.
func FormatMessage(award models.ProgramAward) string {
	unit := award.Terminology
	if unit == "" {
		unit = "points"
	}
	return fmt.Sprintf("%s: you earned %d %s! Your balance is now %d %s.",
		award.ProgramName, award.Points, unit, award.NewBalance, unit)
}

// LogSender is a Sender that only logs. Used when no SMS gateway is
// configured (local development, tests).
type LogSender struct{}

// Send logs the message instead of delivering it.
func (LogSender) Send(_ context.Context, to, body string) error {
	slog.Info("notification (log only)", "to", to, "body", body)
	return nil
}
