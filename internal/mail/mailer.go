package mail

import (
	"context"
	"log/slog"
)

// Mailer delivers password reset codes. SMTP delivery lives behind
// this boundary; the rest of the app only hands over an address and a
// code.
type Mailer interface {
	SendResetCode(ctx context.Context, to, code string) error
}

// LogMailer is the development Mailer: it records the delivery instead
// of sending anything.
type LogMailer struct {
	log *slog.Logger
}

func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendResetCode(ctx context.Context, to, code string) error {
	m.log.Info("password reset code issued", "to", to)
	m.log.Debug("reset code (dev only)", "to", to, "code", code)
	return nil
}
