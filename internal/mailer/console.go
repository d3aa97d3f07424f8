package mailer

import "log/slog"

// consoleMailer logs messages instead of sending them. Used in
// development and in tests when no SendGrid key is configured.
type consoleMailer struct {
	logger *slog.Logger
}

var _ Mailer = (*consoleMailer)(nil)

func NewConsoleMailer(logger *slog.Logger) Mailer {
	return &consoleMailer{logger: logger}
}

func (svc *consoleMailer) SendMessages(messages ...*EmailMessage) {
	for _, msg := range messages {
		if !msg.HasRecipients() || !msg.HasContent() {
			continue
		}
		recipients := make([]string, 0, len(msg.To))
		for _, to := range msg.To {
			recipients = append(recipients, to.Address)
		}
		svc.logger.Info("Email (console)",
			"to", recipients,
			"subject", msg.Subject,
			"body", msg.TextContent)
	}
}
