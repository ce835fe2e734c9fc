package mail

import "log/slog"

// LogSender is used when SMTP is not configured: messages are logged and
// dropped so the rest of the system keeps working.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender { return &LogSender{log: log} }

func (s *LogSender) Send(to, subject, htmlBody, plainBody string, attachments []string) error {
	s.log.Info("mail not configured, dropping message", "to", to, "subject", subject)
	return nil
}
