package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// SMTPSender delivers rendered notifications over SMTP. It satisfies
// notification.Sender.
type SMTPSender struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPSender(config SMTPConfig) *SMTPSender {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPSender{
		config: config,
		dialer: dialer,
	}
}

func (s *SMTPSender) Send(to, subject, htmlBody, plainBody string, attachments []string) error {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)
	for _, path := range attachments {
		m.Attach(path)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
