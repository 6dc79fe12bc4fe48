package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"crmdesk/internal/shared/config"
)

// Dialer is the part of *gomail.Dialer the sender needs.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPSender struct {
	from     string
	fromName string
	dialer   Dialer
}

func NewSMTPSender(cfg *config.NotificationConfig) *SMTPSender {
	return NewSMTPSenderWithDialer(cfg, gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass))
}

func NewSMTPSenderWithDialer(cfg *config.NotificationConfig, dialer Dialer) *SMTPSender {
	return &SMTPSender{
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		dialer:   dialer,
	}
}

// Send delivers one message to every recipient with a plain-text body and an HTML alternative.
func (s *SMTPSender) Send(to []string, subject, plainBody, htmlBody string) error {
	if len(to) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
