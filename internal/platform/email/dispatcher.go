package email

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/campuslib/library_management_app/internal/core/ports/services"
	"gopkg.in/gomail.v2"
)

// SMTPConfig carries the dialer settings for the SMTP dispatcher.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// IsConfigured reports whether enough settings are present to dial.
func (c SMTPConfig) IsConfigured() bool {
	return c.Host != "" && c.From != ""
}

type smtpDispatcher struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPDispatcher builds a NotificationDispatcher backed by an SMTP server.
func NewSMTPDispatcher(cfg SMTPConfig) portssvc.NotificationDispatcher {
	return &smtpDispatcher{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (d *smtpDispatcher) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", d.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	if err := d.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

type noopDispatcher struct{}

// NewNoopDispatcher builds a dispatcher that logs instead of sending. Used
// when SMTP is not configured so local runs do not need a mail server.
func NewNoopDispatcher() portssvc.NotificationDispatcher {
	return noopDispatcher{}
}

func (noopDispatcher) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	slog.Info("mail delivery skipped, SMTP not configured",
		slog.String("to", to),
		slog.String("subject", subject))
	return nil
}
