package mailer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/BruksfildServices01/petspa-booking/internal/config"
	"github.com/BruksfildServices01/petspa-booking/internal/notification"
)

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTPSender) message(to, subject, htmlBody string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return m
}

// Send ignores ctx cancellation once the SMTP dialog has started;
// gomail has no context support.
func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(s.message(to, subject, htmlBody)); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}

// LogSender writes emails to the log instead of sending them. Used
// when no SMTP host is configured.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, to, subject, _ string) error {
	s.log.Info().Str("to", to).Str("subject", subject).Msg("email not sent, smtp disabled")
	return nil
}

// New picks the SMTP sender when a host is configured.
func New(cfg config.SMTPConfig, log zerolog.Logger) notification.Sender {
	if cfg.Host == "" {
		return NewLogSender(log)
	}
	return NewSMTPSender(cfg)
}

var (
	_ notification.Sender = (*SMTPSender)(nil)
	_ notification.Sender = (*LogSender)(nil)
)
