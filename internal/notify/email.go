package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
)

// EmailConfig describes the SMTP relay and recipients.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// EmailSink sends plain-text mail through an SMTP relay.
type EmailSink struct {
	cfg  EmailConfig
	send sendFunc
}

// NewEmailSink validates cfg.
func NewEmailSink(cfg EmailConfig) (*EmailSink, error) {
	if cfg.Host == "" || cfg.From == "" || len(cfg.To) == 0 {
		return nil, errors.New("email: host, from and recipients are required")
	}
	return &EmailSink{
		cfg: cfg,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}, nil
}

func (s *EmailSink) Name() string {
	return "email"
}

// Send delivers msg. Relays that do not offer AUTH are retried unauthenticated.
func (s *EmailSink) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mail := email.NewEmail()
	mail.From = s.cfg.From
	mail.To = s.cfg.To
	mail.Subject = msg.Subject
	mail.Text = []byte(msg.Text)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	err := s.send(mail, addr, auth)
	if err != nil && auth != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = s.send(mail, addr, nil)
	}
	return err
}
