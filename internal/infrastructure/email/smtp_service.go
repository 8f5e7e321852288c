package email

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"localbiz-backend/pkg/logger"
)

// Message is a plain-text email.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

// ErrHeaderInjection rejects header values carrying CR or LF.
var ErrHeaderInjection = errors.New("header values must not contain newlines")

func (m Message) check() error {
	if len(m.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	headers := append([]string{m.ReplyTo, m.Subject}, m.To...)
	for _, v := range headers {
		if strings.ContainsAny(v, "\r\n") {
			return ErrHeaderInjection
		}
	}
	return nil
}

// Mailer sends outbound mail. Callers decide whether a failure is fatal.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// =====================================================
// SMTP
// =====================================================

type smtpMailer struct {
	smtpAddr string
	smtpFrom string
	auth     smtp.Auth
}

func NewSMTPMailer(host, port, username, password, from string) Mailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &smtpMailer{
		smtpAddr: host + ":" + port,
		smtpFrom: from,
		auth:     auth,
	}
}

func (s *smtpMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := msg.check(); err != nil {
		return err
	}

	err := smtp.SendMail(s.smtpAddr, s.auth, s.smtpFrom, msg.To, buildMessage(s.smtpFrom, msg))
	if err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        msg.To,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildMessage(from string, msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

// =====================================================
// CONSOLE (development)
// =====================================================

type consoleMailer struct {
	from string
}

// NewConsoleMailer logs messages instead of delivering them.
func NewConsoleMailer(from string) Mailer {
	return &consoleMailer{from: from}
}

func (c *consoleMailer) Send(_ context.Context, msg Message) error {
	if err := msg.check(); err != nil {
		return err
	}
	logger.Info("email (console backend)", map[string]interface{}{
		"from":    c.from,
		"to":      msg.To,
		"subject": msg.Subject,
		"body":    msg.Body,
	})
	return nil
}
