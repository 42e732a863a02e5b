package notifications

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/creostudios/studiosvc/domain"
)

// SMTPMailer implements domain.Mailer over a plain SMTP relay
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer creates a new SMTP notification service
func NewSMTPMailer(host string, port int, username, password, from string) domain.Mailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendOTP implements domain.Mailer. If the relay is not configured the code
// is logged instead of sent, so local development works without SMTP access.
func (m *SMTPMailer) SendOTP(to, code string, ttl time.Duration) error {
	subject := "Your verification code for Creo Studios"
	body := fmt.Sprintf(
		"Hello!\r\n\r\nYour one-time password is: %s\r\n\r\nIt is valid for %d minutes. If you didn't request this, please ignore this email.\r\n",
		code, int(ttl.Minutes()),
	)

	if m.from == "" || m.host == "" {
		log.Info().Str("to", to).Str("code", code).Msg("mail relay not configured, logging OTP instead")
		return nil
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body))

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	return nil
}
