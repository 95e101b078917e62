package notify

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender delivers operator notifications over SMTP. All settings come from
// the environment; when SMTP_HOST is unset the sender is disabled and sends
// become no-ops, so local setups work without a mail server.
type Sender struct {
	host     string
	port     string
	username string
	password string
	from     string
	to       string
	log      *logrus.Logger
}

func NewSender(log *logrus.Logger) *Sender {
	return &Sender{
		host:     os.Getenv("SMTP_HOST"),
		port:     getEnv("SMTP_PORT", "587"),
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     getEnv("SMTP_SENDER", "noreply@lease.local"),
		to:       os.Getenv("NOTIFY_EMAIL"),
		log:      log,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Enabled reports whether the sender has enough configuration to deliver.
func (s *Sender) Enabled() bool {
	return s.host != "" && s.to != ""
}

// Send delivers a plain-text notification to the configured operator address.
func (s *Sender) Send(subject, body string) error {
	if !s.Enabled() {
		s.log.WithField("subject", subject).Debug("email sender disabled, notification skipped")
		return nil
	}

	e := email.NewEmail()
	e.From = s.from
	e.To = []string{s.to}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := e.Send(addr, auth); err != nil {
		s.log.Errorf("Failed to send email to %s: %v", s.to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.log.Infof("Email sent to %s: %s", s.to, subject)
	return nil
}
