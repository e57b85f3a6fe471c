// Package mail sends transactional email over SMTP. The dialer is a
// process-wide resource built once on first use; construction is guarded so
// concurrent first sends cannot race it.
package mail

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	gomail "gopkg.in/gomail.v2"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends mail through a lazily constructed SMTP dialer.
type Mailer struct {
	From        string
	FrontendURL string

	once   sync.Once
	dialer sender
}

// NewFromEnv builds a Mailer from SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS,
// EMAIL_FROM and FRONTEND_URL. The connection is not opened until the first
// send.
func NewFromEnv() *Mailer {
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "noreply@workcompass.com"
	}
	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:5173"
	}
	return &Mailer{From: from, FrontendURL: frontend}
}

func (m *Mailer) send(msg *gomail.Message) error {
	m.once.Do(func() {
		if m.dialer != nil {
			return // injected in tests
		}
		host := os.Getenv("SMTP_HOST")
		if host == "" {
			host = "smtp.gmail.com"
		}
		port := 587
		if v := os.Getenv("SMTP_PORT"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				port = parsed
			}
		}
		m.dialer = gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"))
	})
	return m.dialer.DialAndSend(msg)
}

// SendWelcome greets a new user. Callers treat failures as non-fatal.
func (m *Mailer) SendWelcome(to, name string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.From, "WorkCompass")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Welcome to WorkCompass!")
	msg.SetBody("text/plain", welcomeText(name, m.FrontendURL))
	msg.AddAlternative("text/html", welcomeHTML(name, m.FrontendURL))
	return m.send(msg)
}

// SendPasswordReset mails a reset link. The caller's HTTP response must not
// depend on the outcome.
func (m *Mailer) SendPasswordReset(to, name, resetToken string) error {
	resetURL := fmt.Sprintf("%s/?reset=true&token=%s", m.FrontendURL, resetToken)
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.From, "WorkCompass")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset Your WorkCompass Password")
	msg.SetBody("text/plain", resetText(name, resetURL))
	msg.AddAlternative("text/html", resetHTML(name, resetURL))
	return m.send(msg)
}

// SendFeedback relays a user's feedback to the configured inbox.
func (m *Mailer) SendFeedback(to, fromEmail, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.From, "WorkCompass")
	msg.SetHeader("To", to)
	msg.SetHeader("Reply-To", fromEmail)
	msg.SetHeader("Subject", "[Feedback] "+subject)
	msg.SetBody("text/plain", body)
	return m.send(msg)
}
