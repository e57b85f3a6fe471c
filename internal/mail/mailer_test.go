package mail

import (
	"strings"
	"sync"
	"testing"

	gomail "gopkg.in/gomail.v2"
)

type captureSender struct {
	mu   sync.Mutex
	sent []*gomail.Message
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, m...)
	return nil
}

func newTestMailer() (*Mailer, *captureSender) {
	sink := &captureSender{}
	return &Mailer{
		From:        "noreply@workcompass.com",
		FrontendURL: "https://app.example.com",
		dialer:      sink,
	}, sink
}

func TestSendPasswordResetLinksToken(t *testing.T) {
	m, sink := newTestMailer()

	if err := m.SendPasswordReset("jane@example.com", "Jane", "tok123"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(sink.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sink.sent))
	}

	msg := sink.sent[0]
	if got := msg.GetHeader("To"); len(got) != 1 || got[0] != "jane@example.com" {
		t.Fatalf("unexpected To: %v", got)
	}

	var body strings.Builder
	if _, err := msg.WriteTo(&body); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !strings.Contains(body.String(), "reset=3Dtrue&token=3Dtok123") &&
		!strings.Contains(body.String(), "reset=true&token=tok123") {
		t.Fatal("reset URL with token missing from body")
	}
}

func TestSendWelcomeFallsBackOnEmptyName(t *testing.T) {
	m, sink := newTestMailer()

	if err := m.SendWelcome("new@example.com", ""); err != nil {
		t.Fatalf("send: %v", err)
	}

	var body strings.Builder
	if _, err := sink.sent[0].WriteTo(&body); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !strings.Contains(body.String(), "Hi there") {
		t.Fatal("expected fallback greeting")
	}
}

func TestDialerBuiltOnce(t *testing.T) {
	m, sink := newTestMailer()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.SendWelcome("x@example.com", "X")
		}()
	}
	wg.Wait()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.sent) != 8 {
		t.Fatalf("expected 8 sends, got %d", len(sink.sent))
	}
}
