package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/wolfman30/consulting-site/pkg/logging"
)

// EmailSender delivers operator mail.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage is one operator email. ReplyTo is usually the visitor who
// filled in the contact form, so answering the alert reaches them directly.
type EmailMessage struct {
	To          string
	Subject     string
	Body        string
	ReplyTo     string
	ReplyToName string
}

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	// SiteName names the sender when FromName is blank.
	SiteName string
}

// SendGridSender sends operator mail through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	from   *mail.Email
	logger *logging.Logger
}

// NewSendGridSender returns nil when no API key is configured.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SendGridSender{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   mail.NewEmail(senderName(cfg), cfg.FromEmail),
		logger: logger,
	}
}

func senderName(cfg SendGridConfig) string {
	if name := strings.TrimSpace(cfg.FromName); name != "" {
		return name
	}
	if site := strings.TrimSpace(cfg.SiteName); site != "" {
		return site + " website"
	}
	return "Website Contact Form"
}

// buildMessage renders msg as a plain-text SendGrid mail.
func (s *SendGridSender) buildMessage(msg EmailMessage) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(s.from)
	m.Subject = msg.Subject
	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", msg.To))
	m.AddPersonalizations(p)
	m.AddContent(mail.NewContent("text/plain", msg.Body))
	if msg.ReplyTo != "" {
		m.SetReplyTo(mail.NewEmail(msg.ReplyToName, msg.ReplyTo))
	}
	return m
}

// Send delivers msg. Any status of 400 or above is an error.
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("notify: sendgrid client not configured")
	}
	response, err := s.client.SendWithContext(ctx, s.buildMessage(msg))
	if err != nil {
		return fmt.Errorf("notify: sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("notify: sendgrid returned status %d", response.StatusCode)
	}
	s.logger.Info("operator alert sent", "to", msg.To, "status", response.StatusCode)
	return nil
}

// StubEmailSender records messages instead of sending them.
type StubEmailSender struct {
	logger *logging.Logger

	mu   sync.Mutex
	sent []EmailMessage
}

// NewStubEmailSender creates a recording sender.
func NewStubEmailSender(logger *logging.Logger) *StubEmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubEmailSender{logger: logger}
}

func (s *StubEmailSender) Send(ctx context.Context, msg EmailMessage) error {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	s.logger.Debug("operator alert recorded", "to", msg.To, "subject", msg.Subject)
	return nil
}

// Sent returns the messages passed to Send.
func (s *StubEmailSender) Sent() []EmailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EmailMessage, len(s.sent))
	copy(out, s.sent)
	return out
}
