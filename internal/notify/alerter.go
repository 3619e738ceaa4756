package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wolfman30/consulting-site/internal/contact"
	"github.com/wolfman30/consulting-site/pkg/logging"
)

const alertSendTimeout = 10 * time.Second

// FailureAlerter emails the site operator when a contact submission ends in
// config_error or error, so the lost message can be followed up by hand.
// Mail is sent in the background; the visitor's response never waits on it.
type FailureAlerter struct {
	sender   EmailSender
	operator string
	site     string
	logger   *logging.Logger

	wg sync.WaitGroup
}

// NewFailureAlerter returns nil when there is no sender or operator address.
func NewFailureAlerter(sender EmailSender, operatorEmail, siteName string, logger *logging.Logger) *FailureAlerter {
	operatorEmail = strings.TrimSpace(operatorEmail)
	if sender == nil || operatorEmail == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &FailureAlerter{sender: sender, operator: operatorEmail, site: siteName, logger: logger}
}

// ObserveAttempt implements contact.Observer.
func (a *FailureAlerter) ObserveAttempt(ctx context.Context, attempt contact.Attempt) {
	if a == nil {
		return
	}
	if attempt.Status != contact.StatusConfigError && attempt.Status != contact.StatusError {
		return
	}

	msg := EmailMessage{
		To:          a.operator,
		Subject:     alertSubject(a.site, attempt.Status),
		Body:        alertBody(attempt),
		ReplyTo:     attempt.Form.Email,
		ReplyToName: attempt.Form.Name,
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertSendTimeout)
		defer cancel()
		if err := a.sender.Send(ctx, msg); err != nil {
			a.logger.Error("failed to send contact failure alert", "error", err, "attempt_id", attempt.ID)
		}
	}()
}

// Wait blocks until every alert in flight has been sent or has failed.
func (a *FailureAlerter) Wait() {
	if a == nil {
		return
	}
	a.wg.Wait()
}

func alertSubject(site string, status contact.Status) string {
	prefix := "[contact form]"
	if site != "" {
		prefix = "[" + site + " contact form]"
	}
	if status == contact.StatusConfigError {
		return prefix + " webhook endpoint is not configured"
	}
	return prefix + " submission could not be delivered"
}

func alertBody(attempt contact.Attempt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A contact form submission ended with status %q.\n\n", attempt.Status)
	fmt.Fprintf(&b, "Attempt:  %s\n", attempt.ID)
	fmt.Fprintf(&b, "When:     %s\n", attempt.CreatedAt.Format(time.RFC3339))
	if attempt.HTTPStatus != 0 {
		fmt.Fprintf(&b, "Webhook:  HTTP %d\n", attempt.HTTPStatus)
	}
	if attempt.Error != "" {
		fmt.Fprintf(&b, "Error:    %s\n", attempt.Error)
	}
	b.WriteString("\nThe visitor was asked to retry or email directly. Their message:\n\n")
	fmt.Fprintf(&b, "Name:     %s\n", attempt.Form.Name)
	fmt.Fprintf(&b, "Email:    %s\n", attempt.Form.Email)
	if attempt.Form.Company != "" {
		fmt.Fprintf(&b, "Company:  %s\n", attempt.Form.Company)
	}
	fmt.Fprintf(&b, "\n%s\n", attempt.Form.Message)
	return b.String()
}
