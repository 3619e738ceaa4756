package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/consulting-site/internal/webhook"
	"github.com/wolfman30/consulting-site/pkg/logging"
)

var contactTracer = otel.Tracer("consulting-site.internal.contact")

// Poster delivers the serialized form to the webhook endpoint.
type Poster interface {
	PostJSON(ctx context.Context, url string, payload any) error
}

// Attempt describes one finished submission.
type Attempt struct {
	ID         string        `json:"id"`
	Status     Status        `json:"status"`
	Form       FormData      `json:"form"`
	HTTPStatus int           `json:"http_status,omitempty"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
	CreatedAt  time.Time     `json:"created_at"`
}

// Observer is told about every finished attempt. Observers cannot influence
// the outcome; they log, persist or alert.
type Observer interface {
	ObserveAttempt(ctx context.Context, attempt Attempt)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, attempt Attempt)

func (f ObserverFunc) ObserveAttempt(ctx context.Context, attempt Attempt) { f(ctx, attempt) }

// Controller owns the state of one rendering of the contact form: its
// FormData and its SubmissionStatus.
type Controller struct {
	endpoint  string
	poster    Poster
	logger    *logging.Logger
	observers []Observer
	now       func() time.Time

	mu     sync.Mutex
	form   FormData
	status Status
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger.Component("contact")
		}
	}
}

// WithObservers registers attempt observers.
func WithObservers(observers ...Observer) Option {
	return func(c *Controller) {
		for _, o := range observers {
			if o != nil {
				c.observers = append(c.observers, o)
			}
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithInitialForm seeds the form, e.g. from a posted HTML form.
func WithInitialForm(form FormData) Option {
	return func(c *Controller) {
		c.form = form
	}
}

// NewController creates a controller in the idle state. endpoint is the
// webhook URL; an empty endpoint is valid and yields config_error on submit.
func NewController(endpoint string, poster Poster, opts ...Option) *Controller {
	c := &Controller{
		endpoint: strings.TrimSpace(endpoint),
		poster:   poster,
		logger:   logging.Default().Component("contact"),
		now:      time.Now,
		status:   StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Form returns the current form value.
func (c *Controller) Form() FormData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Status returns the current submission status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Disabled reports whether the submit control must be disabled.
func (c *Controller) Disabled() bool {
	return c.Status().Transient()
}

// SetField replaces one field of the form.
func (c *Controller) SetField(field Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := c.form.With(field, value)
	if err != nil {
		return err
	}
	c.form = next
	return nil
}

// Submit sends the current form to the webhook and returns the resulting
// status. Required-field gating happens before Submit is called. Failures
// are absorbed into the status. Submit errors only when it refuses to run:
// ErrSubmissionInFlight while sending, or ErrInvalidTransition.
func (c *Controller) Submit(ctx context.Context) (Status, error) {
	c.mu.Lock()
	if c.status == StatusSending {
		c.mu.Unlock()
		return StatusSending, ErrSubmissionInFlight
	}
	if err := c.transitionLocked(StatusSending); err != nil {
		status := c.status
		c.mu.Unlock()
		return status, err
	}
	form := c.form
	c.mu.Unlock()

	ctx, span := contactTracer.Start(ctx, "contact.submit")
	defer span.End()

	attempt := Attempt{
		ID:        uuid.NewString(),
		Form:      form,
		CreatedAt: c.now().UTC(),
	}
	start := c.now()

	switch {
	case c.endpoint == "":
		attempt.Status = StatusConfigError
		attempt.Error = ErrEndpointNotConfigured.Error()
		c.logger.Error("contact webhook endpoint not configured", "attempt_id", attempt.ID)
	case c.poster == nil:
		attempt.Status = StatusError
		attempt.Error = "contact: no webhook poster"
		c.logger.Error("contact webhook poster missing", "attempt_id", attempt.ID)
	default:
		err := c.poster.PostJSON(ctx, c.endpoint, form)
		if err != nil {
			attempt.Status = StatusError
			attempt.Error = err.Error()
			var statusErr *webhook.StatusError
			if errors.As(err, &statusErr) {
				attempt.HTTPStatus = statusErr.Code
				c.logger.Error("contact webhook rejected submission",
					"attempt_id", attempt.ID,
					"status", statusErr.Code,
					"status_text", statusErr.Status,
				)
			} else {
				c.logger.Error("contact webhook request failed", "attempt_id", attempt.ID, "error", err)
				span.RecordError(err)
			}
		} else {
			attempt.Status = StatusSuccess
		}
	}
	attempt.Duration = c.now().Sub(start)

	c.mu.Lock()
	if err := c.transitionLocked(attempt.Status); err != nil {
		c.mu.Unlock()
		c.logger.Error("contact submission left in an invalid state", "attempt_id", attempt.ID, "error", err)
		return StatusSending, err
	}
	if attempt.Status == StatusSuccess {
		c.form = FormData{}
	}
	c.mu.Unlock()

	span.SetAttributes(
		attribute.String("contact.attempt_id", attempt.ID),
		attribute.String("contact.status", attempt.Status.String()),
	)
	if attempt.Status == StatusSuccess {
		c.logger.Info("contact submission delivered", "attempt_id", attempt.ID, "duration_ms", attempt.Duration.Milliseconds())
	}

	for _, o := range c.observers {
		o.ObserveAttempt(ctx, attempt)
	}
	return attempt.Status, nil
}

// transitionLocked applies next if the state machine allows it. c.mu must
// be held.
func (c *Controller) transitionLocked(next Status) error {
	if !c.status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.status, next)
	}
	c.status = next
	return nil
}
