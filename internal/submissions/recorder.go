package submissions

import (
	"context"
	"time"

	"github.com/wolfman30/consulting-site/internal/contact"
	"github.com/wolfman30/consulting-site/pkg/logging"
)

// DefaultRecordTimeout bounds one write to the submission log.
const DefaultRecordTimeout = 5 * time.Second

// FailureMetrics counts records that could not be written.
type FailureMetrics interface {
	ObserveSubmissionLogFailure()
}

// Recorder writes every finished contact attempt to a Repository.
type Recorder struct {
	repo    Repository
	logger  *logging.Logger
	metrics FailureMetrics
	timeout time.Duration
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithRecordTimeout overrides DefaultRecordTimeout.
func WithRecordTimeout(d time.Duration) RecorderOption {
	return func(r *Recorder) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewRecorder creates a contact.Observer backed by repo.
func NewRecorder(repo Repository, logger *logging.Logger, metrics FailureMetrics, opts ...RecorderOption) *Recorder {
	if logger == nil {
		logger = logging.Default()
	}
	r := &Recorder{repo: repo, logger: logger, metrics: metrics, timeout: DefaultRecordTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ObserveAttempt implements contact.Observer. It returns within the record
// timeout even if the repository ignores its context; write failures are
// logged only.
func (r *Recorder) ObserveAttempt(ctx context.Context, attempt contact.Attempt) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- r.repo.Record(ctx, FromAttempt(attempt)) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		r.logger.Error("failed to record contact submission", "error", err, "attempt_id", attempt.ID, "status", attempt.Status)
		if r.metrics != nil {
			r.metrics.ObserveSubmissionLogFailure()
		}
	}
}
