package contact

import (
	"strings"

	"github.com/wolfman30/consulting-site/pkg/logging"
)

// Service carries the injected webhook configuration and hands out one
// Controller per rendering of the contact form.
type Service struct {
	endpoint  string
	poster    Poster
	logger    *logging.Logger
	observers []Observer
}

// NewService creates a contact service. An empty endpoint is allowed; every
// submission then ends in config_error.
func NewService(endpoint string, poster Poster, logger *logging.Logger, observers ...Observer) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		logger.Component("contact").Warn("contact webhook endpoint not configured; submissions will report config_error")
	}
	return &Service{
		endpoint:  endpoint,
		poster:    poster,
		logger:    logger,
		observers: observers,
	}
}

// Configured reports whether a webhook endpoint was provided.
func (s *Service) Configured() bool {
	return s.endpoint != ""
}

// NewForm returns a fresh idle controller seeded with initial.
func (s *Service) NewForm(initial FormData) *Controller {
	return NewController(s.endpoint, s.poster,
		WithLogger(s.logger),
		WithObservers(s.observers...),
		WithInitialForm(initial),
	)
}
