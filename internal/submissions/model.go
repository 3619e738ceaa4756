package submissions

import (
	"strings"
	"time"

	"github.com/wolfman30/consulting-site/internal/contact"
)

// Submission is the operator-side record of one contact form attempt.
type Submission struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Company    string    `json:"company"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"http_status,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromAttempt converts a finished controller attempt into a record.
func FromAttempt(a contact.Attempt) *Submission {
	return &Submission{
		ID:         a.ID,
		Status:     a.Status.String(),
		Name:       a.Form.Name,
		Email:      a.Form.Email,
		Company:    a.Form.Company,
		Message:    a.Form.Message,
		HTTPStatus: a.HTTPStatus,
		Error:      a.Error,
		DurationMS: a.Duration.Milliseconds(),
		CreatedAt:  a.CreatedAt,
	}
}

// Validate checks the fields the store relies on.
func (s *Submission) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrMissingID
	}
	return validateStatus(s.Status)
}

// ListFilter narrows a listing.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}

func validateStatus(status string) error {
	switch contact.Status(status) {
	case contact.StatusSuccess, contact.StatusConfigError, contact.StatusError:
		return nil
	default:
		return ErrInvalidStatus
	}
}
