package contact

import "errors"

var (
	// ErrSubmissionInFlight is returned when Submit is called while a previous
	// submission from the same form is still sending.
	ErrSubmissionInFlight = errors.New("contact: submission already in flight")

	// ErrUnknownField is returned for a field name outside the contact form.
	ErrUnknownField = errors.New("contact: unknown form field")

	// ErrInvalidTransition is returned when the submission state machine
	// refuses a status change.
	ErrInvalidTransition = errors.New("contact: invalid status transition")

	// ErrEndpointNotConfigured is the diagnostic recorded for config_error attempts.
	ErrEndpointNotConfigured = errors.New("contact: webhook endpoint not configured")
)
