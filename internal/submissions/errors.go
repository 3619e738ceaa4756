package submissions

import "errors"

var (
	// ErrSubmissionNotFound is returned when a submission is not found
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrMissingID is returned when a submission is recorded without an ID
	ErrMissingID = errors.New("submission id is required")

	// ErrInvalidStatus is returned for a status filter outside the known set
	ErrInvalidStatus = errors.New("invalid submission status")
)
