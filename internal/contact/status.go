package contact

// Status is the outcome of the most recent submission attempt.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusSending     Status = "sending"
	StatusSuccess     Status = "success"
	StatusConfigError Status = "config_error"
	StatusError       Status = "error"
)

func (s Status) String() string { return string(s) }

// Transient reports whether the status only lasts while a request is in flight.
func (s Status) Transient() bool {
	return s == StatusSending
}

// Terminal reports whether the status ends a submission attempt.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusConfigError, StatusError:
		return true
	default:
		return false
	}
}

// CanTransition reports whether the submission state machine allows s -> next.
// Only an explicit submit enters sending, and sending only resolves to one of
// the terminal states.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusIdle, StatusSuccess, StatusConfigError, StatusError:
		return next == StatusSending
	case StatusSending:
		return next.Terminal()
	default:
		return false
	}
}
