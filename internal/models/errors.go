package models

// ValidationError is a recoverable, user-facing rejection of a transition.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

var (
	// ErrZeroDuration is returned when a countdown is started without a duration.
	ErrZeroDuration = &ValidationError{Field: "duration", Message: "set a duration of at least 1 second"}

	// ErrConfigureLocked is returned when the duration is changed outside Idle.
	ErrConfigureLocked = &ValidationError{Field: "duration", Message: "duration can only be changed while the timer is idle"}
)
