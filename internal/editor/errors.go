package editor

// ValidationError is a user-correctable input problem detected before any
// persistence call. The editor stays open and nothing is written.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErr(msg string) error {
	return &ValidationError{Msg: msg}
}
