package app

import (
	"errors"
	"fmt"
)

// ErrAlreadyMember is returned on a duplicate join of the same room by the
// same live connection handle. A reconnect gets a fresh handle, so only a
// repeat join over the same socket is refused.
var ErrAlreadyMember = errors.New("already joined this lecture")

// ValidationError rejects a request missing a required field. It is reported
// to the originating connection only and leaves all state untouched.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
