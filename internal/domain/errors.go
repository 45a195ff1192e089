package domain

import "errors"

// ErrIdentityNotFound is returned by identity stores when no record exists
// for the requested subject id.
var ErrIdentityNotFound = errors.New("identity not found")
