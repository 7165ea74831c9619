package registry

import "errors"

// Registry errors. All three are expected outcomes that callers are
// meant to branch on with errors.Is; none of them is fatal.
var (
	// ErrActivityNotFound is returned when the named activity does not exist.
	ErrActivityNotFound = errors.New("activity not found")

	// ErrAlreadySignedUp is returned when the student is already on the roster.
	ErrAlreadySignedUp = errors.New("student already signed up for this activity")

	// ErrNotSignedUp is returned when the student is not on the roster.
	ErrNotSignedUp = errors.New("student is not registered for this activity")
)
