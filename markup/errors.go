package markup

import (
	"errors"
	"fmt"
)

// ErrMalformed matches every *MalformedMarkupError with errors.Is.
var ErrMalformed = errors.New("malformed markup")

// MalformedMarkupError reports markup that cannot be parsed. Offset is the
// byte offset of the offending tag in the source text.
type MalformedMarkupError struct {
	Offset int
	Reason string
}

func (e *MalformedMarkupError) Error() string {
	return fmt.Sprintf("malformed markup at byte %d: %s", e.Offset, e.Reason)
}

// Is makes errors.Is(err, ErrMalformed) succeed.
func (e *MalformedMarkupError) Is(target error) bool {
	return target == ErrMalformed
}

func malformed(offset int, format string, args ...interface{}) error {
	return &MalformedMarkupError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
