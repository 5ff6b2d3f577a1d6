package cloud

import (
	"errors"
	"fmt"
)

// ErrTagLookup is returned when an instance tag cannot be retrieved.
var ErrTagLookup = errors.New("instance tag lookup failed")

// FatalError reports a fact that could not be resolved and that the
// configuration marks as required. The entry point decides whether the
// process terminates; accessors never exit on their own.
type FatalError struct {
	Fact Fact
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Fact, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
