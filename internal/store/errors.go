package store

import (
	"errors"
	"fmt"
)

// ErrNoPriorData signals a diff request before any successful scan.
// It is informational: callers surface it as a message, not a failure.
var ErrNoPriorData = errors.New("no previous scan to compare with")

// DeserializationError reports a malformed persisted snapshot. It is
// fatal at load time; the store never degrades to an empty state when
// a snapshot exists but cannot be decoded.
type DeserializationError struct {
	Reason string
	Cause  error
}

func (e *DeserializationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("snapshot deserialization failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("snapshot deserialization failed: %s", e.Reason)
}

func (e *DeserializationError) Unwrap() error {
	return e.Cause
}
