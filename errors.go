package aerocache

import (
	"errors"
	"fmt"
)

var (
	ErrNotStarted  = errors.New("aerocache: connection not started")
	ErrInvalidKey  = errors.New("aerocache: invalid key")
	ErrBadEnvelope = errors.New("aerocache: bad envelope content")

	ErrEmptySegment    = errors.New("empty string")
	ErrSegmentNullByte = errors.New("includes null character")
)

// Op names the store call that failed.
type Op string

const (
	OpGet    Op = "get"
	OpPut    Op = "put"
	OpRemove Op = "remove"
)

// StoreError wraps a driver failure other than a miss.
type StoreError struct {
	Op  Op
	Key string
	Err error
}

func (e *StoreError) Error() string {
	var what string
	switch e.Op {
	case OpGet:
		what = "error getting result"
	case OpPut:
		what = "error writing data"
	case OpRemove:
		what = "error dropping item"
	default:
		what = "store error"
	}
	if e.Err == nil {
		return fmt.Sprintf("aerocache: %s (%s)", what, e.Key)
	}
	return fmt.Sprintf("aerocache: %s (%s): %v", what, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ConnectError is returned by Start when the dialer fails.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("aerocache: connect: %v", e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

func badEnvelope(reason string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %s: %w", ErrBadEnvelope, reason, cause)
	}
	return fmt.Errorf("%w: %s", ErrBadEnvelope, reason)
}
