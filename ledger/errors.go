// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"fmt"
	"time"
)

// DefaultRetryAfter is the delay callers are advised to wait before retrying
// after a transient storage failure.
const DefaultRetryAfter = 50 * time.Second

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDuplicateVote   = errors.New("duplicate vote")
	ErrTransient       = errors.New("transient storage failure")
)

// TransientError reports that the store could not complete an operation.
// Nothing was applied; the caller owns the retry.
type TransientError struct {
	Op         string
	RetryAfter time.Duration
	Err        error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func (e *TransientError) Is(target error) bool {
	return target == ErrTransient
}

// RetryAfter returns the retry hint carried by err, if any.
func RetryAfter(err error) (time.Duration, bool) {
	var te *TransientError
	if errors.As(err, &te) {
		return te.RetryAfter, true
	}
	return 0, false
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
