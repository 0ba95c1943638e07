/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tourney

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports malformed or out of range arguments.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotReady reports an operation attempted before the state it
	// depends on is complete.
	ErrNotReady = errors.New("not ready")
	// ErrNotFound reports a referenced player, tournament or round that
	// does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDataFormat reports data that does not have the expected shape.
	ErrDataFormat = errors.New("data format")
)

// NotReadyError names the round that blocks progress.
type NotReadyError struct {
	Round  int
	Reason string
}

func (e *NotReadyError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("round %d is not complete", e.Round)
	}
	return fmt.Sprintf("round %d is not complete: %s", e.Round, e.Reason)
}

func (e *NotReadyError) Unwrap() error {
	return ErrNotReady
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func dataFormatf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDataFormat, fmt.Sprintf(format, args...))
}
