// Package safe provides helpers for unsigned arithmetic with overflow checks.
package safe

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnderflow is returned when a subtraction would go below zero.
	ErrUnderflow = errors.New("uint64 underflow")
	// ErrOverflow is returned when an addition would exceed math.MaxUint64.
	ErrOverflow = errors.New("uint64 overflow")
)

// AddUint64 returns a+b or ErrOverflow.
func AddUint64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, fmt.Errorf("%d + %d: %w", a, b, ErrOverflow)
	}
	return a + b, nil
}

// SubUint64 returns a-b or ErrUnderflow.
func SubUint64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, fmt.Errorf("%d - %d: %w", a, b, ErrUnderflow)
	}
	return a - b, nil
}

// SpanUint64 returns the inclusive count of values in [from, to], i.e. to-from+1.
func SpanUint64(from, to uint64) (uint64, error) {
	next, err := AddUint64(to, 1)
	if err != nil {
		return 0, err
	}
	return SubUint64(next, from)
}
