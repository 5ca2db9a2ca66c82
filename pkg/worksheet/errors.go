package worksheet

import (
	"errors"
	"fmt"
)

// Kind classifies the fatal error conditions Process can return. Every
// other irregularity (empty k-means cluster, off-region centroid, isolated
// small region, non-convergence) is recovered locally and never reaches
// the caller as an error.
type Kind int

const (
	// KindInvalidDimensions means width or height is zero, or
	// len(pixels) != width*height*4.
	KindInvalidDimensions Kind = iota

	// KindInvalidK means MaxColors, after defaulting, falls outside
	// [2,128].
	KindInvalidK

	// KindAllocationFailure means a scratch buffer could not be sized for
	// the requested image (width*height would overflow, or is otherwise
	// unreasonable for a single allocation).
	KindAllocationFailure

	// KindCancelled means the caller's context was done before Process
	// could finish.
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindInvalidDimensions:
		return "InvalidDimensions"
	case KindInvalidK:
		return "InvalidK"
	case KindAllocationFailure:
		return "AllocationFailure"
	case KindCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Error is the single error type Process returns. It wraps an optional
// cause so callers can still errors.Is/errors.As through to context.Canceled
// and similar sentinel values.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("worksheet: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("worksheet: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *Error with the same Kind, so callers can
// write errors.Is(err, &worksheet.Error{Kind: worksheet.KindInvalidK}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}
