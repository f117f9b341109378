package htj2k

import (
	"errors"
	"fmt"
)

// Common decode failures. The messages are part of the contract: they are
// what callers find in their message buffer.
var (
	// ErrInvalidArguments indicates nil or empty input or a nil result slot
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrNoComponents indicates a codestream without components
	ErrNoComponents = errors.New("codestream has no components")

	// ErrSubsampled indicates components with differing reconstructed sizes
	ErrSubsampled = errors.New("subsampled components are not yet supported")

	// ErrDownsamplingMismatch indicates components with differing XRsiz/YRsiz
	ErrDownsamplingMismatch = errors.New("component downsampling mismatch is not supported")

	// ErrBitDepthMismatch indicates components with differing precision
	ErrBitDepthMismatch = errors.New("mixed component bit depth is not supported")

	// ErrSignednessMismatch indicates a mix of signed and unsigned components
	ErrSignednessMismatch = errors.New("mixed signed/unsigned components are not supported")

	// ErrInvalidBitDepth indicates a component precision outside 1-38 bits
	ErrInvalidBitDepth = errors.New("component bit depth is out of range")

	// ErrTooManyComponents indicates more than 65535 components
	ErrTooManyComponents = errors.New("too many components")

	// ErrPullFailed indicates the engine had no line for a requested component
	ErrPullFailed = errors.New("failed to pull line from codestream")

	// ErrUnsupportedLayout indicates a line that is neither integer nor float
	ErrUnsupportedLayout = errors.New("unsupported line buffer layout")

	// ErrComponentOrder indicates a component index the pipeline cannot accept
	ErrComponentOrder = errors.New("decoding engine returned component out of order")

	// ErrAllocation indicates the output buffer could not be allocated
	ErrAllocation = errors.New("memory allocation failure")

	// ErrNoEngine indicates that no decoding engine is available
	ErrNoEngine = errors.New("no decoding engine registered")

	// ErrUnknownFault is used for engine faults that carry no message
	ErrUnknownFault = errors.New("unknown decoding engine error")
)

// Status is the outcome of a decode call.
type Status int

const (
	// StatusOK means the result entity holds a decoded image
	StatusOK Status = iota
	// StatusUnsupported means the codestream uses a feature this decoder rejects
	StatusUnsupported
	// StatusError means invalid arguments or an internal/engine failure
	StatusError
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusUnsupported:
		return "UNSUPPORTED"
	case StatusError:
		return "ERROR"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ErrorKind classifies decode failures.
type ErrorKind int

const (
	// KindInvalidArgument is detected before any engine interaction
	KindInvalidArgument ErrorKind = iota + 1
	// KindUnsupportedFeature is detected during validation or line conversion
	KindUnsupportedFeature
	// KindInternal covers allocation failures and every engine fault
	KindInternal
)

// String returns the kind name
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindUnsupportedFeature:
		return "UnsupportedFeature"
	case KindInternal:
		return "InternalError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the only error type that leaves a decode call.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind onto the decode status.
func (e *Error) Status() Status {
	if e.Kind == KindUnsupportedFeature {
		return StatusUnsupported
	}
	return StatusError
}

func newError(kind ErrorKind, err error) *Error {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		err = ErrUnknownFault
		msg = err.Error()
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func unsupported(err error) *Error {
	return newError(KindUnsupportedFeature, err)
}

func internal(err error) *Error {
	return newError(KindInternal, err)
}

// faultError converts a recovered panic value into an internal error. An
// *Error raised on purpose keeps its kind.
func faultError(r any) *Error {
	switch v := r.(type) {
	case *Error:
		return v
	case error:
		return internal(v)
	case string:
		return internal(errors.New(v))
	default:
		return internal(ErrUnknownFault)
	}
}
