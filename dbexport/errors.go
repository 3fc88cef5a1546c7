package dbexport

import (
	"errors"
	"fmt"
)

// Kind classifies the failures an export can end with.
type Kind int

const (
	KindUnknown Kind = iota
	KindArgument
	KindConnection
	KindQuery
	KindEmptyResult
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "argument"
	case KindConnection:
		return "connection"
	case KindQuery:
		return "query"
	case KindEmptyResult:
		return "empty result"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the export pipeline.
// Err, when set, is the driver or OS error and its message is kept verbatim.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
