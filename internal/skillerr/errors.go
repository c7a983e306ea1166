// Package skillerr defines the error kinds shared by the catalog, fetch and
// install layers. Every error keeps a displayable message while letting
// callers branch on its Kind with errors.Is or KindOf.
package skillerr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindNotFound Kind = iota
	KindIOFailure
	KindProcessFailure
	KindParseFailure
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindIOFailure:
		return "io failure"
	case KindProcessFailure:
		return "process failure"
	case KindParseFailure:
		return "parse failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is comparisons; only Kind is compared.
var (
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "not found"}
	ErrIOFailure      = &Error{Kind: KindIOFailure, Message: "io failure"}
	ErrProcessFailure = &Error{Kind: KindProcessFailure, Message: "process failure"}
	ErrParseFailure   = &Error{Kind: KindParseFailure, Message: "parse failure"}
)

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string, err error) *Error {
	return New(KindNotFound, message, err)
}

func IO(message string, err error) *Error {
	return New(KindIOFailure, message, err)
}

func Process(message string, err error) *Error {
	return New(KindProcessFailure, message, err)
}

func Parse(message string, err error) *Error {
	return New(KindParseFailure, message, err)
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
