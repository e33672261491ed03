package core

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/devblok/vkbind/native"
)

// Kind classifies a failure
type Kind uint8

// Failure classes
const (
	// KindGeneral covers malformed requests that never reached the driver
	KindGeneral Kind = iota
	// KindNative is a non-success result returned by the driver
	KindNative
	// KindEncoding is a string that cannot cross the native boundary
	KindEncoding
	// KindMisuse is a call the wrapper's own state forbids
	KindMisuse
)

func (k Kind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindEncoding:
		return "encoding"
	case KindMisuse:
		return "misuse"
	default:
		return "general"
	}
}

// Error is the error type returned by every fallible operation in this package
type Error struct {
	Kind   Kind
	Op     string
	Result native.Result
	Detail string
	Cause  error
}

// Sentinels matched by kind with errors.Is
var (
	ErrGeneral  = &Error{Kind: KindGeneral}
	ErrNative   = &Error{Kind: KindNative}
	ErrEncoding = &Error{Kind: KindEncoding}
	ErrMisuse   = &Error{Kind: KindMisuse}
)

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString("(): ")
	}
	b.WriteString(e.Kind.String())
	if e.Kind == KindNative {
		b.WriteString(" ")
		b.WriteString(e.Result.String())
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil && e.Kind != KindNative {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on kind, and on result when the target names one
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Result == native.Success || t.Result == e.Result
}

// IsKind reports whether any error in the chain is an *Error of kind k
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// ResultOf returns the native result carried by err, if any
func ResultOf(err error) (native.Result, bool) {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindNative {
		return e.Result, true
	}
	return native.Success, false
}

func nativeError(op string, r native.Result) error {
	return &Error{Kind: KindNative, Op: op, Result: r, Cause: errors.WithStack(r)}
}

func nativeErrorf(op string, r native.Result, format string, args ...interface{}) error {
	return &Error{Kind: KindNative, Op: op, Result: r, Detail: errors.Errorf(format, args...).Error(), Cause: errors.WithStack(r)}
}

func encodingError(op, detail string) error {
	return &Error{Kind: KindEncoding, Op: op, Detail: detail}
}

func misuseError(op, format string, args ...interface{}) error {
	return &Error{Kind: KindMisuse, Op: op, Detail: errors.Errorf(format, args...).Error()}
}

func generalError(op, format string, args ...interface{}) error {
	return &Error{Kind: KindGeneral, Op: op, Detail: errors.Errorf(format, args...).Error()}
}

// check turns a native result into an error
func check(op string, r native.Result) error {
	if r == native.Success {
		return nil
	}
	return nativeError(op, r)
}
