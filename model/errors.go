package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRange: a lower bound exceeds its upper bound, or a bound does not
	// fit the parameter's kind.
	ErrInvalidRange = errors.New("invalid range")

	// ErrUnsupportedType: a parameter is not an integer kind, or the result type
	// has no DefaultBuildTimeValue provider.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnresolvedConstant: a named bound could not be evaluated at build time.
	ErrUnresolvedConstant = errors.New("unresolved constant")

	// ErrDomainTooLarge: the enumerated domain exceeds the configured ceiling.
	ErrDomainTooLarge = errors.New("domain too large")

	// ErrNonTotalComputation: the original computation failed for an in-range tuple.
	ErrNonTotalComputation = errors.New("non-total computation")
)

// Error is a build-time failure tied to the declaration that caused it.
type Error struct {
	Kind     error
	Cause    error
	Function string
	Param    string
	Names    []string
	Tuple    []Int
	Detail   string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Function != "" {
		b.WriteString(e.Function)
		if e.Tuple != nil {
			b.WriteString(FormatTuple(e.Names, e.Tuple))
		}
		b.WriteString(": ")
	}
	if e.Param != "" {
		b.WriteString("parameter ")
		b.WriteString(e.Param)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

// Unwrap exposes both the sentinel kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// ErrorBuilder assembles an *Error.
type ErrorBuilder struct {
	err Error
}

// NewError starts an error of the given sentinel kind.
func NewError(kind error) *ErrorBuilder {
	return &ErrorBuilder{err: Error{Kind: kind}}
}

func (b *ErrorBuilder) Function(name string) *ErrorBuilder {
	b.err.Function = name
	return b
}

func (b *ErrorBuilder) Param(name string) *ErrorBuilder {
	b.err.Param = name
	return b
}

func (b *ErrorBuilder) Tuple(names []string, t []Int) *ErrorBuilder {
	b.err.Names = names
	b.err.Tuple = append([]Int(nil), t...)
	return b
}

func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

func (b *ErrorBuilder) Detail(msg string, args ...any) *ErrorBuilder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

func (b *ErrorBuilder) Build() *Error {
	return &b.err
}

// InFunction attaches a function name to err. A bare *Error is copied with the
// name set. Wrapped errors that carry an unnamed *Error get the name as a
// prefix. err itself is never modified.
func InFunction(err error, name string) error {
	if e, ok := err.(*Error); ok {
		if e.Function != "" {
			return err
		}
		named := *e
		named.Function = name
		return &named
	}
	var e *Error
	if errors.As(err, &e) && e.Function == "" {
		return fmt.Errorf("%s: %w", name, err)
	}
	return err
}

// FormatTuple renders an argument tuple as "(a=1, b=2)". Names may be nil.
func FormatTuple(names []string, t []Int) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range t {
		if i > 0 {
			b.WriteString(", ")
		}
		if i < len(names) {
			b.WriteString(names[i])
			b.WriteByte('=')
		}
		b.WriteString(v.String())
	}
	b.WriteByte(')')
	return b.String()
}
