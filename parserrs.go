package mathexpr

import (
	"strconv"

	"github.com/pkg/errors"
)

// ErrorKind discriminates the errors produced while parsing or evaluating an
// expression. An ErrorKind is itself an error so that it can be the target of
// errors.Is:
//
//	if errors.Is(err, mathexpr.EmptyGroup) { ... }
type ErrorKind int8

const (
	kindNone ErrorKind = iota

	// MismatchedGroups indicates unequal counts of ( and ) or of [ and ].
	MismatchedGroups
	// EmptyGroup indicates a literal () or [].
	EmptyGroup
	// UnbalancedGroup indicates a close delimiter with no matching open
	// delimiter before it.
	UnbalancedGroup
	// UnknownFunction indicates a function name in the registry that has no
	// transform to call.
	UnknownFunction
	// NumericParseFailure indicates an irreducible term that is neither a
	// constant nor a decimal number.
	NumericParseFailure
	// ArithmeticFailure indicates an undefined operation during evaluation,
	// e.g. division by zero.
	ArithmeticFailure
)

func (k ErrorKind) String() string {
	switch k {
	case MismatchedGroups:
		return "mismatched groups"
	case EmptyGroup:
		return "empty group"
	case UnbalancedGroup:
		return "unbalanced group"
	case UnknownFunction:
		return "unknown function"
	case NumericParseFailure:
		return "invalid number"
	case ArithmeticFailure:
		return "arithmetic failure"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k ErrorKind) Error() string {
	return k.String()
}

// Error is the error returned from Parse and Eval. It implements InputError.
type Error struct {
	// Kind is the class of the error.
	Kind ErrorKind
	// Col is the position in the normalized expression of the token that
	// caused the error, counting from 1. It is 0 for evaluation errors.
	Col int
	// Text is the offending text, if any.
	Text string
	// Msg is a human-readable description.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (err *Error) Error() string {
	msg := err.Msg
	if msg == "" {
		msg = err.Kind.String()
	}
	if err.Text != "" {
		msg += " " + strconv.Quote(err.Text)
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	if err.Col > 0 {
		return errpos(err.Col, msg)
	}
	return msg
}

func (err *Error) Unwrap() error {
	return err.Err
}

// Is reports whether target is the error's kind.
func (err *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == err.Kind
}

func (err *Error) Pos() int {
	return err.Col
}

// DomainError is the cause of an ArithmeticFailure when a function is called
// on an argument outside its domain.
type DomainError struct {
	// X is the out-of-domain argument, rendered as text.
	X string
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// arith creates an ArithmeticFailure wrapping cause.
func arith(op string, cause error) error {
	return &Error{Kind: ArithmeticFailure, Msg: "cannot evaluate " + op, Err: errors.WithStack(cause)}
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of bytes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var _ InputError = (*Error)(nil)
