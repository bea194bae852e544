package format

import "fmt"

// ErrorKind identifies why a query could not be formatted.
type ErrorKind string

const (
	// EmptyInput means the query is blank, or holds nothing but comments.
	EmptyInput ErrorKind = "EmptyInput"

	// NoClausesFound means no clause keyword was found at the top level of the query.
	NoClausesFound ErrorKind = "NoClausesFound"

	// UnbalancedParentheses means the parentheses outside quoted literals do not balance.
	UnbalancedParentheses ErrorKind = "UnbalancedParentheses"
)

var (
	ErrEmptyInput            = &Error{Kind: EmptyInput}
	ErrNoClausesFound        = &Error{Kind: NoClausesFound}
	ErrUnbalancedParentheses = &Error{Kind: UnbalancedParentheses}
)

// Error is returned when a query cannot be formatted. No partial output accompanies it.
//
// Errors compare by kind, so callers can branch with errors.Is:
//
//	_, err := formatter.Format(query, format.Document)
//	if errors.Is(err, format.ErrUnbalancedParentheses) {
//		// ...
//	}
type Error struct {
	Kind    ErrorKind
	Message string
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}

	return string(e.Kind) + ": " + e.Message
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
