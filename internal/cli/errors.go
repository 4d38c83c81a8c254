package cli

import "fmt"

// Kind classifies a fatal command-line error.
type Kind int

// Error kinds.
const (
	KindSyntax Kind = iota + 1 // malformed token, unknown key, wrong delimiter
	KindEnum                   // unknown enumeration value
	KindNumber                 // unparsable number
	KindRange                  // value outside its legal range
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindEnum:
		return "enum"
	case KindNumber:
		return "number"
	case KindRange:
		return "range"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a fatal command-line error. The program exits with status 1.
type Error struct {
	Kind  Kind
	Token string   // offending token, if any
	Msg   string   // human-readable description
	Legal []string // legal alternatives for KindEnum
	Err   error    // underlying cause, if any
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

func errorf(kind Kind, token, format string, args ...any) *Error {
	return &Error{Kind: kind, Token: token, Msg: fmt.Sprintf(format, args...)}
}

// Warning is a non-fatal diagnostic.
type Warning string

func warnf(format string, args ...any) Warning {
	return Warning(fmt.Sprintf(format, args...))
}
