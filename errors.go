package herbert

import "fmt"

// Error kinds. All of them are detected locally and end the operation in
// progress. Clients distinguish them with errors.As.

// SyntaxError is returned if program source text does not match the grammar.
type SyntaxError struct {
	Line, Col int  // 1-based position of the offending input
	Span      Span // byte offsets of the offending input
	Msg       string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

// LookupError is raised during evaluation for unknown procedures and unbound
// parameters.
type LookupError struct {
	Name string // the identifier which could not be resolved
	Msg  string
}

func (e *LookupError) Error() string {
	return e.Msg
}

// TypeError is raised during evaluation for arity mismatches and for values
// of the wrong kind.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string {
	return e.Msg
}

// RecursionError is raised if evaluation descends too deep, or performs too
// many procedure calls without producing an action.
type RecursionError struct {
	Depth int // work stack depth at the time of failure
	Calls int // procedure calls since the last action
}

func (e *RecursionError) Error() string {
	return fmt.Sprintf("recursion too deep (depth %d, %d calls without a command)", e.Depth, e.Calls)
}

// LevelError is returned if a level description is malformed.
type LevelError struct {
	Msg string
}

func (e *LevelError) Error() string {
	return e.Msg
}

// LevelErrorf creates a LevelError with a formatted message.
func LevelErrorf(format string, args ...interface{}) *LevelError {
	return &LevelError{Msg: fmt.Sprintf(format, args...)}
}
