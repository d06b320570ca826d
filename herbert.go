package herbert

import (
	"fmt"
	"math/big"
)

// --- Robot commands --------------------------------------------------------

// Command is one of the three primitive robot commands.
type Command byte

// The primitive commands, named by the letter used in program source.
const (
	NoCommand Command = 0
	Forward   Command = 's'
	TurnLeft  Command = 'l'
	TurnRight Command = 'r'
)

// IsCommandLetter is a predicate: is r one of the letters reserved for primitive commands?
func IsCommandLetter(r rune) bool {
	return r == rune(Forward) || r == rune(TurnLeft) || r == rune(TurnRight)
}

func (c Command) String() string {
	if c == NoCommand {
		return "<none>"
	}
	return string(rune(c))
}

// Action is an element of the sequence of actions an evaluated program
// produces. Almost always an action is a primitive command. A parameter
// which is bound to a number and stands alone as a procedure body evaluates
// to that number, so an action may carry a number instead.
type Action struct {
	Command Command  // primitive command, or NoCommand for numbers
	Number  *big.Int // value, if Command is NoCommand
}

// CommandAction wraps a primitive command into an action.
func CommandAction(c Command) Action {
	return Action{Command: c}
}

// NumberAction wraps a number into an action.
func NumberAction(n *big.Int) Action {
	return Action{Number: n}
}

// IsCommand is a predicate: does this action carry a primitive command?
func (a Action) IsCommand() bool {
	return a.Command != NoCommand
}

func (a Action) String() string {
	if a.IsCommand() {
		return a.Command.String()
	}
	return a.Number.String()
}

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Constants are defined by the scanner.
type TokType int

// Tokens represent input tokens. They are produced by a scanner and
// reflect terminals of the program language.
//
// An example would be a token for a parameter name:
//
//    TokType = Param       // identifier for this kind of tokens
//    Lexeme  = "A"         // lexeme how it appeared in the input stream
//    Span    = 7…8         // occurred from position 7 in the input stream
//    Line    = 1, Col = 8  // human readable position
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Span() Span
	Position() (line, col int)
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. A span
// denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Helpers ----------------------------------------------------------

// Pluralize selects the singular or plural form of a word for count n.
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
