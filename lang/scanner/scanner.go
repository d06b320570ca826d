/*
Package scanner tokenizes herbert program source.

The scanner is a thin adapter over lexmachine. The DFA is compiled once,
on first use, and may then be used for any number of inputs.

	scan, err := scanner.New("a(A):sa(A-1)\na(4)")
	if err != nil {
		// do error handling
	}
	for token := scan.NextToken(); token.TokType() != scanner.EOF; token = scan.NextToken() {
		…
	}

Illegal input is reported as a single token of type Error, after which the
scanner delivers EOF.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/herbert"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'herbert.lang'.
func tracer() tracing.Trace {
	return tracing.Select("herbert.lang")
}

// Token types of the herbert language.
const (
	EOF     herbert.TokType = -1
	Error   herbert.TokType = 0
	Command herbert.TokType = iota + 10 // s, l, r
	PName                               // lowercase letter other than s, l, r
	Param                               // uppercase letter
	Num                                 // digit run
	LParen
	RParen
	Comma
	Colon
	Plus
	Minus
	EOL
)

var tokenNames = map[herbert.TokType]string{
	EOF:     "end of input",
	Error:   "illegal input",
	Command: "command",
	PName:   "procedure name",
	Param:   "parameter",
	Num:     "number",
	LParen:  "'('",
	RParen:  "')'",
	Comma:   "','",
	Colon:   "':'",
	Plus:    "'+'",
	Minus:   "'-'",
	EOL:     "end of line",
}

// TokenName returns a human readable name for a token type.
func TokenName(t herbert.TokType) string {
	if n, ok := tokenNames[t]; ok {
		return n
	}
	return fmt.Sprintf("token(%d)", t)
}

// The tokens representing literal one-char lexemes
var literals = map[string]herbert.TokType{
	"(": LParen,
	")": RParen,
	",": Comma,
	":": Colon,
	"+": Plus,
	"-": Minus,
}

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() herbert.Token
	SetErrorHandler(func(error))
}

// --- Tokens ----------------------------------------------------------------

// HToken is the token type delivered by the scanner.
type HToken struct {
	kind      herbert.TokType
	lexeme    string
	span      herbert.Span
	line, col int
}

var _ herbert.Token = HToken{}

// MakeToken creates a token. It is mainly intended for tests.
func MakeToken(typ herbert.TokType, lexeme string, span herbert.Span, line, col int) HToken {
	return HToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
		line:   line,
		col:    col,
	}
}

func (t HToken) TokType() herbert.TokType {
	return t.kind
}

func (t HToken) Lexeme() string {
	return t.lexeme
}

func (t HToken) Span() herbert.Span {
	return t.span
}

// Position returns the 1-based line and column of the token.
func (t HToken) Position() (int, int) {
	return t.line, t.col
}

func (t HToken) String() string {
	return fmt.Sprintf("<%s %q @%d:%d>", TokenName(t.kind), t.lexeme, t.line, t.col)
}

// --- lexmachine adapter ----------------------------------------------------

var lexer *lexmachine.Lexer
var lexerErr error
var startOnce sync.Once // monitors one-time creation of the lexer

func compiledLexer() (*lexmachine.Lexer, error) {
	startOnce.Do(func() {
		tracer().Infof("Creating lexer")
		lexer = lexmachine.NewLexer()
		lexer.Add([]byte(`[a-z]`), letterToken)
		lexer.Add([]byte(`[A-Z]`), makeToken(Param))
		lexer.Add([]byte(`[0-9]+`), makeToken(Num))
		lexer.Add([]byte(`\n`), makeToken(EOL))
		for lit, id := range literals {
			r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
			lexer.Add([]byte(r), makeToken(id))
		}
		if lexerErr = lexer.Compile(); lexerErr != nil {
			tracer().Errorf("Error compiling DFA: %v", lexerErr)
		}
	})
	return lexer, lexerErr
}

func makeToken(id herbert.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(id), string(m.Bytes), m), nil
	}
}

// letterToken separates lower case letters into primitive commands and
// procedure names.
func letterToken(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	if herbert.IsCommandLetter(rune(m.Bytes[0])) {
		return s.Token(int(Command), string(m.Bytes), m), nil
	}
	return s.Token(int(PName), string(m.Bytes), m), nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
	done    bool
	end     herbert.Span
	eofLine int
	eofCol  int
}

var _ Tokenizer = (*LMScanner)(nil)

// New creates a scanner for a given input.
func New(input string) (*LMScanner, error) {
	lx, err := compiledLexer()
	if err != nil {
		return nil, err
	}
	s, err := lx.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	line, col := endPosition(input)
	pos := uint64(len(input))
	return &LMScanner{
		scanner: s,
		Error:   logError,
		end:     herbert.Span{pos, pos},
		eofLine: line,
		eofCol:  col,
	}, nil
}

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() herbert.Token {
	if lms.done {
		return lms.eofToken()
	}
	tok, err, eof := lms.scanner.Next()
	if err != nil {
		lms.Error(err)
		lms.done = true
		if ui, is := err.(*machines.UnconsumedInput); is {
			ch, size := utf8.DecodeRune(ui.Text[ui.StartTC:])
			pos := uint64(ui.StartTC)
			return MakeToken(Error, string(ch), herbert.Span{pos, pos + uint64(size)},
				ui.StartLine, ui.StartColumn)
		}
		return MakeToken(Error, err.Error(), lms.end, lms.eofLine, lms.eofCol)
	}
	if eof {
		lms.done = true
		return lms.eofToken()
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %q type %d", token.Lexeme, token.Type)
	from := uint64(token.TC)
	return MakeToken(
		herbert.TokType(token.Type),
		string(token.Lexeme),
		herbert.Span{from, from + uint64(len(token.Lexeme))},
		token.StartLine,
		token.StartColumn,
	)
}

func (lms *LMScanner) eofToken() HToken {
	return MakeToken(EOF, "", lms.end, lms.eofLine, lms.eofCol)
}

// endPosition computes the 1-based line and column just behind the input.
func endPosition(input string) (int, int) {
	line, col := 1, 1
	for _, r := range input {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
