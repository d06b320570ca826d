/*
Package parser parses herbert program source into a program tree.

Grammar

    program   ::=  procdef* main
    procdef   ::=  pname [ '(' param (',' param)* ')' ] ':' body eol
    main      ::=  stmt+ eof
    body      ::=  (stmt | param)+
    stmt      ::=  command  |  pname [ '(' arg (',' arg)* ')' ]
    arg       ::=  param                       // variable reference
              |    (stmt | param)+             // quoted sequence
              |    expr
    expr      ::=  [ '-' | '+' ] term ( ('+' | '-') term )*
    term      ::=  number  |  param

The parser is deterministic and reads its input in a single pass, looking
ahead a bounded number of tokens. Whether a top-level line is a procedure
definition or the main block is decided by looking for a ':' behind the
procedure name (and its parameter list). Arguments are classified by their
first two tokens: an argument is arithmetic if it starts with a sign or a
number, or if it is a parameter followed by '+' or '-'. A lone parameter is
a variable reference, everything else is a quoted sequence.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/herbert"
	"github.com/npillmayer/herbert/lang/ast"
	"github.com/npillmayer/herbert/lang/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'herbert.lang'.
func tracer() tracing.Trace {
	return tracing.Select("herbert.lang")
}

// Parse parses program source text. Leading and trailing white space is
// ignored. On malformed input Parse returns a *herbert.SyntaxError.
func Parse(source string) (*ast.Program, error) {
	trimmed := strings.TrimSpace(source)
	lead := strings.Index(source, trimmed)
	if trimmed == "" {
		lead = len(source)
	}
	scan, err := scanner.New(trimmed)
	if err != nil {
		return nil, err
	}
	p := &parser{source: source, lead: uint64(lead)}
	p.read(scan)
	prog, err := p.program()
	if err != nil {
		tracer().Infof("%v", err)
		return nil, err
	}
	tracer().Debugf("parsed program:\n%s", prog.String())
	return prog, nil
}

// MustParse is like Parse, but panics on syntax errors. It is intended for
// tests and for programs known to be correct.
func MustParse(source string) *ast.Program {
	prog, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return prog
}

// --- Parser ----------------------------------------------------------------

type parser struct {
	tokens []herbert.Token // all tokens up to and including EOF or Error
	pos    int             // current token
	source string          // untrimmed source text
	lead   uint64          // bytes of white space stripped before scanning
}

func (p *parser) read(scan scanner.Tokenizer) {
	scan.SetErrorHandler(func(e error) {
		tracer().Debugf("scanner: %v", e)
	})
	for {
		token := scan.NextToken()
		p.tokens = append(p.tokens, token)
		if t := token.TokType(); t == scanner.EOF || t == scanner.Error {
			return
		}
	}
}

func (p *parser) peek(n int) herbert.Token {
	if p.pos+n < len(p.tokens) {
		return p.tokens[p.pos+n]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *parser) current() herbert.Token {
	return p.peek(0)
}

func (p *parser) is(t herbert.TokType) bool {
	return p.current().TokType() == t
}

func (p *parser) next() herbert.Token {
	token := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return token
}

func (p *parser) expect(t herbert.TokType) (herbert.Token, error) {
	if !p.is(t) {
		return nil, p.unexpected(scanner.TokenName(t))
	}
	return p.next(), nil
}

func (p *parser) program() (*ast.Program, error) {
	var procs []*ast.ProcDef
	for p.atProcDef() {
		def, err := p.procDef()
		if err != nil {
			return nil, err
		}
		procs = append(procs, def)
	}
	main, err := p.mainBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewProgram(procs, main), nil
}

// atProcDef checks if the tokens ahead form the head of a procedure definition:
// a procedure name, an optional parenthesized list, and a colon.
func (p *parser) atProcDef() bool {
	if !p.is(scanner.PName) {
		return false
	}
	switch p.peek(1).TokType() {
	case scanner.Colon:
		return true
	case scanner.LParen:
		depth := 0
		for i := 1; ; i++ {
			switch p.peek(i).TokType() {
			case scanner.LParen:
				depth++
			case scanner.RParen:
				depth--
				if depth == 0 {
					return p.peek(i+1).TokType() == scanner.Colon
				}
			case scanner.EOL, scanner.EOF, scanner.Error:
				return false
			}
		}
	}
	return false
}

func (p *parser) procDef() (*ast.ProcDef, error) {
	name := p.next()
	def := &ast.ProcDef{Name: name.Lexeme(), Extent: name.Span()}
	if p.is(scanner.LParen) {
		p.next()
		for {
			param, err := p.expect(scanner.Param)
			if err != nil {
				return nil, err
			}
			for _, other := range def.Params {
				if other == param.Lexeme() {
					return nil, p.errorAt(param, fmt.Sprintf("duplicate parameter %s in definition of %s",
						param.Lexeme(), def.Name))
				}
			}
			def.Params = append(def.Params, param.Lexeme())
			if !p.is(scanner.Comma) {
				break
			}
			p.next()
		}
		if _, err := p.expect(scanner.RParen); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(scanner.Colon); err != nil {
		return nil, err
	}
	body, err := p.sequence(true)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, p.unexpected("procedure body")
	}
	def.Body = body
	def.Extent = def.Extent.Extend(body[len(body)-1].Span())
	if _, err := p.expect(scanner.EOL); err != nil {
		return nil, err
	}
	tracer().Debugf("procedure definition %s", def)
	return def, nil
}

func (p *parser) mainBlock() ([]ast.Elem, error) {
	if p.is(scanner.Param) {
		return nil, p.errorAt(p.current(), fmt.Sprintf("parameter %s outside of a procedure definition",
			p.current().Lexeme()))
	}
	main, err := p.sequence(false)
	if err != nil {
		return nil, err
	}
	if len(main) == 0 {
		return nil, p.unexpected("main block")
	}
	if p.is(scanner.Param) {
		return nil, p.errorAt(p.current(), fmt.Sprintf("parameter %s outside of a procedure definition",
			p.current().Lexeme()))
	}
	if _, err := p.expect(scanner.EOF); err != nil {
		return nil, err
	}
	return main, nil
}

// sequence parses a run of statements (and parameters, if allowed). It stops
// at the first token which cannot start an element.
func (p *parser) sequence(allowParams bool) ([]ast.Elem, error) {
	var seq []ast.Elem
	for {
		token := p.current()
		switch token.TokType() {
		case scanner.Command:
			p.next()
			seq = append(seq, &ast.Command{
				Cmd:    herbert.Command(token.Lexeme()[0]),
				Extent: token.Span(),
			})
		case scanner.PName:
			call, err := p.call()
			if err != nil {
				return nil, err
			}
			seq = append(seq, call)
		case scanner.Param:
			if !allowParams {
				return seq, nil
			}
			p.next()
			seq = append(seq, &ast.ParamRef{Name: token.Lexeme(), Extent: token.Span()})
		default:
			return seq, nil
		}
	}
}

func (p *parser) call() (*ast.Call, error) {
	name := p.next()
	call := &ast.Call{Name: name.Lexeme(), Extent: name.Span()}
	if !p.is(scanner.LParen) {
		return call, nil
	}
	p.next()
	for {
		arg, err := p.arg()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		if p.is(scanner.Comma) {
			p.next()
			continue
		}
		rparen, err := p.expect(scanner.RParen)
		if err != nil {
			return nil, err
		}
		call.Extent = call.Extent.Extend(rparen.Span())
		return call, nil
	}
}

func (p *parser) arg() (ast.Arg, error) {
	token := p.current()
	switch token.TokType() {
	case scanner.Plus, scanner.Minus, scanner.Num:
		return p.expr()
	case scanner.Param:
		switch p.peek(1).TokType() {
		case scanner.Plus, scanner.Minus:
			return p.expr()
		case scanner.Comma, scanner.RParen:
			p.next()
			return &ast.VarRef{Name: token.Lexeme(), Extent: token.Span()}, nil
		}
		return p.quoted()
	case scanner.Command, scanner.PName:
		return p.quoted()
	}
	return nil, p.unexpected("argument")
}

func (p *parser) quoted() (*ast.Quoted, error) {
	body, err := p.sequence(true)
	if err != nil {
		return nil, err
	}
	q := &ast.Quoted{Body: body}
	for _, e := range body {
		q.Extent = q.Extent.Extend(e.Span())
	}
	return q, nil
}

func (p *parser) expr() (*ast.Arithmetic, error) {
	a := &ast.Arithmetic{Extent: p.current().Span()}
	negative := false
	if p.is(scanner.Plus) || p.is(scanner.Minus) {
		a.Signed = true
		negative = p.next().TokType() == scanner.Minus
	}
	for {
		term, err := p.term(negative)
		if err != nil {
			return nil, err
		}
		a.Terms = append(a.Terms, term)
		a.Extent = a.Extent.Extend(p.tokens[p.pos-1].Span())
		if !p.is(scanner.Plus) && !p.is(scanner.Minus) {
			return a, nil
		}
		negative = p.next().TokType() == scanner.Minus
	}
}

func (p *parser) term(negative bool) (ast.Term, error) {
	token := p.current()
	switch token.TokType() {
	case scanner.Num:
		n, ok := new(big.Int).SetString(token.Lexeme(), 10)
		if !ok {
			return ast.Term{}, p.errorAt(token, fmt.Sprintf("malformed integer literal: %s", token.Lexeme()))
		}
		p.next()
		return ast.Term{Negative: negative, Literal: n}, nil
	case scanner.Param:
		p.next()
		return ast.Term{Negative: negative, Param: token.Lexeme()}, nil
	}
	return ast.Term{}, p.unexpected("number or parameter")
}

// --- Errors ----------------------------------------------------------------

func (p *parser) unexpected(expected string) error {
	token := p.current()
	switch token.TokType() {
	case scanner.Error:
		return p.errorAt(token, fmt.Sprintf("illegal character %q", token.Lexeme()))
	case scanner.EOF, scanner.EOL:
		return p.errorAt(token, fmt.Sprintf("unexpected %s, expected %s",
			scanner.TokenName(token.TokType()), expected))
	}
	return p.errorAt(token, fmt.Sprintf("unexpected %s %q, expected %s",
		scanner.TokenName(token.TokType()), token.Lexeme(), expected))
}

func (p *parser) errorAt(token herbert.Token, msg string) *herbert.SyntaxError {
	span := token.Span()
	from, to := span[0]+p.lead, span[1]+p.lead
	line, col := position(p.source, from)
	return &herbert.SyntaxError{
		Line: line,
		Col:  col,
		Span: herbert.Span{from, to},
		Msg:  msg,
	}
}

// position computes the 1-based line and column of a byte offset in source.
// Newline characters count as the last column of their line.
func position(source string, pos uint64) (int, int) {
	if pos > uint64(len(source)) {
		pos = uint64(len(source))
	}
	before := source[:pos]
	line := strings.Count(before, "\n") + 1
	col := utf8.RuneCountInString(before[strings.LastIndex(before, "\n")+1:]) + 1
	return line, col
}
