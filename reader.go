package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"
)

// ErrIncomplete reports that the source ended in the middle of an
// expression.
var ErrIncomplete = errors.New("unexpected end of input")

// SyntaxError is an error in the concrete syntax of a program.
type SyntaxError struct {
	Pos scanner.Position
	Msg string
	Err error
}

func (e *SyntaxError) Error() string {
	if !e.Pos.IsValid() {
		return e.Msg
	}
	s := fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
	if e.Pos.Filename != "" {
		s = e.Pos.Filename + ":" + s
	}
	return s
}

func (e *SyntaxError) Unwrap() error { return e.Err }

var keywords = map[string]bool{
	"let": true, "in": true, "letrec": true, "proc": true,
	"if": true, "then": true, "else": true, "zero?": true,
}

type token struct {
	tok  rune // scanner.Ident, scanner.Int or a punctuation
	text string
	pos  scanner.Position
}

// splitIntoTokens splits a source text into tokens.
func splitIntoTokens(filename string, src io.Reader) []token {
	result := make([]token, 0, 100)
	var scn scanner.Scanner
	scn.Init(src)
	scn.Filename = filename
	scn.Mode = scanner.ScanIdents | scanner.ScanInts
	scn.IsIdentRune = func(ch rune, i int) bool {
		return ch == '_' || unicode.IsLetter(ch) ||
			(i > 0 && (unicode.IsDigit(ch) || ch == '?'))
	}
	scn.Error = func(s *scanner.Scanner, msg string) {
		panic(&SyntaxError{Pos: s.Position, Msg: msg})
	}
	scn.Whitespace ^= 1 << '\n' // Don't skip new lines.
	scn.Whitespace |= 1 << '\f'
LOOP:
	for tok := scn.Scan(); tok != scanner.EOF; tok = scn.Scan() {
		switch tok {
		case '%': // Skip %-comment
			for {
				tok = scn.Scan()
				if tok == scanner.EOF || tok == '\n' {
					continue LOOP
				}
			}
		case '\n':
			continue LOOP
		case '(', ')', ',', '=', '-', scanner.Ident, scanner.Int:
			result = append(result, token{tok, scn.TokenText(), scn.Position})
		default:
			panic(&SyntaxError{Pos: scn.Position,
				Msg: fmt.Sprintf("illegal char %q", tok)})
		}
	}
	return result
}

//----------------------------------------------------------------------

type parser struct {
	tokens []token
	end    scanner.Position
}

func (p *parser) peek() token {
	if len(p.tokens) == 0 {
		panic(&SyntaxError{Pos: p.end, Msg: ErrIncomplete.Error(), Err: ErrIncomplete})
	}
	return p.tokens[0]
}

func (p *parser) pop() token {
	t := p.peek()
	p.tokens = p.tokens[1:]
	return t
}

func (p *parser) fail(t token, format string, args ...interface{}) {
	panic(&SyntaxError{Pos: t.pos, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) expect(tok rune) {
	if t := p.pop(); t.tok != tok {
		p.fail(t, "%q is expected but got %q", tok, t.text)
	}
}

func (p *parser) expectKeyword(kw string) {
	if t := p.pop(); t.tok != scanner.Ident || t.text != kw {
		p.fail(t, "%q is expected but got %q", kw, t.text)
	}
}

func (p *parser) identifier() *Symbol {
	t := p.pop()
	if t.tok != scanner.Ident || keywords[t.text] {
		p.fail(t, "identifier is expected but got %q", t.text)
	}
	return Intern(t.text)
}

func (p *parser) number(t token, sign string) Node {
	n, err := strconv.ParseInt(sign+t.text, 10, 64)
	if err != nil {
		p.fail(t, "bad number %s%s", sign, t.text)
	}
	return NewConst(n)
}

// expression reads one expression from the tokens.
func (p *parser) expression() Node {
	t := p.pop()
	switch t.tok {
	case scanner.Int:
		return p.number(t, "")
	case '-':
		next := p.pop()
		switch next.tok {
		case scanner.Int: // -5
			return p.number(next, "-")
		case '(': // -(e1, e2)
			exp1 := p.expression()
			p.expect(',')
			exp2 := p.expression()
			p.expect(')')
			return NewDiff(exp1, exp2)
		}
		p.fail(next, "number or ( is expected after -")
	case '(': // (rator rand)
		rator := p.expression()
		rand := p.expression()
		p.expect(')')
		return NewCall(rator, rand)
	case scanner.Ident:
		switch t.text {
		case "zero?":
			p.expect('(')
			exp := p.expression()
			p.expect(')')
			return NewZero(exp)
		case "if":
			cond := p.expression()
			p.expectKeyword("then")
			exp1 := p.expression()
			p.expectKeyword("else")
			exp2 := p.expression()
			return NewIf(cond, exp1, exp2)
		case "let":
			v := p.identifier()
			p.expect('=')
			exp1 := p.expression()
			p.expectKeyword("in")
			body := p.expression()
			return NewLet(v, exp1, body)
		case "letrec":
			pname := p.identifier()
			p.expect('(')
			pvar := p.identifier()
			p.expect(')')
			p.expect('=')
			pbody := p.expression()
			p.expectKeyword("in")
			body := p.expression()
			return NewLetRec(pname, pvar, pbody, body)
		case "proc":
			p.expect('(')
			v := p.identifier()
			p.expect(')')
			body := p.expression()
			return NewProc(v, body)
		}
		if keywords[t.text] {
			p.fail(t, "unexpected %s", t.text)
		}
		return NewVar(Intern(t.text))
	}
	p.fail(t, "unexpected %q", t.text)
	return nil
}

//----------------------------------------------------------------------

// ParseReader reads a program from src.  The filename is used in
// positions of errors only.
func ParseReader(filename string, src io.Reader) (prgm *Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*SyntaxError); ok {
				prgm, err = nil, e
			} else {
				panic(r)
			}
		}
	}()
	p := &parser{tokens: splitIntoTokens(filename, src)}
	p.end = scanner.Position{Filename: filename}
	if n := len(p.tokens); n > 0 {
		p.end = p.tokens[n-1].pos
	}
	exp := p.expression()
	if len(p.tokens) != 0 {
		p.fail(p.tokens[0], "unexpected %q after expression", p.tokens[0].text)
	}
	return NewProgram(exp), nil
}

// Parse reads a program from a string.
func Parse(src string) (*Program, error) {
	return ParseReader("", strings.NewReader(src))
}

// ParseFile reads a program from a file.
func ParseFile(fileName string) (*Program, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseReader(fileName, file)
}
