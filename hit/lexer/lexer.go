package lexer

import (
	"fmt"
	"strings"
)

const (
	digits      = "0123456789"
	alpha       = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	space       = " \t"
	allspace    = " \t\n\r"
	newlineSet  = "\n\r"
	alphanum    = digits + alpha
	identChars  = alphanum + "_./:<>-+*"
)

func charIn(c byte, valid string) bool {
	return strings.IndexByte(valid, c) >= 0
}

func lineCount(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
		}
	}
	return n
}

// stateFn is one step of the lexer's state machine: it consumes input
// and returns the next state, or nil when lexing is finished (either
// at EOF or after an error token was emitted).
type stateFn func(*Lexer) stateFn

// Lexer tokenizes a HIT byte stream, tracking (start, pos, width) over
// the input the way text/template's lexer does.
type Lexer struct {
	name      string
	input     string
	start     int
	pos       int
	width     int
	lineCount int
	tokens    []Token
}

// New constructs a Lexer over input, tagging every emitted token with
// name as its source file.
func New(name, input string) *Lexer {
	return &Lexer{name: name, input: input, lineCount: 1}
}

// Run executes the lexer to completion starting from lexHit and
// returns the tokens produced.
func (l *Lexer) Run() []Token {
	for state := stateFn(lexHit); state != nil; {
		state = state(l)
	}
	return l.tokens
}

// Tokenize is a convenience wrapper returning the full token stream
// for name/input, equivalent to the reference implementation's
// tokenize() free function (used historically for syntax highlighting
// and autocomplete, kept here for tooling and for exhaustive lexer
// tests).
func Tokenize(name, input string) []Token {
	return New(name, input).Run()
}

func (l *Lexer) next() byte {
	if l.pos >= len(l.input) {
		l.width = 0
		return 0
	}
	c := l.input[l.pos]
	l.width = 1
	l.pos += l.width
	return c
}

func (l *Lexer) backup() {
	if l.pos-l.width < l.start {
		l.pos = l.start
		return
	}
	l.pos -= l.width
}

func (l *Lexer) peek() byte {
	c := l.next()
	l.backup()
	return c
}

func (l *Lexer) accept(valid string) bool {
	if charIn(l.next(), valid) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptRun(valid string) int {
	n := 0
	for {
		if !charIn(l.next(), valid) {
			break
		}
		n++
	}
	l.backup()
	return n
}

func (l *Lexer) ignore() {
	substr := l.input[l.start:l.pos]
	l.lineCount += lineCount(substr)
	l.start = l.pos
}

func (l *Lexer) columnFor(start int) int {
	if start == 0 {
		return 0
	}
	if idx := strings.LastIndexByte(l.input[:start], '\n'); idx >= 0 {
		return start - idx
	}
	return start
}

func (l *Lexer) emit(kind Kind) {
	substr := l.input[l.start:l.pos]
	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Text:   substr,
		File:   l.name,
		Offset: l.start,
		Line:   l.lineCount,
		Column: l.columnFor(l.start),
	})
	l.lineCount += lineCount(substr)
	l.start = l.pos
}


func (l *Lexer) errorf(format string, args ...interface{}) stateFn {
	l.tokens = append(l.tokens, Token{
		Kind:   Error,
		Text:   fmt.Sprintf(format, args...),
		File:   l.name,
		Offset: l.start,
		Line:   l.lineCount,
	})
	return nil
}
