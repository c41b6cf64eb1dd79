package lexer

import (
	"strings"

	"github.com/hitlang/hit/hit/brace"
)

// consumeWhitespace eats runs of space/tab and newlines, emitting one
// BlankLine token for each run of two or more consecutive newlines (a
// single newline is not a blank line).
func consumeWhitespace(l *Lexer) int {
	startPos := l.pos
	for {
		start := l.pos
		l.acceptRun(space + "\r")
		l.ignore()

		if l.accept("\n") {
			l.ignore()
			n := 0
			for {
				l.acceptRun(space + "\r")
				if !l.accept("\n") {
					break
				}
				if n == 0 {
					l.emit(BlankLine)
				}
				n++
			}
			l.ignore()
		}
		if l.pos == start {
			break
		}
	}

	l.acceptRun(allspace)
	l.ignore()
	return l.pos - startPos
}

func consumeToNewline(l *Lexer) {
	for {
		c := l.next()
		if c == 0 || charIn(c, "\n\r") {
			break
		}
	}
	l.backup()
}

// lexComments consumes any comments at the current position: an
// inline comment immediately following the previously emitted
// non-blank token on the same line, then any run of block comments.
// The first comment in a file can never be inline.
func lexComments(l *Lexer) {
	if l.start > 0 && (len(l.tokens) == 0 || l.tokens[len(l.tokens)-1].Kind != BlankLine) {
		l.acceptRun(space)
		l.ignore()
		if l.accept("#") {
			consumeToNewline(l)
			l.emit(InlineComment)
		}
	}

	for {
		consumeWhitespace(l)
		if !l.accept("#") {
			break
		}
		consumeToNewline(l)
		l.emit(Comment)
	}
}

// acceptIdentRun consumes an identifier run the way Path does, except
// it stops before a ':' that begins an override marker (':=' or
// ':override=') so lexEq can recognize the marker; a ':' not
// followed by one of those stays part of the identifier like any
// other identChars byte.
func acceptIdentRun(l *Lexer) int {
	n := 0
	for {
		c := l.next()
		if !charIn(c, identChars) {
			l.backup()
			break
		}
		if c == ':' {
			rest := l.input[l.pos:]
			if strings.HasPrefix(rest, "=") || strings.HasPrefix(rest, "override=") {
				l.backup()
				break
			}
		}
		n++
	}
	return n
}

func lexHit(l *Lexer) stateFn {
	lexComments(l)
	consumeWhitespace(l)
	c := l.next()
	switch {
	case c == '[':
		l.emit(LeftBracket)
		return lexPath
	case charIn(c, identChars):
		acceptIdentRun(l)
		l.emit(Ident)
		return lexEq
	case c == 0:
		l.emit(Eof)
		return nil
	default:
		return l.errorf("invalid character '%c' - did you leave a field value blank after a previous '='?", c)
	}
}

func lexPath(l *Lexer) stateFn {
	l.acceptRun(space)
	l.ignore()
	l.acceptRun(identChars)
	l.emit(Path)

	n := l.acceptRun(space)
	l.ignore()
	gotClose := l.accept("]")
	if n == 0 && !gotClose {
		return l.errorf("invalid section path character '%c'", l.peek())
	} else if n > 0 && !gotClose {
		return l.errorf("spaces are not allowed in section paths")
	}

	l.emit(RightBracket)
	return lexHit
}

// lexEq consumes the '=' (or override marker ':=' / ':override=')
// that follows a field identifier. The marker actually present is
// preserved verbatim in the Equals token's Text so the parser can
// tell plain assignment from an override declaration.
func lexEq(l *Lexer) stateFn {
	l.acceptRun(space)
	l.ignore()

	switch {
	case l.accept("="):
		// plain '='
	case l.accept(":"):
		const kw = "override="
		if strings.HasPrefix(l.input[l.pos:], kw) {
			for i := 0; i < len(kw); i++ {
				l.next()
			}
		} else if !l.accept("=") {
			return l.errorf("expected '=', ':=', or ':override=' after parameter name '%s', got '%c'",
				l.tokens[len(l.tokens)-1].Text, l.next())
		}
	default:
		return l.errorf("expected '=' after parameter name '%s', got '%c'",
			l.tokens[len(l.tokens)-1].Text, l.next())
	}
	l.emit(Equals)

	l.acceptRun(allspace)
	l.ignore()

	if charIn(l.peek(), digits+"-+.eE") {
		return lexNumber
	}
	return lexString
}

func consumeUnquotedString(l *Lexer) int {
	for {
		c := l.next()
		// '#' is always a comment outside of a quoted string.
		if c == 0 || charIn(c, allspace+"[#") {
			break
		}
	}
	l.backup()
	return l.pos - l.start
}

func consumeBraceExpression(l *Lexer) error {
	next, _, err := brace.ParseNode(l.input, l.start)
	if err != nil {
		return err
	}
	for i := l.start; i < next; i++ {
		l.next()
	}
	return nil
}

func lexString(l *Lexer) stateFn {
	l.acceptRun(allspace)
	l.ignore()

	n := l.next()
	nn := l.peek()
	l.backup()
	if n == '$' && nn == '{' {
		if err := consumeBraceExpression(l); err != nil {
			return l.errorf("%s", err.Error())
		}
		l.emit(String)
		return lexHit
	}

	if !charIn(l.peek(), "'\"") {
		if consumeUnquotedString(l) > 0 {
			l.emit(String)
		}
		return lexHit
	}

	var quote byte
	if l.peek() == '"' {
		quote = '"'
	} else {
		quote = '\''
	}

	// Loop to allow consecutive same-quoted literals ('foo' 'bar') to
	// be lexed as a single concatenated String token: keep consuming
	// quoted segments (and the whitespace between them) into the same
	// pending token instead of emitting after each one.
	for l.accept(string(quote)) {
		for {
			c := l.next()
			if c == quote {
				break
			}
			if c == '\\' && l.peek() == quote {
				l.next()
				continue
			}
			if c == 0 {
				return l.errorf("unterminated string")
			}
		}

		mark := l.pos
		for charIn(l.peek(), allspace) {
			l.next()
		}
		if l.peek() != quote {
			l.pos = mark // not another literal of the same quote -- stop here
			break
		}
	}

	l.emit(String)
	return lexHit
}

func lexNumber(l *Lexer) stateFn {
	l.accept("+-")
	n := l.acceptRun(digits)
	if l.accept(".") {
		n += l.acceptRun(digits)
	}

	if l.accept("eE") {
		if l.accept("-+") {
			n++
		}
		n += l.acceptRun(digits)
	}
	if n == 0 {
		if consumeUnquotedString(l) > 0 {
			l.emit(String)
		}
		return lexHit
	}

	if !charIn(l.peek(), allspace+"[") && l.peek() != 0 {
		if consumeUnquotedString(l) > 0 {
			l.emit(String)
		}
		return lexHit
	}

	l.emit(Number)
	return lexHit
}
