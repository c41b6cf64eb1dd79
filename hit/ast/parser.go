package ast

import (
	"strconv"
	"strings"

	"github.com/hitlang/hit/hit/hiterr"
	"github.com/hitlang/hit/hit/lexer"
)

// OverrideKind classifies which side of an include a field assignment
// overrides, from the marker used on its '=' ("=", ":=", or
// ":override=").
type OverrideKind int

const (
	OverrideNone OverrideKind = iota
	OverrideDeclaring          // ":="  -- wins over an unmarked field at the same fullpath
	OverrideIncluding          // ":override=" -- same conflict rule as ":="
)

// overrideKind lives alongside the rawValue/valueKind pair on Field
// records; stored via the record's text field reuse would be
// confusing, so Field records carry it directly.
func (n Node) OverrideKind() OverrideKind { return n.rec().overrideKind }
func (n Node) SetOverrideKind(k OverrideKind) { n.rec().overrideKind = k }

// Parse tokenizes input and builds a Tree, attaching file/line/column
// metadata from the lexer's tokens. It does not resolve !include
// directives, run the block merger, or expand brace expressions --
// those are separate passes (see Resolve, MergeBlocks, ExpandDocument)
// so each stays independently testable, matching the component
// boundaries tokens/tree/includes/merge/expand are split into.
func Parse(file, input string) (*Tree, error) {
	toks := lexer.Tokenize(file, input)
	p := &parser{toks: toks}
	t := NewTree()
	p.tree = t
	if err := p.parseBody(t.Root(), false); err != nil {
		return nil, err
	}
	return t, nil
}

type parser struct {
	toks []lexer.Token
	pos  int
	tree *Tree
}

func (p *parser) peek() lexer.Token {
	return p.peekAt(0)
}

func (p *parser) peekAt(offset int) lexer.Token {
	i := p.pos + offset
	if i >= len(p.toks) {
		return lexer.Token{Kind: lexer.Eof}
	}
	return p.toks[i]
}

// isCloser reports whether the LeftBracket at the current position
// begins a section closer ("[]" or "[../]") rather than a nested
// section's opening "[path]". lexPath folds a path's '/' separators
// into its Path token, so the legacy closer's Path text is "../", not
// "..".
func (p *parser) isCloser() bool {
	n1 := p.peekAt(1)
	if n1.Kind != lexer.Path {
		return false
	}
	if n1.Text != "" && n1.Text != "../" {
		return false
	}
	return p.peekAt(2).Kind == lexer.RightBracket
}

func (p *parser) next() lexer.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func posOf(t lexer.Token) hiterr.Pos {
	return hiterr.Pos{File: t.File, Line: t.Line, Column: t.Column}
}

// parseBody consumes children of a container (the document root or an
// open section) until EOF (root) or a RightBracket closer (section).
// It returns once the closer (if any) has been consumed.
func (p *parser) parseBody(container Handle, insideSection bool) error {
	for {
		tok := p.peek()
		switch tok.Kind {
		case lexer.Eof:
			if insideSection {
				return hiterr.New(hiterr.KindParse, posOf(tok), "unterminated section")
			}
			return nil

		case lexer.BlankLine:
			p.next()
			h := p.tree.newNode(record{kind: KindBlank, file: tok.File, line: tok.Line, column: tok.Column})
			p.tree.AddChild(container, h)

		case lexer.Comment:
			p.next()
			h := p.tree.newNode(record{kind: KindComment, file: tok.File, line: tok.Line, column: tok.Column, text: tok.Text})
			p.tree.AddChild(container, h)

		case lexer.InlineComment:
			p.next()
			h := p.tree.newNode(record{kind: KindComment, file: tok.File, line: tok.Line, column: tok.Column, text: tok.Text, isInline: true})
			siblings := p.tree.get(container).children
			switch {
			case len(siblings) == 0 && insideSection:
				// decorates the section's own "[path]" header line
				p.tree.AddChild(container, h)
			case len(siblings) == 0:
				return hiterr.New(hiterr.KindParse, posOf(tok), "comment introduced into path or ident")
			case p.tree.get(siblings[len(siblings)-1]).kind == KindField:
				p.tree.AddChild(siblings[len(siblings)-1], h)
			default:
				// after a section closer (or blank/comment): keep it a
				// sibling so it renders on the same line as the closer
				p.tree.AddChild(container, h)
			}

		case lexer.LeftBracket:
			if p.isCloser() {
				if !insideSection {
					return hiterr.New(hiterr.KindParse, posOf(tok), "extra section closer")
				}
				return nil
			}
			p.next()
			if err := p.parseSection(container, tok); err != nil {
				return err
			}

		case lexer.RightBracket:
			return hiterr.New(hiterr.KindParse, posOf(tok), "extra section closer")

		case lexer.Ident:
			p.next()
			if err := p.parseField(container, tok); err != nil {
				return err
			}

		case lexer.Error:
			return hiterr.New(hiterr.KindLex, posOf(tok), "%s", tok.Text)

		default:
			return hiterr.New(hiterr.KindParse, posOf(tok), "unexpected token %s", tok.String())
		}
	}
}

// parseSection parses a "[path] ... []" or "[path] ... [../]" section,
// attaching it to container. open is the already-consumed
// LeftBracket that introduced it.
func (p *parser) parseSection(container Handle, open lexer.Token) error {
	pathTok := p.next()
	if pathTok.Kind != lexer.Path {
		return hiterr.New(hiterr.KindParse, posOf(pathTok), "expected section path after '['")
	}

	openMarker := ""
	path := pathTok.Text
	if strings.HasPrefix(path, "./") {
		openMarker = "./"
		path = path[len("./"):]
	}
	if path == "" || path == "." {
		return hiterr.New(hiterr.KindParse, posOf(pathTok), "blank section name")
	}

	closeOpen := p.next() // RightBracket for the opening "[path]"
	if closeOpen.Kind != lexer.RightBracket {
		return hiterr.New(hiterr.KindParse, posOf(closeOpen), "expected ']' after section path '%s'", pathTok.Text)
	}

	sec := p.tree.newNode(record{
		kind: KindSection,
		file: open.File, line: open.Line, column: open.Column,
		path:       path,
		openMarker: openMarker,
	})
	p.tree.AddChild(container, sec)

	if err := p.parseBody(sec, true); err != nil {
		return err
	}

	// parseBody returned because it saw a RightBracket-leading closer
	// token sequence "[ ... ]" or "[ ../ ]"; consume it now.
	closeLeft := p.next()
	if closeLeft.Kind != lexer.LeftBracket {
		return hiterr.New(hiterr.KindParse, posOf(closeLeft), "unterminated section")
	}
	closePath := p.next()
	if closePath.Kind != lexer.Path || (closePath.Text != "" && closePath.Text != "../") {
		return hiterr.New(hiterr.KindParse, posOf(closePath), "unterminated section")
	}
	closeRight := p.next()
	if closeRight.Kind != lexer.RightBracket {
		return hiterr.New(hiterr.KindParse, posOf(closeRight), "unterminated section")
	}
	p.tree.get(sec).closeMarker = closePath.Text
	return nil
}

// parseField parses "ident [=|:=|:override=] value" and attaches a
// Field child to container. ident is the already-consumed Ident
// token naming the field.
func (p *parser) parseField(container Handle, ident lexer.Token) error {
	eq := p.next()
	if eq.Kind == lexer.Error {
		return hiterr.New(hiterr.KindLex, posOf(eq), "%s", eq.Text)
	}
	if eq.Kind != lexer.Equals {
		return hiterr.New(hiterr.KindParse, posOf(eq), "missing value after '='")
	}

	val := p.next()
	switch val.Kind {
	case lexer.Number, lexer.String, lexer.Ident, lexer.Path:
		// ok
	case lexer.Error:
		return hiterr.New(hiterr.KindLex, posOf(val), "%s", val.Text)
	default:
		return hiterr.New(hiterr.KindParse, posOf(val), "missing value after '='")
	}

	vk := ValueString
	switch {
	case val.Kind == lexer.Number:
		vk = inferNumberKind(val.Text)
	case val.Kind == lexer.String && isBoolLiteral(val.Text):
		vk = ValueBool
	}

	var ovr OverrideKind
	switch eq.Text {
	case ":=":
		ovr = OverrideDeclaring
	case ":override=":
		ovr = OverrideIncluding
	default:
		ovr = OverrideNone
	}

	f := p.tree.newNode(record{
		kind: KindField,
		file: ident.File, line: ident.Line, column: ident.Column,
		name: ident.Text, rawValue: val.Text, valueKind: vk,
		overrideKind: ovr,
	})
	p.tree.AddChild(container, f)
	return nil
}

// isBoolLiteral reports whether an unquoted value token is one of the
// recognized boolean spellings (case-insensitive); quoted values never
// classify as Bool even if their contents match one of these words.
func isBoolLiteral(text string) bool {
	if len(text) == 0 || text[0] == '\'' || text[0] == '"' {
		return false
	}
	switch strings.ToLower(text) {
	case "true", "false", "yes", "no", "on", "off":
		return true
	default:
		return false
	}
}

// inferNumberKind classifies a Number-token's text the way the
// reference implementation's Field::kind() does: by actually
// attempting a numeric conversion rather than trusting the lexer's
// Number/String token split. lexNumber emits a Number token for a
// mantissa-less exponent like "e-23" (the sign alone makes its run
// length nonzero), but that text fails both ParseInt and ParseFloat,
// so it falls back to ValueString -- matching spec.md §8's "'e-23'
// alone is treated as a String (no leading coefficient)".
func inferNumberKind(text string) ValueKind {
	if _, err := strconv.ParseInt(text, 10, 64); err == nil {
		return ValueInt
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return ValueFloat
	}
	return ValueString
}

