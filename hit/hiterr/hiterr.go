// Package hiterr defines the typed error kinds raised while lexing,
// parsing, and expanding HIT documents. Every error carries the
// location it originated from so callers can render
// "<file>:<line>.<col>: <message>" without re-parsing the message text.
package hiterr

import "fmt"

// Pos is a source location: a byte-stream position tagged with the
// file it came from.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d.%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d.%d", p.File, p.Line, p.Column)
}

// Kind identifies the broad category of a HIT error, mirroring the
// error kinds enumerated for the core.
type Kind int

const (
	KindLex Kind = iota
	KindParse
	KindInclude
	KindOverrideConflict
	KindBrace
	KindType
	KindDuplicateParam
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "lex"
	case KindParse:
		return "parse"
	case KindInclude:
		return "include"
	case KindOverrideConflict:
		return "override-conflict"
	case KindBrace:
		return "brace"
	case KindType:
		return "type"
	case KindDuplicateParam:
		return "duplicate-param"
	default:
		return "unknown"
	}
}

// Error is the common error type for all HIT failures. It formats as
// "<file>:<line>.<col>: <message>" when a position is known, and
// exposes structured fields for framework/exterrors.Fields.
type Error struct {
	Kind Kind
	Pos  Pos
	Msg  string

	// Wrapped, if set, is an underlying cause (e.g. an afero error for
	// an include that could not be opened).
	Wrapped error
}

func New(kind Kind, pos Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, pos Pos, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...), Wrapped: cause}
}

func (e *Error) Error() string {
	if e.Pos.Line == 0 && e.Pos.File == "" {
		return e.Msg
	}
	return e.Pos.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Fields implements the interface framework/exterrors.Fields looks
// for, so that log.Logger.Error can render structured HIT errors
// without parsing their message text.
func (e *Error) Fields() map[string]interface{} {
	f := map[string]interface{}{
		"kind":   e.Kind.String(),
		"reason": e.Msg,
	}
	if e.Pos.File != "" {
		f["file"] = e.Pos.File
	}
	if e.Pos.Line != 0 {
		f["line"] = e.Pos.Line
		f["column"] = e.Pos.Column
	}
	return f
}
