package render

import (
	"strings"

	"github.com/hitlang/hit/hit/ast"
)

// formatValue renders a Field's raw value. Numbers and bools pass
// through bare. Strings keep whatever quoting they carry: an empty
// value becomes '', single-quoted values are emitted verbatim (never
// reflowed), and double-quoted values reflow across continuation
// lines aligned under the '=' when they overflow maxlen or contain
// embedded newlines. An unquoted value containing whitespace (which
// can only arise programmatically, e.g. from brace expansion) is
// wrapped in single quotes so it survives a re-parse as one token.
func formatValue(raw string, kind ast.ValueKind, prefixLen int, indentText string, depth int, maxlen int) string {
	if kind != ast.ValueString {
		return raw
	}
	if raw == "" {
		return "''"
	}
	if raw[0] == '\'' {
		return raw
	}
	if raw[0] == '"' {
		content := ast.Unquote(raw)
		if strings.Contains(content, "\n") {
			return reflowMultiline(content, prefixLen, indentText, depth)
		}
		if maxlen > 0 && prefixLen+len(content)+2 > maxlen {
			return reflowLong(content, prefixLen, maxlen)
		}
		return raw
	}
	if strings.Contains(raw, "\n") {
		return reflowMultiline(raw, prefixLen, indentText, depth)
	}
	if !strings.ContainsAny(raw, " \t") {
		return raw
	}
	if maxlen <= 0 || prefixLen+len(raw)+2 <= maxlen {
		return "'" + raw + "'"
	}
	return reflowLong(raw, prefixLen, maxlen)
}

// reflowLong chunks raw (assumed free of embedded newlines) into
// double-quoted continuation lines, each as long as possible without
// exceeding maxlen-prefixLen, preferring to break on the last space
// within the budget and falling back to a hard split only when no
// space exists in the chunk at all.
func reflowLong(raw string, prefixLen, maxlen int) string {
	budget := maxlen - prefixLen - 2 // room for the surrounding quotes
	if budget < 1 {
		budget = 1
	}
	var lines []string
	for len(raw) > 0 {
		if len(raw) <= budget {
			lines = append(lines, raw)
			break
		}
		cut := budget
		if sp := strings.LastIndexByte(raw[:cut+1], ' '); sp > 0 {
			cut = sp
		}
		lines = append(lines, strings.TrimRight(raw[:cut], " "))
		raw = strings.TrimLeft(raw[cut:], " ")
	}

	pad := strings.Repeat(" ", prefixLen)
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n" + pad)
		}
		b.WriteString(`"` + line + `"`)
	}
	return b.String()
}

// reflowMultiline re-indents a value that already contains embedded
// newlines so its continuation lines align under the opening quote
// column, shifting each line by the delta between the field's own
// indentation and prefixLen.
func reflowMultiline(raw string, prefixLen int, indentText string, depth int) string {
	origIndent := depth * len(indentText)
	delta := prefixLen - origIndent

	lines := strings.Split(raw, "\n")
	for i := 1; i < len(lines); i++ {
		if delta >= 0 {
			lines[i] = strings.Repeat(" ", delta) + lines[i]
		} else {
			trim := -delta
			if trim > len(lines[i]) {
				trim = len(lines[i])
			}
			lines[i] = lines[i][trim:]
		}
	}
	return `"` + strings.Join(lines, "\n") + `"`
}
