package pdx

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const indentUnit = "    "

// Render serializes a block to PDX script.
//
// outerBraces wraps the output in `{ }` so it can be embedded as a value;
// files are usually rendered without. pretty puts one entry per line with
// four spaces of indentation per depth; otherwise entries are separated by a
// single space.
func Render(b Block, outerBraces, pretty bool) string {
	var sb strings.Builder
	w := writer{sb: &sb, pretty: pretty}
	if outerBraces {
		w.block(b, 1)
	} else {
		w.contents(b, 0)
	}
	return sb.String()
}

// String renders the block compactly with braces.
func (b Block) String() string {
	return Render(b, true, false)
}

// String renders the relation compactly as `tag op value`.
func (r Relation) String() string {
	var sb strings.Builder
	w := writer{sb: &sb}
	w.relation(r, 1)
	return sb.String()
}

type writer struct {
	sb     *strings.Builder
	pretty bool
}

func (w writer) indent(depth int) {
	for i := 0; i < depth; i++ {
		w.sb.WriteString(indentUnit)
	}
}

// block writes `{ ... }` with entries at depth and the closing brace at depth-1.
func (w writer) block(b Block, depth int) {
	w.sb.WriteByte('{')
	if w.pretty && b.Len() > 0 {
		w.sb.WriteByte('\n')
	} else {
		w.sb.WriteByte(' ')
	}
	w.contents(b, depth)
	switch {
	case w.pretty && b.Len() > 0:
		w.indent(depth - 1)
	case b.Len() > 0:
		w.sb.WriteByte(' ')
	}
	w.sb.WriteByte('}')
}

// contents writes the entries of b. Pretty entries are newline-terminated;
// compact entries are space-separated.
func (w writer) contents(b Block, depth int) {
	for i, c := range b.Contents {
		if w.pretty {
			w.indent(depth)
		} else if i > 0 {
			w.sb.WriteByte(' ')
		}
		switch c := c.(type) {
		case Relation:
			w.relation(c, depth+1)
		case String:
			w.sb.WriteString(QuoteKey(string(c)))
		}
		if w.pretty {
			w.sb.WriteByte('\n')
		}
	}
}

// relation writes `tag op value`; a block value puts its entries at depth.
func (w writer) relation(r Relation, depth int) {
	w.sb.WriteString(QuoteKey(r.Tag))
	w.sb.WriteByte(' ')
	w.sb.WriteString(r.Type.String())
	w.sb.WriteByte(' ')
	w.value(r.Value, depth)
}

func (w writer) value(v Value, depth int) {
	switch v := v.(type) {
	case Block:
		w.block(v, depth)
	case String:
		w.sb.WriteString(QuoteValue(string(v)))
	case Numeric:
		w.sb.WriteString(FormatNumeric(float64(v)))
	case Variable:
		w.sb.WriteByte('@')
		w.sb.WriteString(string(v))
	case VariableExpr:
		w.sb.WriteString(`@\[`)
		w.sb.WriteString(string(v))
		w.sb.WriteByte(']')
	case nil:
		w.block(Block{}, depth)
	}
}

// FormatNumeric renders f as the shortest decimal that parses back to f.
func FormatNumeric(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// QuoteKey returns s as it must appear in key position: bare when it would
// scan back as the same single key token, quoted otherwise.
func QuoteKey(s string) string {
	if keySafe(s) {
		return s
	}
	return quote(s)
}

// QuoteValue returns s as it must appear in value position: bare when it
// would scan back as the same String, quoted otherwise.
func QuoteValue(s string) string {
	if valueSafe(s) {
		return s
	}
	return quote(s)
}

func keySafe(s string) bool {
	if s == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	if isOperatorStart(first) {
		return false
	}
	for _, r := range s {
		if !isKeySafeRune(r) {
			return false
		}
	}
	return true
}

func valueSafe(s string) bool {
	if s == "" || s[0] == '@' || isDecimalLiteral(s) {
		return false
	}
	for _, r := range s {
		if !isValueRune(r) {
			return false
		}
	}
	return true
}

// quote wraps s in double quotes, escaping `\` and `"`.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '"':
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}
