package pdx

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/patchling/patchling/pkg/errors"
	"github.com/patchling/patchling/pkg/logging"
)

const utf8BOM = "\xEF\xBB\xBF"

// ParseError reports malformed PDX source. Line and Column are 1-based.
type ParseError struct {
	File   string
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Msg)
}

// Unwrap exposes the PARSE error code to errors.IsErrorCode.
func (e *ParseError) Unwrap() error {
	return errors.New(errors.ErrParse, e.Msg).
		WithDetail("file", e.File).
		WithDetail("line", e.Line).
		WithDetail("column", e.Column)
}

type parser struct {
	src  string
	pos  int
	file string
	line int
	col  int
}

// Parse parses a complete PDX file. fileName is only used in diagnostics.
// A file either parses completely or an error is returned.
func Parse(fileName string, data []byte) (Block, error) {
	src := strings.TrimPrefix(string(data), utf8BOM)
	p := &parser{src: src, file: fileName, line: 1, col: 1}

	if !utf8.ValidString(src) {
		return Block{}, p.invalidUTF8()
	}

	block, err := p.parseDocument()
	if err != nil {
		return Block{}, err
	}

	logger := logging.GetLogger("pdx.parser")
	logger.Trace().
		Str("file", fileName).
		Int("contents", block.Len()).
		Msg("Parsed PDX file")
	return block, nil
}

// parseDocument parses top-level contents. A document wrapped in a single
// pair of outer braces yields the contents of that block.
func (p *parser) parseDocument() (Block, error) {
	p.skipWhitespace()
	if p.peek("{") {
		b, err := p.parseBracketed()
		if err != nil {
			return Block{}, err
		}
		p.skipWhitespace()
		if !p.atEnd() {
			return Block{}, p.errorf("Unexpected content after closing brace.")
		}
		return b, nil
	}

	var contents []Content
	for {
		p.skipWhitespace()
		if p.atEnd() {
			break
		}
		c, err := p.parseContent()
		if err != nil {
			return Block{}, err
		}
		contents = append(contents, c)
	}
	return Block{Contents: contents}, nil
}

// ParseString is Parse for in-memory source text.
func ParseString(fileName, src string) (Block, error) {
	return Parse(fileName, []byte(src))
}

func (p *parser) errorf(format string, args ...interface{}) *ParseError {
	return p.errorAt(p.line, p.col, format, args...)
}

func (p *parser) errorAt(line, col int, format string, args ...interface{}) *ParseError {
	return &ParseError{File: p.file, Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) invalidUTF8() *ParseError {
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		p.step(size)
	}
	return p.errorf("Source is not valid UTF-8.")
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.src)
}

// advance moves the cursor count bytes forward. Moving past the end of the
// source is an error.
func (p *parser) advance(count int) error {
	if p.pos+count > len(p.src) {
		return p.errorf("Unexpected end of PDX source file.")
	}
	p.step(count)
	return nil
}

func (p *parser) step(count int) {
	end := p.pos + count
	for ; p.pos < end; p.pos++ {
		switch b := p.src[p.pos]; {
		case b == '\n':
			p.line++
			p.col = 1
		case b == '\r':
		case b&0xC0 == 0x80:
			// UTF-8 continuation byte; the rune was counted on its lead byte.
		default:
			p.col++
		}
	}
}

// skipWhitespace skips whitespace and `#` comments.
func (p *parser) skipWhitespace() {
	for !p.atEnd() {
		switch b := p.src[p.pos]; {
		case isWhitespace(b):
			p.step(1)
		case b == '#':
			end := strings.IndexByte(p.src[p.pos:], '\n')
			if end < 0 {
				end = len(p.src) - p.pos
			}
			p.step(end)
		default:
			return
		}
	}
}

func (p *parser) peek(tok string) bool {
	return strings.HasPrefix(p.src[p.pos:], tok)
}

// check advances past tok if it is next in the source.
func (p *parser) check(tok string) bool {
	if p.peek(tok) {
		p.step(len(tok))
		return true
	}
	return false
}

// parseQuoted parses a double-quoted string if one starts at the cursor.
// Unescaped strings are sliced from the source without copying.
func (p *parser) parseQuoted() (string, bool, error) {
	if !p.peek(`"`) {
		return "", false, nil
	}
	startLine, startCol := p.line, p.col
	p.step(1)

	i := p.pos
	escaped := false
	for i < len(p.src) && p.src[i] != '"' {
		if p.src[i] == '\\' {
			escaped = true
			i++
		}
		i++
	}
	if i >= len(p.src) {
		return "", false, p.errorAt(startLine, startCol, "Found unterminated string.")
	}

	raw := p.src[p.pos:i]
	p.step(i - p.pos + 1)
	if !escaped {
		return raw, true, nil
	}
	return unescape(raw), true, nil
}

// unescape drops the backslash of every escape sequence, keeping the escaped
// character. `\\` and `\"` therefore collapse to `\` and `"`.
func unescape(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
		}
		sb.WriteByte(raw[i])
	}
	return sb.String()
}

// parseKey parses a quoted string or a run of key-class bytes.
func (p *parser) parseKey() (string, error) {
	p.skipWhitespace()
	if s, ok, err := p.parseQuoted(); err != nil || ok {
		return s, err
	}

	count := 0
	for p.pos+count < len(p.src) && isKeyByte(p.src[p.pos+count]) {
		count++
	}
	if count == 0 {
		return "", p.errorf("Could not parse identifier.")
	}

	key := p.src[p.pos : p.pos+count]
	p.step(count)
	return key, nil
}

// scanValueRun returns the length in bytes of the value-class run at the cursor.
func (p *parser) scanValueRun() int {
	count := 0
	for p.pos+count < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos+count:])
		if !isValueRune(r) {
			break
		}
		count += size
	}
	return count
}

// parseValue parses a quoted string or a value-class token, coercing
// unquoted decimal literals to Numeric.
func (p *parser) parseValue() (Value, error) {
	if s, ok, err := p.parseQuoted(); err != nil {
		return nil, err
	} else if ok {
		return String(s), nil
	}

	count := p.scanValueRun()
	if count == 0 {
		if p.atEnd() {
			return nil, p.errorf("Unexpected end of PDX source file.")
		}
		return nil, p.errorf("Could not parse identifier.")
	}

	tok := p.src[p.pos : p.pos+count]
	p.step(count)
	if isDecimalLiteral(tok) {
		if f, err := strconv.ParseFloat(tok, 64); err == nil {
			return Numeric(f), nil
		}
	}
	return String(tok), nil
}

// parseVariable parses `@name` or `@\[expr]`. The cursor is on the `@`.
func (p *parser) parseVariable() (Value, error) {
	p.step(1)
	if p.check(`\[`) {
		end := strings.IndexByte(p.src[p.pos:], ']')
		if end < 0 {
			return nil, p.errorf("Unexpected end of PDX source file.")
		}
		expr := p.src[p.pos : p.pos+end]
		p.step(end + 1)
		return VariableExpr(expr), nil
	}

	count := p.scanValueRun()
	if count == 0 {
		return nil, p.errorf("Could not parse identifier.")
	}
	name := p.src[p.pos : p.pos+count]
	p.step(count)
	return Variable(name), nil
}

// parseRelationType matches an operator, longest first.
func (p *parser) parseRelationType() (RelationType, bool) {
	p.skipWhitespace()
	switch {
	case p.check("=="):
		return Eq, true
	case p.check("!="):
		return Ne, true
	case p.check("<="):
		return Le, true
	case p.check(">="):
		return Ge, true
	case p.check("<"):
		return Lt, true
	case p.check(">"):
		return Gt, true
	case p.check("="):
		return Normal, true
	}
	return Normal, false
}

func (p *parser) parseContent() (Content, error) {
	p.skipWhitespace()
	keyLine, keyCol := p.line, p.col
	key, err := p.parseKey()
	if err != nil {
		return nil, err
	}

	rt, ok := p.parseRelationType()
	if !ok {
		return String(key), nil
	}
	// A relation tag is never empty, even when quoted.
	if key == "" {
		return nil, p.errorAt(keyLine, keyCol, "Could not parse identifier.")
	}

	p.skipWhitespace()
	var value Value
	switch {
	case p.peek("{"):
		value, err = p.parseBracketed()
	case p.peek("@"):
		value, err = p.parseVariable()
	default:
		value, err = p.parseValue()
	}
	if err != nil {
		return nil, err
	}
	return Relation{Tag: key, Type: rt, Value: value}, nil
}

// parseBracketed parses `{ ... }`. The cursor is on the `{`.
func (p *parser) parseBracketed() (Block, error) {
	if err := p.advance(1); err != nil {
		return Block{}, err
	}

	var contents []Content
	for {
		p.skipWhitespace()
		if p.atEnd() {
			return Block{}, p.errorf("Unexpected end of PDX source file.")
		}
		if p.check("}") {
			break
		}
		c, err := p.parseContent()
		if err != nil {
			return Block{}, err
		}
		contents = append(contents, c)
	}
	return Block{Contents: contents}, nil
}
