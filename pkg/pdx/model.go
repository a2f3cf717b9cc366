package pdx

import (
	"github.com/patchling/patchling/pkg/errors"
)

// RelationType is the operator joining a tag to its value.
type RelationType uint8

const (
	// Normal is `=`, the implicit default.
	Normal RelationType = iota
	// Lt is `<`.
	Lt
	// Gt is `>`.
	Gt
	// Le is `<=`.
	Le
	// Ge is `>=`.
	Ge
	// Eq is `==`.
	Eq
	// Ne is `!=`.
	Ne
)

var relationNames = [...]string{
	Normal: "normal",
	Lt:     "lt",
	Gt:     "gt",
	Le:     "le",
	Ge:     "ge",
	Eq:     "eq",
	Ne:     "ne",
}

var relationOperators = [...]string{
	Normal: "=",
	Lt:     "<",
	Gt:     ">",
	Le:     "<=",
	Ge:     ">=",
	Eq:     "==",
	Ne:     "!=",
}

// String returns the operator as written in PDX script.
func (t RelationType) String() string {
	if int(t) < len(relationOperators) {
		return relationOperators[t]
	}
	return "?"
}

// Name returns the boundary name of the operator ("normal", "lt", ...).
func (t RelationType) Name() string {
	if int(t) < len(relationNames) {
		return relationNames[t]
	}
	return "unknown"
}

// ParseRelationName is the inverse of Name.
func ParseRelationName(name string) (RelationType, error) {
	for i, n := range relationNames {
		if n == name {
			return RelationType(i), nil
		}
	}
	return Normal, errors.Newf(errors.ErrInvalidInput, "unknown relation type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t RelationType) MarshalText() ([]byte, error) {
	if int(t) >= len(relationNames) {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid relation type %d", uint8(t))
	}
	return []byte(relationNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *RelationType) UnmarshalText(text []byte) error {
	rt, err := ParseRelationName(string(text))
	if err != nil {
		return err
	}
	*t = rt
	return nil
}

// Value is the right-hand side of a Relation. It is one of Block, String,
// Numeric, Variable or VariableExpr.
type Value interface {
	isValue()
}

// Content is one entry of a Block. It is either a Relation or a bare String.
type Content interface {
	isContent()
}

// String is a text value, or a standalone token when used as Content.
type String string

// Numeric is a value token that parsed as a decimal number.
type Numeric float64

// Variable references a scripted variable by name (`@name`).
type Variable string

// VariableExpr is a computed variable expression (`@\[expr]`), kept verbatim.
type VariableExpr string

// Block is an ordered sequence of contents. Order is preserved and duplicates
// are kept.
type Block struct {
	Contents []Content
}

// Relation is one `tag <op> value` statement.
type Relation struct {
	Tag   string
	Type  RelationType
	Value Value
}

func (Block) isValue()        {}
func (String) isValue()       {}
func (Numeric) isValue()      {}
func (Variable) isValue()     {}
func (VariableExpr) isValue() {}

func (Relation) isContent() {}
func (String) isContent()   {}

// NewBlock returns a block holding the given contents in order.
func NewBlock(contents ...Content) Block {
	if len(contents) == 0 {
		return Block{}
	}
	return Block{Contents: contents}
}

// Len returns the number of contents.
func (b Block) Len() int {
	return len(b.Contents)
}

// Relations returns the relations of the block in order, skipping bare strings.
func (b Block) Relations() []Relation {
	var rels []Relation
	for _, c := range b.Contents {
		if rel, ok := c.(Relation); ok {
			rels = append(rels, rel)
		}
	}
	return rels
}

// Find returns the first relation with the given tag.
func (b Block) Find(tag string) (Relation, bool) {
	for _, c := range b.Contents {
		if rel, ok := c.(Relation); ok && rel.Tag == tag {
			return rel, true
		}
	}
	return Relation{}, false
}
