package pdx

import (
	"bytes"
	"encoding/json"

	"github.com/patchling/patchling/pkg/errors"
	"gopkg.in/yaml.v3"
)

// relationDoc is the boundary shape of a Relation. Exactly one value field is set.
type relationDoc struct {
	Tag      string       `json:"tag" yaml:"tag"`
	Relation RelationType `json:"relation,omitempty" yaml:"relation,omitempty"`
	Block    *Block       `json:"block,omitempty" yaml:"block,omitempty"`
	Val      *string      `json:"val,omitempty" yaml:"val,omitempty"`
	Num      *float64     `json:"num,omitempty" yaml:"num,omitempty"`
	Var      *string      `json:"var,omitempty" yaml:"var,omitempty"`
	VarExpr  *string      `json:"var_expr,omitempty" yaml:"var_expr,omitempty"`
}

func newRelationDoc(r Relation) relationDoc {
	doc := relationDoc{Tag: r.Tag, Relation: r.Type}
	switch v := r.Value.(type) {
	case Block:
		doc.Block = &v
	case String:
		s := string(v)
		doc.Val = &s
	case Numeric:
		f := float64(v)
		doc.Num = &f
	case Variable:
		s := string(v)
		doc.Var = &s
	case VariableExpr:
		s := string(v)
		doc.VarExpr = &s
	default:
		doc.Block = &Block{}
	}
	return doc
}

func (d relationDoc) relation() (Relation, error) {
	r := Relation{Tag: d.Tag, Type: d.Relation}
	set := 0
	if d.Block != nil {
		r.Value = *d.Block
		set++
	}
	if d.Val != nil {
		r.Value = String(*d.Val)
		set++
	}
	if d.Num != nil {
		r.Value = Numeric(*d.Num)
		set++
	}
	if d.Var != nil {
		r.Value = Variable(*d.Var)
		set++
	}
	if d.VarExpr != nil {
		r.Value = VariableExpr(*d.VarExpr)
		set++
	}
	if d.Tag == "" {
		return Relation{}, errors.New(errors.ErrInvalidInput, "relation has an empty tag")
	}
	if set != 1 {
		return Relation{}, errors.Newf(errors.ErrInvalidInput,
			"relation %q must have exactly one value, found %d", d.Tag, set)
	}
	return r, nil
}

// docs converts contents to their untagged boundary representation.
func (b Block) docs() []interface{} {
	out := make([]interface{}, 0, len(b.Contents))
	for _, c := range b.Contents {
		switch c := c.(type) {
		case Relation:
			out = append(out, newRelationDoc(c))
		case String:
			out = append(out, string(c))
		}
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.docs())
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "block must be an array")
	}

	var contents []Content
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '"' {
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				return err
			}
			contents = append(contents, String(s))
			continue
		}

		var doc relationDoc
		if err := json.Unmarshal(item, &doc); err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput, "block member must be a string or a relation")
		}
		rel, err := doc.relation()
		if err != nil {
			return err
		}
		contents = append(contents, rel)
	}
	b.Contents = contents
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r Relation) MarshalJSON() ([]byte, error) {
	return json.Marshal(newRelationDoc(r))
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Relation) UnmarshalJSON(data []byte) error {
	var doc relationDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	rel, err := doc.relation()
	if err != nil {
		return err
	}
	*r = rel
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (b Block) MarshalYAML() (interface{}, error) {
	return b.docs(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Block) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return errors.Newf(errors.ErrInvalidInput, "line %d: block must be a sequence", node.Line)
	}

	var contents []Content
	for _, item := range node.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			contents = append(contents, String(item.Value))
		case yaml.MappingNode:
			var doc relationDoc
			if err := item.Decode(&doc); err != nil {
				return err
			}
			rel, err := doc.relation()
			if err != nil {
				return err
			}
			contents = append(contents, rel)
		default:
			return errors.Newf(errors.ErrInvalidInput,
				"line %d: block member must be a string or a relation", item.Line)
		}
	}
	b.Contents = contents
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r Relation) MarshalYAML() (interface{}, error) {
	return newRelationDoc(r), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Relation) UnmarshalYAML(node *yaml.Node) error {
	var doc relationDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	rel, err := doc.relation()
	if err != nil {
		return err
	}
	*r = rel
	return nil
}
