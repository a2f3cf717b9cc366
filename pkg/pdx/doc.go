// Package pdx implements the PDX script data language used by Paradox game
// data files: an in-memory model, a recursive-descent parser, and a
// serializer whose output parses back to the same tree.
//
// # Format
//
//	# comment to end of line
//	country_event = {
//	    id = my_mod.1
//	    trigger = { years_passed >= 10 has_country_flag = ready }
//	    weight = @base_weight
//	    factor = @\[ base * 2 ]
//	    title = "My Event"
//	    is_triggered_only
//	}
//
// A file is a Block: an ordered list of Relations (`key <op> value`) and bare
// Strings (a key with no operator). Values are nested Blocks, Strings,
// Numerics, Variables (`@name`) or VariableExprs (`@\[ ... ]`, kept verbatim).
//
// Keys and values are scanned with two different character classes, so text
// that is valid unquoted in value position may need quotes in key position.
// The serializer makes that decision from the string content alone.
//
// # Boundary encoding
//
// Block, Relation and RelationType implement JSON and YAML marshalling for the
// scripting boundary. A block encodes as an array; a bare string as a plain
// string; a relation as an object with `tag`, an optional `relation` and one of
// `block`, `val`, `num`, `var` or `var_expr`.
package pdx
