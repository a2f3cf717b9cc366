package pdx

// isWhitespace reports bytes that separate tokens.
func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// isKeyByte reports bytes allowed in an unquoted key. Keys are ASCII only.
func isKeyByte(b byte) bool {
	if isAlnum(rune(b)) {
		return true
	}
	switch b {
	case '_', ':', '@', '.', '"', '-', '\'', '[', ']', '!', '<', '>', '$', '^', '&':
		return true
	}
	return false
}

// isValueRune reports runes allowed in an unquoted value. The non-ASCII
// letters come from the target game's localisation keys.
func isValueRune(r rune) bool {
	if isAlnum(r) {
		return true
	}
	switch r {
	case '_', '.', '-', ':', ';', '\'', '[', ']', '@', '+', '`', '%', '/', '!', ',',
		'<', '>', '?', '$', 'š', 'Š', '’', '|', '^', '*', '&':
		return true
	}
	return false
}

// isKeySafeRune reports runes that may appear in a key emitted without quotes.
// It is the intersection of the key and value classes.
func isKeySafeRune(r rune) bool {
	return r < 0x80 && r != '"' && isKeyByte(byte(r)) && isValueRune(r)
}

// isOperatorStart reports runes an operator may begin with. An unquoted token
// starting with one of these would be read as an operator after a bare string.
func isOperatorStart(r rune) bool {
	return r == '<' || r == '>' || r == '!' || r == '='
}

// isDecimalLiteral reports whether s is a plain decimal float literal:
// an optional sign, digits with an optional fraction, and an optional exponent.
// Special values and hexadecimal forms are rejected.
func isDecimalLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}
