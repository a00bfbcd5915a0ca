package tree

import "strings"

// Style is the presentation style a node was read with.
type Style uint8

const (
	// StyleDefault lets the serializer pick a style.
	StyleDefault Style = iota
	// StyleFlow writes a mapping or sequence inline, as in {a: 1} or [1, 2].
	StyleFlow
	// StyleSingleQuoted writes a scalar in single quotes.
	StyleSingleQuoted
	// StyleDoubleQuoted writes a scalar in double quotes.
	StyleDoubleQuoted
	// StyleLiteral writes a scalar as a "|" block.
	StyleLiteral
	// StyleFolded writes a scalar as a ">" block.
	StyleFolded
)

// Format records how a node was written. The zero value lets the serializer
// decide. Format never takes part in Equal.
type Format struct {
	Style Style
	// Comments keep their leading "#".
	HeadComment string
	LineComment string
	FootComment string
}

// IsZero reports whether f carries no presentation details.
func (f Format) IsZero() bool {
	return f == Format{}
}

// StrTag is the tag of string scalars and string keys.
const StrTag = "!!str"

// keySep qualifies non-string keys. YAML text is valid UTF-8, so it never
// contains this byte.
const keySep = "\xff"

// KeyID returns the identity under which a key with the given resolved tag and
// text is stored in a Mapping. String keys are stored under their text; other
// keys are qualified by their tag, so 1 and "1" are distinct entries.
func KeyID(tag, text string) string {
	if tag == "" || tag == StrTag {
		return text
	}
	return keySep + tag + keySep + text
}

// SplitKeyID returns the tag and text of a key identity.
func SplitKeyID(id string) (tag, text string) {
	if !strings.HasPrefix(id, keySep) {
		return StrTag, id
	}
	rest := id[len(keySep):]
	i := strings.Index(rest, keySep)
	if i < 0 {
		return StrTag, id
	}
	return rest[:i], rest[i+len(keySep):]
}

// KeyText returns a key as written, without its tag.
func KeyText(id string) string {
	_, text := SplitKeyID(id)
	return text
}
