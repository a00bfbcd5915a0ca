package tree

// Kind identifies which variant a Node is.
type Kind int

const (
	// KindMapping is an ordered set of unique string keys.
	KindMapping Kind = iota + 1
	// KindSequence is an ordered list of nodes.
	KindSequence
	// KindScalar is a string, number, boolean or null.
	KindScalar
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// Node is one of *Mapping, *Sequence or *Scalar.
type Node interface {
	// Kind reports the variant of the node.
	Kind() Kind
	// Clone returns a deep copy sharing no memory with the receiver.
	Clone() Node

	node()
}

// Mapping is an ordered mapping of unique string keys to nodes.
// Keys that are not strings are stored under their KeyID.
// The zero value is not usable; call NewMapping.
type Mapping struct {
	// Format describes the mapping itself.
	Format Format

	keys       []string
	values     map[string]Node
	keyFormats map[string]Format
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Node)}
}

func (*Mapping) Kind() Kind { return KindMapping }
func (*Mapping) node()      {}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. An existing key keeps its position;
// a new key is appended.
func (m *Mapping) Set(key string, value Node) {
	if value == nil {
		value = Null()
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key, reporting whether it was present.
func (m *Mapping) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	delete(m.keyFormats, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// KeyFormat returns how key was written.
func (m *Mapping) KeyFormat(key string) Format {
	if m == nil {
		return Format{}
	}
	return m.keyFormats[key]
}

// SetKeyFormat records how key is written. It has no effect when key is absent.
func (m *Mapping) SetKeyFormat(key string, f Format) {
	if _, ok := m.values[key]; !ok {
		return
	}
	if f.IsZero() {
		delete(m.keyFormats, key)
		return
	}
	if m.keyFormats == nil {
		m.keyFormats = make(map[string]Format)
	}
	m.keyFormats[key] = f
}

// Clone returns a deep copy of the mapping.
func (m *Mapping) Clone() Node {
	return m.CloneMapping()
}

// CloneMapping is Clone with the concrete type preserved.
func (m *Mapping) CloneMapping() *Mapping {
	out := NewMapping()
	if m == nil {
		return out
	}
	out.Format = m.Format
	out.keys = make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		out.keys = append(out.keys, k)
		out.values[k] = m.values[k].Clone()
	}
	for k, f := range m.keyFormats {
		out.SetKeyFormat(k, f)
	}
	return out
}

// Sequence is an ordered list of nodes.
type Sequence struct {
	Items  []Node
	Format Format
}

// NewSequence returns a sequence holding items.
func NewSequence(items ...Node) *Sequence {
	return &Sequence{Items: items}
}

func (*Sequence) Kind() Kind { return KindSequence }
func (*Sequence) node()      {}

// Len returns the number of items.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Items)
}

// Clone returns a deep copy of the sequence.
func (s *Sequence) Clone() Node {
	out := &Sequence{Items: make([]Node, len(s.Items)), Format: s.Format}
	for i, item := range s.Items {
		out.Items[i] = item.Clone()
	}
	return out
}

// Scalar holds a leaf value: string, int64, uint64, float64, bool or nil.
//
// Scalars read from a document also carry their resolved tag and source text.
// A scalar with a Tag is written back as Text under that tag, so values such as
// 1.0 or 2024-01-02 keep their type. Values with no Go counterpart (timestamps,
// binary, custom tags) hold Text as their Value.
type Scalar struct {
	Value  any
	Tag    string
	Text   string
	Format Format
}

func (*Scalar) Kind() Kind { return KindScalar }
func (*Scalar) node()      {}

// Clone returns a copy of the scalar. Scalar values are immutable.
func (s *Scalar) Clone() Node {
	c := *s
	return &c
}

// IsNull reports whether the scalar holds null.
func (s *Scalar) IsNull() bool {
	return s.Value == nil
}

// String returns a string scalar.
func String(v string) *Scalar { return &Scalar{Value: v} }

// Int returns an integer scalar.
func Int(v int64) *Scalar { return &Scalar{Value: v} }

// Float returns a floating point scalar.
func Float(v float64) *Scalar { return &Scalar{Value: v} }

// Bool returns a boolean scalar.
func Bool(v bool) *Scalar { return &Scalar{Value: v} }

// Null returns a null scalar.
func Null() *Scalar { return &Scalar{} }

// IsMapping reports whether n is a non-nil mapping and returns it.
func IsMapping(n Node) (*Mapping, bool) {
	m, ok := n.(*Mapping)
	return m, ok && m != nil
}
