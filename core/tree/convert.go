package tree

import (
	"fmt"
	"sort"
)

// Equal reports whether a and b are structurally equal.
// Mapping key order is not significant; sequence order is. Scalars compare by
// value, and by tag when both carry one. Formats are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch av := a.(type) {
	case *Mapping:
		bv := b.(*Mapping)
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			other, ok := bv.values[k]
			if !ok || !Equal(av.values[k], other) {
				return false
			}
		}
		return true
	case *Sequence:
		bv := b.(*Sequence)
		if len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *Scalar:
		bv := b.(*Scalar)
		if av.Tag != "" && bv.Tag != "" && av.Tag != bv.Tag {
			return false
		}
		return av.Value == bv.Value
	}
	return false
}

// FromValue converts plain Go values into a tree.
// Maps become mappings with sorted keys, slices become sequences and
// integer widths are normalized to int64 so that Equal compares by value.
// Nodes passed in are cloned.
func FromValue(v any) (Node, error) {
	switch val := v.(type) {
	case Node:
		return val.Clone(), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		m := NewMapping()
		for _, k := range keys {
			child, err := FromValue(val[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			m.Set(k, child)
		}
		return m, nil
	case []any:
		s := &Sequence{Items: make([]Node, 0, len(val))}
		for i, item := range val {
			child, err := FromValue(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			s.Items = append(s.Items, child)
		}
		return s, nil
	}

	scalar, ok := NormalizeScalar(v)
	if !ok {
		return nil, fmt.Errorf("unsupported value of type %T", v)
	}
	return &Scalar{Value: scalar}, nil
}

// MustMapping is FromValue for map literals; it panics on unsupported values.
func MustMapping(v map[string]any) *Mapping {
	n, err := FromValue(v)
	if err != nil {
		panic(err)
	}
	return n.(*Mapping)
}

// NormalizeScalar maps Go scalar types onto the value set a Scalar holds.
func NormalizeScalar(v any) (any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, true
	case string:
		return val, true
	case []byte:
		return string(val), true
	case bool:
		return val, true
	case int:
		return int64(val), true
	case int64:
		return val, true
	case int32:
		return int64(val), true
	case int16:
		return int64(val), true
	case int8:
		return int64(val), true
	case uint:
		return uint64(val), true
	case uint64:
		return val, true
	case uint32:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint8:
		return int64(val), true
	case float64:
		return val, true
	case float32:
		return float64(val), true
	default:
		return nil, false
	}
}

// ToValue converts a tree back into plain Go values.
// Mapping key order is lost.
func ToValue(n Node) any {
	switch val := n.(type) {
	case *Mapping:
		out := make(map[string]any, val.Len())
		for _, k := range val.keys {
			out[k] = ToValue(val.values[k])
		}
		return out
	case *Sequence:
		out := make([]any, len(val.Items))
		for i, item := range val.Items {
			out[i] = ToValue(item)
		}
		return out
	case *Scalar:
		return val.Value
	}
	return nil
}
