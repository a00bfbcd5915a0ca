// Package tree defines the in-memory document tree shared by the loader and the reconciler.
//
// A Node is exactly one of:
//   - *Mapping: ordered, unique string keys mapped to nodes
//   - *Sequence: ordered list of nodes
//   - *Scalar: string, int64, uint64, float64, bool or nil
//
// Callers switch on the concrete type (or Kind) instead of inspecting dynamic values.
// Nodes have no identity beyond their position; Equal compares shape and values only.
//
// # Source details
//
// Nodes read from a document keep how they were written: a Format (style and
// comments) on every node and on every mapping key, plus the resolved tag and
// source text of each scalar. None of this affects Equal. Keys that are not
// strings are stored under KeyID(tag, text), which keeps 1 and "1" apart.
//
// # Usage
//
//	m := tree.NewMapping()
//	m.Set("name", tree.String("api"))
//	m.Set("replicas", tree.Int(3))
//
//	copy := m.CloneMapping()
//	tree.Equal(m, copy) // true
package tree
