// Package document loads and serializes configuration documents.
//
// It is the only package that knows about YAML. Parse turns bytes into a
// *tree.Mapping using the yaml.v3 node API so mapping key order survives;
// Marshal turns a mapping back into bytes.
//
// # Normalization
//
//   - An empty, comment-only or null document parses as an empty mapping.
//   - Aliases are expanded and merge keys ("<<") are folded into plain keys.
//   - A non-mapping root, duplicate keys or a multi-document stream is rejected.
//   - Alias expansion is bounded; see ErrExcessiveAliasing.
//
// # Fidelity
//
// Every scalar keeps its resolved tag and source text, so values nobody changed
// are written back as they were read: 1.0 stays a float and 2024-01-02 stays a
// timestamp. Keys keep their type too. Comments, quoting and flow style are kept
// on the nodes that carried them.
//
// # Usage
//
//	m, err := document.Parse(data)
//	out, err := document.Marshal(m, document.Config{Indent: 2})
package document
