package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"config-updater/core/tree"

	"gopkg.in/yaml.v3"
)

const mergeTag = "!!merge"

// Parse decodes a single YAML document into a mapping.
// Empty, comment-only and null documents yield an empty mapping.
func Parse(data []byte) (*tree.Mapping, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return tree.NewMapping(), nil
		}
		return nil, err
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("expected a single document, found more")
	}

	root := &doc
	var docFormat tree.Format
	if root.Kind == yaml.DocumentNode {
		docFormat = tree.Format{HeadComment: root.HeadComment, FootComment: root.FootComment}
		if len(root.Content) == 0 {
			return tree.NewMapping(), nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 || isNull(root) {
		return tree.NewMapping(), nil
	}

	c := &converter{active: make(map[*yaml.Node]bool)}
	n, err := c.convert(root)
	if err != nil {
		return nil, err
	}
	m, ok := tree.IsMapping(n)
	if !ok {
		return nil, fmt.Errorf("document root must be a mapping, got %s", n.Kind())
	}
	m.Format.HeadComment = joinComments(docFormat.HeadComment, m.Format.HeadComment)
	m.Format.FootComment = joinComments(m.Format.FootComment, docFormat.FootComment)
	return m, nil
}

// Alias expansion limits, matching the ones yaml.v3 applies when decoding into
// Go values. Small documents may take up to 99% of their nodes from aliases;
// the allowance shrinks to 10% as documents grow.
const (
	aliasRatioRangeLow  = 400000
	aliasRatioRangeHigh = 4000000
	aliasRatioRange     = float64(aliasRatioRangeHigh - aliasRatioRangeLow)
)

// ErrExcessiveAliasing is returned for documents whose aliases expand far
// beyond their source size.
var ErrExcessiveAliasing = errors.New("document contains excessive aliasing")

func allowedAliasRatio(nodes int) float64 {
	switch {
	case nodes <= aliasRatioRangeLow:
		return 0.99
	case nodes >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(nodes-aliasRatioRangeLow)/aliasRatioRange)
	}
}

type converter struct {
	// active tracks alias targets currently being expanded.
	active map[*yaml.Node]bool

	aliasDepth int
	nodes      int
	aliased    int
}

// count records one produced node and fails once alias expansion dominates.
func (c *converter) count() error {
	c.nodes++
	if c.aliasDepth > 0 {
		c.aliased++
	}
	if c.aliased > 100 && c.nodes > 1000 && float64(c.aliased)/float64(c.nodes) > allowedAliasRatio(c.nodes) {
		return ErrExcessiveAliasing
	}
	return nil
}

func (c *converter) convert(n *yaml.Node) (tree.Node, error) {
	if err := c.count(); err != nil {
		return nil, err
	}

	switch n.Kind {
	case yaml.MappingNode:
		return c.mapping(n)
	case yaml.SequenceNode:
		seq := &tree.Sequence{Items: make([]tree.Node, 0, len(n.Content)), Format: format(n)}
		for _, item := range n.Content {
			child, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, child)
		}
		return seq, nil
	case yaml.ScalarNode:
		return scalar(n)
	case yaml.AliasNode:
		if c.active[n.Alias] {
			return nil, fmt.Errorf("line %d: recursive alias %q", n.Line, n.Value)
		}
		c.active[n.Alias] = true
		c.aliasDepth++
		defer func() {
			delete(c.active, n.Alias)
			c.aliasDepth--
		}()
		return c.convert(n.Alias)
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return tree.Null(), nil
		}
		return c.convert(n.Content[0])
	}
	return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
}

// mapping converts a mapping node. Explicit keys win over keys pulled in
// through merge keys, regardless of where the merge key appears.
func (c *converter) mapping(n *yaml.Node) (*tree.Mapping, error) {
	explicit := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.ShortTag() == mergeTag {
			continue
		}
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		id := keyID(k)
		if explicit[id] {
			return nil, fmt.Errorf("line %d: duplicate key %q", k.Line, k.Value)
		}
		explicit[id] = true
	}

	out := tree.NewMapping()
	out.Format = format(n)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.ShortTag() == mergeTag {
			if err := c.merge(out, v, explicit); err != nil {
				return nil, err
			}
			continue
		}
		child, err := c.convert(v)
		if err != nil {
			return nil, err
		}
		id := keyID(k)
		out.Set(id, child)
		out.SetKeyFormat(id, format(k))
	}
	return out, nil
}

func (c *converter) merge(out *tree.Mapping, v *yaml.Node, explicit map[string]bool) error {
	sources := []*yaml.Node{v}
	if v.Kind == yaml.SequenceNode {
		sources = v.Content
	}

	for _, src := range sources {
		merged, err := c.convert(src)
		if err != nil {
			return err
		}
		m, ok := tree.IsMapping(merged)
		if !ok {
			return fmt.Errorf("line %d: merge key value must be a mapping", src.Line)
		}
		for _, key := range m.Keys() {
			if explicit[key] || out.Has(key) {
				continue
			}
			val, _ := m.Get(key)
			out.Set(key, val)
			out.SetKeyFormat(key, m.KeyFormat(key))
		}
	}
	return nil
}

// scalar keeps the resolved tag and source text next to the decoded value so
// the scalar can be written back exactly as it was read.
func scalar(n *yaml.Node) (*tree.Scalar, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	value, ok := tree.NormalizeScalar(v)
	if !ok {
		value = n.Value
	}
	return &tree.Scalar{
		Value:  value,
		Tag:    n.ShortTag(),
		Text:   n.Value,
		Format: format(n),
	}, nil
}

func keyID(k *yaml.Node) string {
	return tree.KeyID(k.ShortTag(), k.Value)
}

func format(n *yaml.Node) tree.Format {
	return tree.Format{
		Style:       styleOf(n.Style),
		HeadComment: n.HeadComment,
		LineComment: n.LineComment,
		FootComment: n.FootComment,
	}
}

func styleOf(s yaml.Style) tree.Style {
	switch {
	case s&yaml.FlowStyle != 0:
		return tree.StyleFlow
	case s&yaml.DoubleQuotedStyle != 0:
		return tree.StyleDoubleQuoted
	case s&yaml.SingleQuotedStyle != 0:
		return tree.StyleSingleQuoted
	case s&yaml.LiteralStyle != 0:
		return tree.StyleLiteral
	case s&yaml.FoldedStyle != 0:
		return tree.StyleFolded
	}
	return tree.StyleDefault
}

func joinComments(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "\n\n" + b
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
