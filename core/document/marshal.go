package document

import (
	"bytes"
	"fmt"

	"config-updater/core/tree"

	"gopkg.in/yaml.v3"
)

// Marshal encodes m as a YAML document, preserving mapping key order.
// Scalars read by Parse are written back as they were read, with their
// comments and style. An empty mapping encodes as "{}".
func Marshal(m *tree.Mapping, cfg Config) ([]byte, error) {
	if m == nil {
		m = tree.NewMapping()
	}
	body, err := toNode(m)
	if err != nil {
		return nil, err
	}

	// Document comments live on the document node so they stay above the body.
	root := &yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: body.HeadComment,
		FootComment: body.FootComment,
		Content:     []*yaml.Node{body},
	}
	body.HeadComment, body.FootComment = "", ""

	indent := cfg.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

func toNode(n tree.Node) (*yaml.Node, error) {
	switch v := n.(type) {
	case *tree.Mapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		applyFormat(out, v.Format)
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			valNode, err := toNode(child)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", tree.KeyText(key), err)
			}
			keyNode, err := keyToNode(key, v.KeyFormat(key))
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, keyNode, valNode)
		}
		return out, nil
	case *tree.Sequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		applyFormat(out, v.Format)
		for i, item := range v.Items {
			child, err := toNode(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out.Content = append(out.Content, child)
		}
		return out, nil
	case *tree.Scalar:
		out := &yaml.Node{}
		if v.Tag != "" {
			out.Kind = yaml.ScalarNode
			out.Tag = v.Tag
			out.Value = v.Text
		} else if err := out.Encode(v.Value); err != nil {
			return nil, err
		}
		applyFormat(out, v.Format)
		return out, nil
	}
	return nil, fmt.Errorf("unsupported node %T", n)
}

func keyToNode(key string, f tree.Format) (*yaml.Node, error) {
	tag, text := tree.SplitKeyID(key)
	out := &yaml.Node{}
	if tag == tree.StrTag {
		if err := out.Encode(text); err != nil {
			return nil, fmt.Errorf("key %q: %w", text, err)
		}
	} else {
		out.Kind = yaml.ScalarNode
		out.Tag = tag
		out.Value = text
	}
	applyFormat(out, f)
	return out, nil
}

// applyFormat copies comments onto n and overrides its style when one was recorded.
func applyFormat(n *yaml.Node, f tree.Format) {
	n.HeadComment = f.HeadComment
	n.LineComment = f.LineComment
	n.FootComment = f.FootComment

	switch f.Style {
	case tree.StyleFlow:
		n.Style = yaml.FlowStyle
	case tree.StyleSingleQuoted:
		n.Style = yaml.SingleQuotedStyle
	case tree.StyleDoubleQuoted:
		n.Style = yaml.DoubleQuotedStyle
	case tree.StyleLiteral:
		n.Style = yaml.LiteralStyle
	case tree.StyleFolded:
		n.Style = yaml.FoldedStyle
	}
}
