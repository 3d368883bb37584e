package parser

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/docrst/internal/doctree"
)

var frontMatterFence = []byte("---")

// splitFrontMatter separates a leading YAML block delimited by "---" lines
// and converts it to a field list.
func splitFrontMatter(src []byte) (*doctree.Node, []byte, error) {
	if !bytes.HasPrefix(src, []byte("---\n")) && !bytes.HasPrefix(src, []byte("---\r\n")) {
		return nil, src, nil
	}
	rest := src[bytes.IndexByte(src, '\n')+1:]
	var yamlBlock []byte
	var body []byte
	found := false
	for off := 0; off < len(rest); {
		end := bytes.IndexByte(rest[off:], '\n')
		var line []byte
		next := len(rest)
		if end >= 0 {
			line = rest[off : off+end]
			next = off + end + 1
		} else {
			line = rest[off:]
		}
		if bytes.Equal(bytes.TrimRight(line, "\r"), frontMatterFence) {
			yamlBlock = rest[:off]
			body = rest[next:]
			found = true
			break
		}
		off = next
	}
	if !found {
		return nil, src, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(yamlBlock, &root); err != nil {
		return nil, nil, err
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, body, nil
	}
	mapping := root.Content[0]
	fields := doctree.New(doctree.KindFieldList)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		fields.Append(doctree.Field(key.Value, doctree.Para(yamlScalar(value))))
	}
	return fields, body, nil
}

// yamlScalar flattens a YAML value for display. Sequences join with
// commas; nested mappings keep their YAML form.
func yamlScalar(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value
	case yaml.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			parts = append(parts, yamlScalar(c))
		}
		return strings.Join(parts, ", ")
	default:
		out, err := yaml.Marshal(n)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(out))
	}
}
