package script

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// maxDepth bounds alias expansion so self-referencing anchors terminate.
const maxDepth = 256

// maxNodes caps the size of the expanded tree. Aliases are copied on
// expansion, so nested anchors could otherwise grow a small document
// exponentially.
const maxNodes = 1 << 20

// ErrTooLarge reports a document whose expanded tree exceeds maxNodes.
var ErrTooLarge = errors.New("script: document expands beyond node limit")

// Decode parses a JSON or YAML payload into a Value tree. JSON is accepted
// because YAML 1.2 is a superset of it; decoding through yaml.Node keeps
// mapping keys in document order.
func Decode(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, fmt.Errorf("script: document is empty")
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Value{}, fmt.Errorf("script: parse document: %w", err)
	}
	return FromNode(&node)
}

// FromNode converts a parsed YAML node into a Value.
func FromNode(node *yaml.Node) (Value, error) {
	d := &decoder{budget: maxNodes}
	v := d.value(node, 0)
	if d.budget < 0 {
		return Value{}, ErrTooLarge
	}
	return v, nil
}

type decoder struct {
	budget int
}

func (d *decoder) value(node *yaml.Node, depth int) Value {
	if node == nil || depth > maxDepth || d.budget < 0 {
		return Value{}
	}
	d.budget--
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Value{}
		}
		return d.value(node.Content[0], depth+1)
	case yaml.AliasNode:
		return d.value(node.Alias, depth+1)
	case yaml.ScalarNode:
		return scalarFromNode(node)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			if d.budget < 0 {
				break
			}
			items = append(items, d.value(child, depth+1))
		}
		return Value{kind: KindSequence, items: items}
	case yaml.MappingNode:
		v := Value{kind: KindMapping, entries: make([]Entry, 0, len(node.Content)/2)}
		for i := 0; i+1 < len(node.Content) && d.budget >= 0; i += 2 {
			key := d.value(node.Content[i], depth+1)
			v.set(Stringify(key), d.value(node.Content[i+1], depth+1))
		}
		return v
	default:
		return Value{}
	}
}

func scalarFromNode(node *yaml.Node) Value {
	switch node.ShortTag() {
	case "!!null":
		return Value{}
	case "!!int", "!!float", "!!bool":
		return Raw(node.Value)
	default:
		// !!str, !!timestamp, !!binary and custom tags all display as written.
		return Str(node.Value)
	}
}
