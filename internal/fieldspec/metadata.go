package fieldspec

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

const iconKey = "icon"

// UnmarshalYAML decodes a metadata mapping while keeping key order. The icon
// key is lifted out of the attributes.
func (m *OptionMetadata) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*m = OptionMetadata{}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: options_metadata entry must be a mapping", node.Line)
	}

	out := OptionMetadata{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: metadata key must be a scalar", k.Line)
		}
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: metadata %q must be a string or number", v.Line, k.Value)
		}
		if k.Value == iconKey {
			if v.Tag != "!!null" {
				out.Icon = v.Value
			}
			continue
		}
		out.Attrs = append(out.Attrs, Attr{Key: k.Value, Value: scalarValue(v)})
	}
	*m = out
	return nil
}

func scalarValue(n *yaml.Node) any {
	switch n.Tag {
	case "!!null":
		return nil
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return i
		}
	case "!!float":
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return f
		}
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	}
	return n.Value
}
