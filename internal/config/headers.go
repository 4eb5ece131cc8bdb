package config

import (
	"fmt"

	yaml "go.yaml.in/yaml/v3"
)

// Header is one static request header from the config file.
type Header struct {
	Key   string
	Value string
}

// Headers preserves the file order of the headers mapping, since the
// transport sends headers on the wire in this order.
type Headers []Header

func (h *Headers) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("headers must be a mapping, got %s", node.Tag)
	}
	out := make(Headers, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		out = append(out, Header{
			Key:   node.Content[i].Value,
			Value: node.Content[i+1].Value,
		})
	}
	*h = out
	return nil
}
