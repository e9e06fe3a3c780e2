package resolver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"
)

// Entry is a flattened configuration key with its raw value
type Entry struct {
	Key   string
	Value string
}

// FlattenYAML flattens every document of a YAML file into dotted keys in document order.
// Sequence items are keyed as key[i]; null values are skipped.
func FlattenYAML(data []byte) ([]Entry, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	var result []Entry
	for {
		var document yaml.Node
		err := decoder.Decode(&document)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
		for _, node := range document.Content {
			result = flattenNode("", node, result)
		}
	}
	return result, nil
}

func flattenNode(prefix string, node *yaml.Node, result []Entry) []Entry {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.ShortTag() == "!!merge" {
				result = flattenNode(prefix, value, result)
				continue
			}
			result = flattenNode(join(prefix, key.Value), value, result)
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			result = flattenNode(prefix+"["+strconv.Itoa(i)+"]", item, result)
		}
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" || prefix == "" {
			return result
		}
		result = append(result, Entry{Key: prefix, Value: node.Value})
	}
	return result
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// FlattenProperties parses a .properties file keeping ${...} expressions verbatim
func FlattenProperties(data []byte) ([]Entry, error) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse properties: %w", err)
	}
	var result []Entry
	for _, key := range props.Keys() {
		value, _ := props.Get(key)
		result = append(result, Entry{Key: key, Value: value})
	}
	return result, nil
}
