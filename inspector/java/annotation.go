package java

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/envdoc/inspector/graph"
)

// parseAnnotation extracts the annotation name and its element values
func parseAnnotation(node *sitter.Node, source []byte) *graph.Annotation {
	if node.Type() != "annotation" && node.Type() != "marker_annotation" {
		return nil
	}
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	annotation := &graph.Annotation{
		Name:      nameNode.Content(source),
		Arguments: map[string]string{},
		Location:  location(node, source),
	}

	argumentsNode := node.ChildByFieldName("arguments")
	if argumentsNode == nil {
		return annotation
	}
	for j := 0; j < int(argumentsNode.NamedChildCount()); j++ {
		argument := argumentsNode.NamedChild(j)
		if isComment(argument) {
			continue
		}
		if argument.Type() != "element_value_pair" {
			// @Value("${X}") is a single member annotation
			annotation.Arguments["value"] = argument.Content(source)
			continue
		}
		keyNode := argument.ChildByFieldName("key")
		valueNode := argument.ChildByFieldName("value")
		if keyNode == nil || valueNode == nil {
			continue
		}
		annotation.Arguments[keyNode.Content(source)] = valueNode.Content(source)
	}
	return annotation
}
