package java

import (
	"reflect"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/envdoc/inspector/graph"
)

// parsePackageDeclaration extracts the package name from a Java source file
func parsePackageDeclaration(node *sitter.Node, source []byte) string {
	if node.Type() != "package_declaration" {
		return ""
	}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch child.Type() {
		case "scoped_identifier", "identifier":
			return child.Content(source)
		}
	}
	return ""
}

// parseImportDeclaration extracts an import declaration
func parseImportDeclaration(node *sitter.Node, source []byte) *graph.Import {
	if node.Type() != "import_declaration" {
		return nil
	}
	text := strings.TrimSpace(node.Content(source))
	text = strings.TrimSuffix(strings.TrimPrefix(text, "import"), ";")
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "static"))
	if text == "" {
		return nil
	}
	return &graph.Import{
		Name: extractSimpleTypeName(text),
		Path: text,
	}
}

// parseTypeDeclaration extracts class, interface, enum, record and annotation type declarations
func parseTypeDeclaration(node *sitter.Node, source []byte, qualifier string) *graph.Type {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	typeName := nameNode.Content(source)

	aType := &graph.Type{
		Name:          typeName,
		QualifiedName: qualify(qualifier, typeName),
		Location:      location(node, source),
	}

	switch node.Type() {
	case "class_declaration", "record_declaration":
		aType.Kind = reflect.Struct
	case "interface_declaration", "annotation_type_declaration":
		aType.Kind = reflect.Interface
	case "enum_declaration":
		aType.Kind = reflect.Int
	}

	modifiers := parseModifiers(node, source)
	aType.Annotations = modifiers.annotations
	aType.IsExported = modifiers.public

	if superclass := node.ChildByFieldName("superclass"); superclass != nil {
		aType.Extends = append(aType.Extends, strings.TrimSpace(strings.TrimPrefix(superclass.Content(source), "extends")))
	}
	return aType
}

// parseFieldDeclaration returns one field per declarator
func parseFieldDeclaration(node *sitter.Node, source []byte, owner *graph.Type) []*graph.Field {
	typeName := ""
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		typeName = typeNode.Content(source)
	}
	modifiers := parseModifiers(node, source)
	// Interface fields are implicitly static final
	isStatic := modifiers.static || owner.Kind == reflect.Interface
	isFinal := modifiers.final || owner.Kind == reflect.Interface
	fieldLocation := location(node, source)

	var fields []*graph.Field
	for j := 0; j < int(node.NamedChildCount()); j++ {
		declarator := node.NamedChild(j)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		field := &graph.Field{
			Name:        nameNode.Content(source),
			Owner:       owner.QualifiedName,
			TypeName:    typeName,
			Annotations: modifiers.annotations,
			IsExported:  modifiers.public,
			IsStatic:    isStatic,
			IsConstant:  isStatic && isFinal,
			Location:    fieldLocation,
		}
		if valueNode := declarator.ChildByFieldName("value"); valueNode != nil {
			field.Initializer = parseExpression(valueNode, source)
		}
		fields = append(fields, field)
	}
	return fields
}

// parseFunctionDeclaration extracts method and constructor information
func parseFunctionDeclaration(node *sitter.Node, source []byte, owner *graph.Type) *graph.Function {
	name := owner.Name
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		name = nameNode.Content(source)
	}
	modifiers := parseModifiers(node, source)

	function := &graph.Function{
		Name:          name,
		Owner:         owner.QualifiedName,
		Annotations:   modifiers.annotations,
		IsExported:    modifiers.public,
		IsStatic:      modifiers.static,
		IsConstructor: node.Type() != "method_declaration",
		Location:      location(node, source),
	}

	// Extract parameters
	if parametersNode := node.ChildByFieldName("parameters"); parametersNode != nil {
		for j := 0; j < int(parametersNode.NamedChildCount()); j++ {
			paramNode := parametersNode.NamedChild(j)
			switch paramNode.Type() {
			case "formal_parameter":
				param := &graph.Parameter{}
				if typeNode := paramNode.ChildByFieldName("type"); typeNode != nil {
					param.TypeName = typeNode.Content(source)
				}
				if nameNode := paramNode.ChildByFieldName("name"); nameNode != nil {
					param.Name = nameNode.Content(source)
				}
				function.Parameters = append(function.Parameters, param)
			case "spread_parameter":
				function.Parameters = append(function.Parameters, &graph.Parameter{
					Name:     lastIdentifier(paramNode, source),
					TypeName: "...",
				})
			}
		}
	}

	// Signature is everything before the body
	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		function.Signature = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(node.Content(source)), ";"))
		return function
	}
	function.Signature = strings.TrimSpace(string(source[node.StartByte():bodyNode.StartByte()]))
	function.Body = &graph.LocationNode{
		Text:     bodyNode.Content(source),
		Location: *location(bodyNode, source),
	}
	return function
}

// parseMethodInvocation extracts a method call with its receiver and arguments
func parseMethodInvocation(node *sitter.Node, source []byte, owner *graph.Type, function *graph.Function) *graph.Call {
	call := &graph.Call{Location: location(node, source)}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		call.Name = nameNode.Content(source)
	}
	if objectNode := node.ChildByFieldName("object"); objectNode != nil {
		call.Receiver = objectNode.Content(source)
	}
	if argumentsNode := node.ChildByFieldName("arguments"); argumentsNode != nil {
		for j := 0; j < int(argumentsNode.NamedChildCount()); j++ {
			argument := argumentsNode.NamedChild(j)
			if isComment(argument) {
				continue
			}
			call.Arguments = append(call.Arguments, parseExpression(argument, source))
		}
	}
	if owner != nil {
		call.Owner = owner.QualifiedName
	}
	if function != nil {
		call.Function = function.Name
	}
	return call
}

// modifiers holds the parsed modifier list of a declaration
type modifiers struct {
	annotations graph.Annotations
	public      bool
	static      bool
	final       bool
}

// parseModifiers reads the annotations and keywords of a declaration
func parseModifiers(node *sitter.Node, source []byte) modifiers {
	var result modifiers
	var modifiersNode *sitter.Node
	for j := 0; j < int(node.NamedChildCount()); j++ {
		if child := node.NamedChild(j); child.Type() == "modifiers" {
			modifiersNode = child
			break
		}
	}
	if modifiersNode == nil {
		return result
	}
	// Keywords are anonymous nodes, so all children are inspected
	for j := 0; j < int(modifiersNode.ChildCount()); j++ {
		modifier := modifiersNode.Child(j)
		switch modifier.Type() {
		case "marker_annotation", "annotation":
			if annotation := parseAnnotation(modifier, source); annotation != nil {
				result.annotations = append(result.annotations, annotation)
			}
		case "public":
			result.public = true
		case "static":
			result.static = true
		case "final":
			result.final = true
		}
	}
	return result
}

func location(node *sitter.Node, source []byte) *graph.Location {
	return &graph.Location{
		Raw:     node.Content(source),
		Start:   int(node.StartByte()),
		End:     int(node.EndByte()),
		Line:    int(node.StartPoint().Row) + 1,
		EndLine: int(node.EndPoint().Row) + 1,
	}
}

func qualify(qualifier, name string) string {
	if qualifier == "" {
		return name
	}
	return qualifier + "." + name
}

func isComment(node *sitter.Node) bool {
	switch node.Type() {
	case "comment", "line_comment", "block_comment":
		return true
	}
	return false
}

func lastIdentifier(node *sitter.Node, source []byte) string {
	for j := int(node.NamedChildCount()) - 1; j >= 0; j-- {
		child := node.NamedChild(j)
		if child.Type() == "identifier" {
			return child.Content(source)
		}
		if child.Type() == "variable_declarator" {
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				return nameNode.Content(source)
			}
		}
	}
	return ""
}

// extractSimpleTypeName extracts the simple name from a possibly qualified name
// e.g., "java.util.List" -> "List"
func extractSimpleTypeName(qualifiedName string) string {
	lastDotIndex := strings.LastIndex(qualifiedName, ".")
	if lastDotIndex != -1 {
		return qualifiedName[lastDotIndex+1:]
	}
	return qualifiedName
}
