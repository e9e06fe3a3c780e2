package java

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/envdoc/inspector/graph"
)

// parseExpression wraps an expression node, resolving simple literal values
func parseExpression(node *sitter.Node, source []byte) *graph.Expression {
	expression := &graph.Expression{
		Kind: node.Type(),
		Text: node.Content(source),
	}
	expression.Value, expression.IsLiteral = literalValue(expression.Kind, expression.Text)
	return expression
}

// literalValue returns the value of a simple literal; null and compound expressions are not literals
func literalValue(kind, text string) (string, bool) {
	switch kind {
	case "string_literal", "text_block":
		return unquoteString(text), true
	case "character_literal":
		return unquoteChar(text), true
	case "true", "false":
		return kind, true
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal",
		"decimal_floating_point_literal", "hex_floating_point_literal":
		return text, true
	}
	return "", false
}

func unquoteString(text string) string {
	if strings.HasPrefix(text, `"""`) && strings.HasSuffix(text, `"""`) && len(text) >= 6 {
		block := text[3 : len(text)-3]
		return strings.TrimPrefix(strings.TrimPrefix(block, "\r"), "\n")
	}
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return text
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		return unquoted
	}
	return text[1 : len(text)-1]
}

func unquoteChar(text string) string {
	if len(text) < 2 || text[0] != '\'' || text[len(text)-1] != '\'' {
		return text
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		return unquoted
	}
	return text[1 : len(text)-1]
}
