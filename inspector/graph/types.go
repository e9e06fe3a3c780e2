package graph

import (
	"reflect"
	"strings"
)

// Config controls how source files are turned into graph records
type Config struct {
	TolerateSyntaxErrors bool // keep partially parsed files instead of rejecting them
}

// DefaultConfig returns the inspector defaults
func DefaultConfig() *Config {
	return &Config{}
}

// Location represents a span in the source code
type Location struct {
	Raw     string // Source text of the span
	Start   int    // Start byte offset
	End     int    // End byte offset
	Line    int    // 1-based start line
	EndLine int    // 1-based end line
}

// Contains reports whether the 1-based line falls within the span
func (l *Location) Contains(line int) bool {
	if l == nil {
		return false
	}
	return l.Line <= line && line <= l.EndLine
}

type LocationNode struct {
	Text string
	Location
}

// Annotation represents a Java annotation attached to a declaration
type Annotation struct {
	Name      string            // Name as written, without '@' (may be qualified)
	Arguments map[string]string // Element name to raw value text; a single member is stored as "value"
	Location  *Location
}

// Is reports whether the annotation matches the simple name, also when written fully qualified
func (a *Annotation) Is(name string) bool {
	if a == nil {
		return false
	}
	return a.Name == name || strings.HasSuffix(a.Name, "."+name)
}

// Argument returns the raw text of the first present element among keys
func (a *Annotation) Argument(keys ...string) (string, bool) {
	if a == nil || len(a.Arguments) == 0 {
		return "", false
	}
	for _, key := range keys {
		if value, ok := a.Arguments[key]; ok {
			return value, true
		}
	}
	return "", false
}

// Annotations is an ordered annotation list
type Annotations []*Annotation

// Lookup returns the first annotation with the simple name
func (a Annotations) Lookup(name string) *Annotation {
	for _, candidate := range a {
		if candidate.Is(name) {
			return candidate
		}
	}
	return nil
}

// Names returns annotation names in declaration order
func (a Annotations) Names() []string {
	var result []string
	for _, candidate := range a {
		result = append(result, candidate.Name)
	}
	return result
}

// Expression represents a source expression, typically a call argument or an initializer
type Expression struct {
	Kind      string // tree-sitter node type
	Text      string // raw source text
	Value     string // literal value when IsLiteral
	IsLiteral bool
}

// Literal returns the literal value of the expression
func (e *Expression) Literal() (string, bool) {
	if e == nil || !e.IsLiteral {
		return "", false
	}
	return e.Value, true
}

// IsString reports whether the expression is a string literal
func (e *Expression) IsString() bool {
	return e != nil && e.IsLiteral && (e.Kind == "string_literal" || e.Kind == "text_block")
}

// Type represents a parsed Java type with its members
type Type struct {
	Name          string       // Simple type name
	QualifiedName string       // Package and enclosing types joined with '.'
	Kind          reflect.Kind // Struct for classes, Interface for interfaces/annotations, Int for enums
	Package       string
	Annotations   Annotations
	IsExported    bool
	Fields        []*Field
	Methods       []*Function
	Types         []*Type // Nested types
	Extends       []string
	Location      *Location
}

// Annotation returns the first type annotation with the simple name
func (t *Type) Annotation(name string) *Annotation {
	return t.Annotations.Lookup(name)
}

// Field represents a single declarator of a field declaration
type Field struct {
	Name        string
	Owner       string // Qualified name of the declaring type
	TypeName    string
	Annotations Annotations
	Initializer *Expression
	IsExported  bool
	IsStatic    bool
	IsConstant  bool
	Location    *Location // Whole field declaration, annotations included
}

// Annotation returns the first field annotation with the simple name
func (f *Field) Annotation(name string) *Annotation {
	return f.Annotations.Lookup(name)
}

// Content returns the source text of the field declaration
func (f *Field) Content() string {
	if f.Location == nil {
		return ""
	}
	return f.Location.Raw
}

// Function represents a method or constructor
type Function struct {
	Name          string
	Owner         string // Qualified name of the declaring type
	Annotations   Annotations
	Parameters    []*Parameter
	Signature     string // Declaration text without the body, annotations included
	Body          *LocationNode
	IsExported    bool
	IsStatic      bool
	IsConstructor bool
	Location      *Location
}

// Content returns the full source of the function
func (m *Function) Content() string {
	if m.Location == nil {
		return ""
	}
	return m.Location.Raw
}

// BodyText returns the function body source or an empty string for abstract methods
func (m *Function) BodyText() string {
	if m.Body == nil {
		return ""
	}
	return m.Body.Text
}

// Parameter represents a function parameter
type Parameter struct {
	Name     string
	TypeName string
}

// Call represents a method invocation
type Call struct {
	Name      string // Invoked method name
	Receiver  string // Receiver text, empty for unqualified calls
	Arguments []*Expression
	Owner     string // Qualified name of the enclosing type
	Function  string // Enclosing method or constructor, empty outside of one
	Location  *Location
}

// Argument returns the call argument at index
func (c *Call) Argument(index int) *Expression {
	if index < 0 || index >= len(c.Arguments) {
		return nil
	}
	return c.Arguments[index]
}
