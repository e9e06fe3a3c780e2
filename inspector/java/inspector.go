package java

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/viant/envdoc/inspector/graph"
)

// ErrSyntax is returned when the parser reports syntax errors and the config does not tolerate them
var ErrSyntax = errors.New("java syntax error")

// Inspector provides functionality to inspect Java code and extract type information
type Inspector struct {
	config *graph.Config
}

// NewInspector creates a new Java Inspector with the provided configuration
func NewInspector(config *graph.Config) *Inspector {
	if config == nil {
		config = graph.DefaultConfig()
	}
	return &Inspector{
		config: config,
	}
}

// InspectSource parses Java source code from a byte slice and extracts types
func (i *Inspector) InspectSource(src []byte) (*graph.File, error) {
	return i.InspectContent(context.Background(), "source.java", src)
}

// InspectFile parses a Java source file and extracts types
func (i *Inspector) InspectFile(filename string) (*graph.File, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return i.InspectContent(context.Background(), filename, src)
}

// InspectContent parses already loaded Java source; filename is recorded as the file path
func (i *Inspector) InspectContent(ctx context.Context, filename string, src []byte) (*graph.File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filename, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode.HasError() && !i.config.TolerateSyntaxErrors {
		return nil, fmt.Errorf("%w in %s at line %d", ErrSyntax, filename, firstErrorLine(rootNode))
	}

	aFile := &graph.File{
		Name:      filepath.Base(filename),
		Path:      filename,
		HasErrors: rootNode.HasError(),
	}
	aFile.Hash, _ = graph.Hash(src)

	w := &walker{source: src, file: aFile}
	w.visit(rootNode)
	aFile.Index()
	return aFile, nil
}

// firstErrorLine returns the 1-based line of the first error or missing node
func firstErrorLine(node *sitter.Node) int {
	if node.Type() == "ERROR" || node.IsMissing() {
		return int(node.StartPoint().Row) + 1
	}
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if child != nil && child.HasError() {
			return firstErrorLine(child)
		}
	}
	return int(node.StartPoint().Row) + 1
}

// walker visits the syntax tree keeping the enclosing type and function stacks
type walker struct {
	source []byte
	file   *graph.File
	types  []*graph.Type
	funcs  []*graph.Function
}

func (w *walker) visit(node *sitter.Node) {
	switch node.Type() {
	case "package_declaration":
		w.file.Package = parsePackageDeclaration(node, w.source)
		return
	case "import_declaration":
		if anImport := parseImportDeclaration(node, w.source); anImport != nil {
			w.file.Imports = append(w.file.Imports, *anImport)
		}
		return
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration", "annotation_type_declaration":
		aType := parseTypeDeclaration(node, w.source, w.qualifier())
		if aType == nil {
			break
		}
		aType.Package = w.file.Package
		if owner := w.currentType(); owner != nil {
			owner.Types = append(owner.Types, aType)
		} else {
			w.file.Types = append(w.file.Types, aType)
		}
		w.types = append(w.types, aType)
		w.visitChildren(node)
		w.types = w.types[:len(w.types)-1]
		return
	case "field_declaration", "constant_declaration":
		if owner := w.currentType(); owner != nil {
			owner.Fields = append(owner.Fields, parseFieldDeclaration(node, w.source, owner)...)
		}
	case "method_declaration", "constructor_declaration", "compact_constructor_declaration":
		owner := w.currentType()
		if owner == nil {
			break
		}
		function := parseFunctionDeclaration(node, w.source, owner)
		owner.Methods = append(owner.Methods, function)
		w.funcs = append(w.funcs, function)
		w.visitChildren(node)
		w.funcs = w.funcs[:len(w.funcs)-1]
		return
	case "method_invocation":
		w.file.Calls = append(w.file.Calls, parseMethodInvocation(node, w.source, w.currentType(), w.currentFunction()))
	}
	w.visitChildren(node)
}

func (w *walker) visitChildren(node *sitter.Node) {
	for j := 0; j < int(node.NamedChildCount()); j++ {
		if child := node.NamedChild(j); child != nil {
			w.visit(child)
		}
	}
}

func (w *walker) currentType() *graph.Type {
	if len(w.types) == 0 {
		return nil
	}
	return w.types[len(w.types)-1]
}

func (w *walker) currentFunction() *graph.Function {
	if len(w.funcs) == 0 {
		return nil
	}
	return w.funcs[len(w.funcs)-1]
}

// qualifier returns the prefix for a type declared at the current position
func (w *walker) qualifier() string {
	if owner := w.currentType(); owner != nil {
		return owner.QualifiedName
	}
	return w.file.Package
}
