// Package tracer finds where catalogued variables are consumed in source code and classifies each usage.
package tracer

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/viant/envdoc/catalog"
	"github.com/viant/envdoc/inspector/graph"
	"github.com/viant/envdoc/placeholder"
	"github.com/viant/envdoc/scanner"
)

// SourceLoader returns parsed source files
type SourceLoader interface {
	Load(ctx context.Context, aFile *scanner.File) (*graph.File, bool)
}

// Tracer attaches usages to catalog variables
type Tracer struct {
	rules           *Rules
	sources         SourceLoader
	valueAnnotation string
	logger          *log.Logger
}

// New creates a tracer; rules are shared read-only across runs
func New(rules *Rules, sources SourceLoader, valueAnnotation string, logger *log.Logger) *Tracer {
	if rules == nil {
		rules = NewRules()
	}
	if valueAnnotation == "" {
		valueAnnotation = "Value"
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tracer{rules: rules, sources: sources, valueAnnotation: valueAnnotation, logger: logger}
}

// Trace scans every source file for references to catalogued names, then deduplicates usages
func (t *Tracer) Trace(ctx context.Context, files []*scanner.File, aCatalog *catalog.Catalog) {
	if aCatalog.Len() == 0 {
		return
	}
	known := placeholder.NewKnownNames(aCatalog.Names())
	for _, aFile := range files {
		tree, ok := t.sources.Load(ctx, aFile)
		if !ok {
			continue
		}
		t.logger.Debug("tracing source", "path", aFile.RelPath)
		t.followFields(aFile, tree, aCatalog)
		t.matchDirect(aFile, tree, known, aCatalog)
	}
	aCatalog.DeduplicateUsages()
}

// followFields links annotation bound fields to the methods referencing them by name
func (t *Tracer) followFields(aFile *scanner.File, tree *graph.File, aCatalog *catalog.Catalog) {
	for _, field := range tree.FieldsWithAnnotation(t.valueAnnotation) {
		content, ok := field.Annotation(t.valueAnnotation).Argument("value")
		if !ok {
			continue
		}
		matches := placeholder.FindAll(strings.ReplaceAll(content, `"`, ""))
		if len(matches) == 0 {
			continue
		}
		for _, method := range tree.Methods() {
			if method.Body == nil || !strings.Contains(method.BodyText(), field.Name) {
				continue
			}
			usage := t.usage(aFile, method, method.Content())
			for _, match := range matches {
				aCatalog.AddUsage(match.Name, usage)
			}
		}
	}
}

// matchDirect finds known names written as placeholders or quoted literals inside method bodies
func (t *Tracer) matchDirect(aFile *scanner.File, tree *graph.File, known *placeholder.KnownNames, aCatalog *catalog.Catalog) {
	for _, method := range tree.Methods() {
		body := method.BodyText()
		names := known.FindAll(body)
		if len(names) == 0 {
			continue
		}
		usage := t.usage(aFile, method, body)
		for _, name := range names {
			aCatalog.AddUsage(name, usage)
		}
	}
}

func (t *Tracer) usage(aFile *scanner.File, method *graph.Function, text string) *catalog.Usage {
	result := &catalog.Usage{
		ContainingTypeName: method.Owner,
		MethodName:         method.Name,
		FilePath:           aFile.RelPath,
		Purpose:            t.rules.Classify(method.Owner, method.Name, text),
		ContextDescription: Describe(method),
		CodeSnippet:        strings.TrimSpace(method.Signature),
	}
	if method.Location != nil {
		result.LineNumber = method.Location.Line
	}
	return result
}

var markerPrefixes = []struct {
	annotation string
	prefix     string
}{
	{"Bean", "Bean configuration: "},
	{"PostConstruct", "Initialization: "},
	{"Scheduled", "Scheduled task: "},
}

var roleSuffixes = []struct {
	marker string
	role   string
}{
	{"Config", "Configuration in "},
	{"Service", "Business logic in "},
	{"Controller", "HTTP endpoint in "},
	{"Repository", "Data access in "},
	{"Health", "Health check in "},
}

// Describe returns a short documentation label for the method, e.g. "Bean configuration: Configuration in DataSourceConfig"
func Describe(method *graph.Function) string {
	builder := strings.Builder{}
	for _, candidate := range markerPrefixes {
		if method.Annotations.Lookup(candidate.annotation) != nil {
			builder.WriteString(candidate.prefix)
			break
		}
	}
	simpleName := method.Owner
	if index := strings.LastIndex(simpleName, "."); index != -1 {
		simpleName = simpleName[index+1:]
	}
	role := "Used in "
	for _, candidate := range roleSuffixes {
		if strings.Contains(simpleName, candidate.marker) {
			role = candidate.role
			break
		}
	}
	builder.WriteString(role)
	builder.WriteString(simpleName)
	return builder.String()
}
