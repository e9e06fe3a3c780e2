// Package extractor produces one definition per distinct variable name from configuration and source files.
package extractor

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/viant/envdoc/catalog"
	"github.com/viant/envdoc/inspector/graph"
	"github.com/viant/envdoc/resolver"
	"github.com/viant/envdoc/scanner"
)

// Tree is the syntax tree query capability consumed by source extraction
type Tree interface {
	FieldsWithAnnotation(name string) []*graph.Field
	TypesWithAnnotation(name string) []*graph.Type
	CallsTo(name string) []*graph.Call
	EnclosingFunction(line int) *graph.Function
}

// ModuleResolver names the build unit enclosing a root relative file
type ModuleResolver interface {
	ModuleName(ctx context.Context, relativeFile string) string
}

// SourceLoader returns parsed source files
type SourceLoader interface {
	Load(ctx context.Context, aFile *scanner.File) (*graph.File, bool)
}

// Config holds the names recognized by the source patterns
type Config struct {
	ValueAnnotation      string
	PropertiesAnnotation string
	EnvironmentReceivers []string
}

// DefaultConfig returns Spring naming
func DefaultConfig() *Config {
	return &Config{
		ValueAnnotation:      "Value",
		PropertiesAnnotation: "ConfigurationProperties",
		EnvironmentReceivers: []string{"environment", "Environment", "env"},
	}
}

// Extractor runs the definition patterns in precedence order; a name already defined is never overwritten
type Extractor struct {
	config      *Config
	scanner     *scanner.Scanner
	sources     SourceLoader
	modules     ModuleResolver
	defaults    *resolver.Defaults
	diagnostics *scanner.Diagnostics
	logger      *log.Logger
}

// New creates an extractor; defaults come from the resolver pass
func New(config *Config, aScanner *scanner.Scanner, sources SourceLoader, modules ModuleResolver, defaults *resolver.Defaults, diagnostics *scanner.Diagnostics, logger *log.Logger) *Extractor {
	if config == nil {
		config = DefaultConfig()
	}
	if defaults == nil {
		defaults = resolver.NewDefaults()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Extractor{
		config:      config,
		scanner:     aScanner,
		sources:     sources,
		modules:     modules,
		defaults:    defaults,
		diagnostics: diagnostics,
		logger:      logger,
	}
}

// unit is one file presented to a pattern handler
type unit struct {
	file    *scanner.File
	module  string
	content []byte // configuration files
	tree    Tree   // source files
}

// candidate is a definition proposed by a pattern
type candidate struct {
	name         string
	defaultValue *string
	definition   *catalog.Definition
}

// Extract populates the catalog: all configuration files first, then all source files,
// each in traversal order
func (e *Extractor) Extract(ctx context.Context, files *scanner.Files, aCatalog *catalog.Catalog) {
	for _, aFile := range files.Config {
		kind, ok := configKind(aFile)
		if !ok {
			continue
		}
		content, err := e.scanner.Read(ctx, aFile)
		if err != nil {
			e.diagnostics.Add(aFile.RelPath, scanner.PhaseRead, err)
			e.logger.Warn("failed to read config", "path", aFile.RelPath, "error", err)
			continue
		}
		e.logger.Debug("extracting config", "path", aFile.RelPath)
		aUnit := &unit{file: aFile, module: e.modules.ModuleName(ctx, aFile.RelPath), content: content}
		e.define(aCatalog, e.extract(kind, aUnit))
	}

	for _, aFile := range files.Source {
		tree, ok := e.sources.Load(ctx, aFile)
		if !ok {
			continue
		}
		e.logger.Debug("extracting source", "path", aFile.RelPath)
		aUnit := &unit{file: aFile, module: e.modules.ModuleName(ctx, aFile.RelPath), tree: tree}
		for _, kind := range catalog.DefinitionKinds {
			if kind.IsConfigFile() {
				continue
			}
			e.define(aCatalog, e.extract(kind, aUnit))
		}
	}
}

// extract dispatches a unit to the handler of the kind
func (e *Extractor) extract(kind catalog.DefinitionKind, aUnit *unit) []*candidate {
	switch kind {
	case catalog.ConfigYAML:
		return e.configYAML(aUnit)
	case catalog.ConfigProperties:
		return e.configProperties(aUnit)
	case catalog.AnnotatedField:
		return e.annotatedFields(aUnit)
	case catalog.PropertiesClassField:
		return e.propertiesClassFields(aUnit)
	case catalog.EnvLookup:
		return e.envLookups(aUnit)
	case catalog.SystemProperty:
		return e.systemProperties(aUnit)
	case catalog.EnvironmentAPI:
		return e.environmentLookups(aUnit)
	}
	return nil
}

func (e *Extractor) define(aCatalog *catalog.Catalog, candidates []*candidate) {
	for _, item := range candidates {
		if item.name == "" || aCatalog.Has(item.name) {
			continue
		}
		aCatalog.Define(catalog.NewVariable(item.name, item.defaultValue, item.definition))
	}
}

func configKind(aFile *scanner.File) (catalog.DefinitionKind, bool) {
	switch aFile.Ext() {
	case ".yml", ".yaml":
		return catalog.ConfigYAML, true
	case ".properties":
		return catalog.ConfigProperties, true
	}
	return "", false
}

func stringPtr(value string) *string {
	return &value
}
