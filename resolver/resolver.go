// Package resolver computes effective property defaults across configuration files.
package resolver

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/viant/envdoc/placeholder"
	"github.com/viant/envdoc/scanner"
)

// Priorities of configuration files
const (
	RootPropertiesPriority = 200
	RootYAMLPriority       = 150
	PropertiesPriority     = 100
	YAMLPriority           = 80
	OtherPriority          = 10
	ProfileBonus           = 1000
)

// Priority returns the precedence of a configuration file by its name; profile variants always win
func Priority(filename string) int {
	name := strings.ToLower(filename)
	isProperties := strings.HasSuffix(name, ".properties")
	isYAML := strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")

	priority := OtherPriority
	switch {
	case name == "application.properties":
		priority = RootPropertiesPriority
	case name == "application.yml" || name == "application.yaml":
		priority = RootYAMLPriority
	case isProperties:
		priority = PropertiesPriority
	case isYAML:
		priority = YAMLPriority
	}
	if strings.HasPrefix(name, "application-") {
		priority += ProfileBonus
	}
	return priority
}

// Resolver flattens configuration files into effective defaults
type Resolver struct {
	scanner     *scanner.Scanner
	diagnostics *scanner.Diagnostics
	logger      *log.Logger
}

// New creates a resolver reading files through the scanner
func New(aScanner *scanner.Scanner, diagnostics *scanner.Diagnostics, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{scanner: aScanner, diagnostics: diagnostics, logger: logger}
}

// Resolve merges all configuration files; a malformed file contributes nothing
func (r *Resolver) Resolve(ctx context.Context, files []*scanner.File) *Defaults {
	defaults := NewDefaults()
	for _, aFile := range files {
		content, err := r.scanner.Read(ctx, aFile)
		if err != nil {
			r.diagnostics.Add(aFile.RelPath, scanner.PhaseRead, err)
			r.logger.Warn("failed to read config", "path", aFile.RelPath, "error", err)
			continue
		}
		entries, err := Flatten(aFile.Name(), content)
		if err != nil {
			r.diagnostics.Add(aFile.RelPath, scanner.PhaseResolve, err)
			r.logger.Warn("failed to flatten config", "path", aFile.RelPath, "error", err)
			continue
		}
		priority := Priority(aFile.Name())
		r.logger.Debug("resolving config", "path", aFile.RelPath, "priority", priority, "keys", len(entries))
		defaults.Merge(entries, priority)
	}
	return defaults
}

// Flatten dispatches by file extension; unknown extensions have no keys
func Flatten(filename string, content []byte) ([]Entry, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".properties"):
		return FlattenProperties(content)
	case strings.HasSuffix(name, ".yml"), strings.HasSuffix(name, ".yaml"):
		return FlattenYAML(content)
	}
	return nil, nil
}

type prioritized struct {
	value    string
	priority int
}

// Defaults is the normalized key to literal value map
type Defaults struct {
	values map[string]prioritized
}

// NewDefaults creates an empty map
func NewDefaults() *Defaults {
	return &Defaults{values: map[string]prioritized{}}
}

// Merge adds entries of one file; placeholder values resolve to their inline defaults
// or are dropped, and equal priority collisions go to the last seen value
func (d *Defaults) Merge(entries []Entry, priority int) {
	for _, entry := range entries {
		value, ok := placeholder.Resolve(entry.Value)
		if !ok {
			continue
		}
		key := normalize(entry.Key)
		if existing, ok := d.values[key]; ok && existing.priority > priority {
			continue
		}
		d.values[key] = prioritized{value: value, priority: priority}
	}
}

// Get returns the value stored under the normalized key
func (d *Defaults) Get(key string) (string, bool) {
	entry, ok := d.values[normalize(key)]
	return entry.value, ok
}

// Lookup returns the value of the key or of its first present relaxed spelling
func (d *Defaults) Lookup(key string) (string, bool) {
	for _, candidate := range placeholder.Variants(normalize(key)) {
		if value, ok := d.Get(candidate); ok {
			return value, true
		}
	}
	return "", false
}

// Len returns the number of keys
func (d *Defaults) Len() int {
	return len(d.values)
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
