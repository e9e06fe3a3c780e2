package analyzer

import (
	"github.com/charmbracelet/log"
	"github.com/viant/afs"
	"github.com/viant/envdoc/config"
	"github.com/viant/envdoc/tracer"
)

// Option configures an Analyzer
type Option func(*Analyzer)

// WithConfig sets the engine configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *Analyzer) {
		a.config = cfg
	}
}

// WithLogger sets the logger used by every phase
func WithLogger(logger *log.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithFS sets the storage service used to read files
func WithFS(fs afs.Service) Option {
	return func(a *Analyzer) {
		a.fs = fs
	}
}

// WithProjectFiles sets build descriptors (e.g. pom.xml, build.gradle) identifying module directories
func WithProjectFiles(files ...string) Option {
	return func(a *Analyzer) {
		a.projectFiles = files
	}
}

// WithRules replaces the purpose classification rules
func WithRules(rules *tracer.Rules) Option {
	return func(a *Analyzer) {
		a.rules = rules
	}
}
