package scanner

import (
	"github.com/charmbracelet/log"
	"github.com/viant/afs"
)

// Option configures a Scanner
type Option func(*Scanner)

// WithConfigExtensions sets extensions of declarative configuration files
func WithConfigExtensions(extensions ...string) Option {
	return func(s *Scanner) {
		s.configExtensions = extensions
	}
}

// WithSourceExtensions sets extensions of parsed source files
func WithSourceExtensions(extensions ...string) Option {
	return func(s *Scanner) {
		s.sourceExtensions = extensions
	}
}

// WithExclude sets doublestar globs of excluded root relative paths
func WithExclude(patterns ...string) Option {
	return func(s *Scanner) {
		s.exclude = patterns
	}
}

// WithFS sets the file service used for reads
func WithFS(fs afs.Service) Option {
	return func(s *Scanner) {
		s.fs = fs
	}
}

// WithLogger sets the logger reporting skipped paths
func WithLogger(logger *log.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}
