// Package scanner discovers configuration and source files below a root and reads them.
package scanner

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/viant/afs"
)

// Kind classifies discovered files
type Kind string

const (
	ConfigFile Kind = "config"
	SourceFile Kind = "source"
)

// File represents a discovered file
type File struct {
	Path    string // Absolute path
	RelPath string // Slash separated path relative to the root
	Kind    Kind
}

// Name returns the base name of the file
func (f *File) Name() string {
	return path.Base(f.RelPath)
}

// Ext returns the lower cased extension of the file
func (f *File) Ext() string {
	return strings.ToLower(path.Ext(f.RelPath))
}

// Files holds discovered files in lexical traversal order
type Files struct {
	Config []*File
	Source []*File
}

// Scanner walks a root directory
type Scanner struct {
	root             string
	configExtensions []string
	sourceExtensions []string
	exclude          []string
	fs               afs.Service
	logger           *log.Logger
}

// New creates a scanner for the root directory
func New(root string, options ...Option) *Scanner {
	ret := &Scanner{
		root:             root,
		configExtensions: []string{".yml", ".yaml", ".properties"},
		sourceExtensions: []string{".java"},
		exclude:          []string{"**/test/**", "**/target/**"},
		fs:               afs.New(),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.logger == nil {
		ret.logger = log.New(io.Discard)
	}
	return ret
}

// Root returns the scanned root
func (s *Scanner) Root() string {
	return s.root
}

// Walk discovers configuration and source files; unreadable directories are recorded and skipped
func (s *Scanner) Walk(ctx context.Context, diagnostics *Diagnostics) (*Files, error) {
	files := &Files{}
	err := filepath.WalkDir(s.root, func(location string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		relPath := s.relative(location)
		if err != nil {
			if location == s.root {
				return err
			}
			diagnostics.Add(relPath, PhaseRead, err)
			s.logger.Warn("skipping unreadable path", "path", relPath, "error", err)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			if location != s.root && s.Excluded(relPath+"/") {
				s.logger.Debug("skipping excluded directory", "path", relPath)
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() || s.Excluded(relPath) {
			return nil
		}
		aFile := &File{Path: location, RelPath: relPath}
		switch ext := aFile.Ext(); {
		case hasExtension(s.configExtensions, ext):
			aFile.Kind = ConfigFile
			files.Config = append(files.Config, aFile)
		case hasExtension(s.sourceExtensions, ext):
			aFile.Kind = SourceFile
			files.Source = append(files.Source, aFile)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %v: %w", s.root, err)
	}
	s.logger.Debug("discovered files", "config", len(files.Config), "source", len(files.Source))
	return files, nil
}

// Excluded reports whether a root relative slash path matches an exclusion glob
func (s *Scanner) Excluded(relPath string) bool {
	for _, pattern := range s.exclude {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
	}
	return false
}

// Read returns the file content
func (s *Scanner) Read(ctx context.Context, aFile *File) ([]byte, error) {
	content, err := s.fs.DownloadWithURL(ctx, aFile.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", aFile.RelPath, err)
	}
	return content, nil
}

func (s *Scanner) relative(location string) string {
	relPath, err := filepath.Rel(s.root, location)
	if err != nil {
		return filepath.ToSlash(location)
	}
	return filepath.ToSlash(relPath)
}

func hasExtension(extensions []string, ext string) bool {
	for _, candidate := range extensions {
		if strings.EqualFold(candidate, ext) {
			return true
		}
	}
	return false
}
