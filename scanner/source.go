package scanner

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/viant/envdoc/inspector"
	"github.com/viant/envdoc/inspector/graph"
)

// parsed is a cached parse outcome, failures included
type parsed struct {
	hash uint64
	file *graph.File
	err  error
}

// Sources loads parsed source files, caching syntax trees by path and content hash.
type Sources struct {
	scanner     *Scanner
	inspector   inspector.Inspector
	cache       *lru.Cache[string, *parsed]
	diagnostics *Diagnostics
	logger      *log.Logger
}

// NewSources creates a loader; a cacheSize below one is raised to one
func NewSources(scanner *Scanner, anInspector inspector.Inspector, cacheSize int, diagnostics *Diagnostics, logger *log.Logger) (*Sources, error) {
	if cacheSize < 1 {
		cacheSize = 1
	}
	cache, err := lru.New[string, *parsed](cacheSize)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Sources{
		scanner:     scanner,
		inspector:   anInspector,
		cache:       cache,
		diagnostics: diagnostics,
		logger:      logger,
	}, nil
}

// Load returns the parsed file; a read or parse failure is recorded and reported as false
func (s *Sources) Load(ctx context.Context, aFile *File) (*graph.File, bool) {
	content, err := s.scanner.Read(ctx, aFile)
	if err != nil {
		s.diagnostics.Add(aFile.RelPath, PhaseRead, err)
		s.logger.Warn("failed to read source", "path", aFile.RelPath, "error", err)
		return nil, false
	}
	hash, _ := graph.Hash(content)
	if entry, ok := s.cache.Get(aFile.RelPath); ok && entry.hash == hash {
		return entry.file, entry.err == nil
	}

	s.logger.Debug("parsing source", "path", aFile.RelPath)
	parsedFile, err := s.inspector.InspectContent(ctx, aFile.RelPath, content)
	s.cache.Add(aFile.RelPath, &parsed{hash: hash, file: parsedFile, err: err})
	if err != nil {
		s.diagnostics.Add(aFile.RelPath, PhaseParse, err)
		s.logger.Warn("failed to parse source", "path", aFile.RelPath, "error", err)
		return nil, false
	}
	return parsedFile, true
}

// Cached returns the number of cached parse outcomes
func (s *Sources) Cached() int {
	return s.cache.Len()
}
