// Package analyzer runs the extraction and usage analysis engine over a source tree.
//
// A run resolves configuration defaults, extracts one definition per variable name, then traces
// usages of every known name. The phases run in sequence on one goroutine and share a single
// Catalog owned by the run. File level failures are reported as warnings in the Result.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/viant/afs"
	"github.com/viant/envdoc/catalog"
	"github.com/viant/envdoc/config"
	"github.com/viant/envdoc/extractor"
	"github.com/viant/envdoc/inspector"
	"github.com/viant/envdoc/inspector/graph"
	"github.com/viant/envdoc/inspector/repository"
	"github.com/viant/envdoc/resolver"
	"github.com/viant/envdoc/scanner"
	"github.com/viant/envdoc/tracer"
)

// ErrNotDirectory is returned when the analysis root is not a readable directory
var ErrNotDirectory = errors.New("analysis root is not a directory")

// Analyzer runs analyses; it holds no per-run state and may run concurrently for different roots
type Analyzer struct {
	config       *config.Config
	logger       *log.Logger
	fs           afs.Service
	projectFiles []string
	rules        *tracer.Rules
	factory      *inspector.Factory
}

// New creates an analyzer
func New(options ...Option) *Analyzer {
	ret := &Analyzer{}
	for _, option := range options {
		option(ret)
	}
	if ret.config == nil {
		ret.config = config.Default()
	}
	if ret.logger == nil {
		ret.logger = log.New(io.Discard)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if len(ret.projectFiles) == 0 {
		ret.projectFiles = ret.config.Scan.ModuleMarkers
	}
	if ret.rules == nil {
		ret.rules = tracer.NewRules()
	}
	ret.factory = inspector.NewFactory(&graph.Config{TolerateSyntaxErrors: ret.config.Scan.TolerateSyntaxErrors})
	for _, ext := range ret.config.Scan.SourceExtensions {
		if !ret.factory.Supports(ext) {
			ret.logger.Warn("no inspector for source extension", "ext", ext, "supported", ret.factory.Extensions())
		}
	}
	return ret
}

// Run analyses the tree below root. It fails only when root is not a readable directory or ctx is
// already done; once started, the phases run to completion.
func (a *Analyzer) Run(ctx context.Context, root string) (*catalog.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis of %v abandoned: %w", root, err)
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %v: %w", root, err)
	}
	object, err := a.fs.Object(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %w", ErrNotDirectory, root, err)
	}
	if !object.IsDir() {
		return nil, fmt.Errorf("%w: %v", ErrNotDirectory, root)
	}
	ctx = context.WithoutCancel(ctx)

	result := &catalog.Result{RootPath: root, RunID: uuid.NewString(), StartedAt: time.Now()}
	logger := a.logger.With("run", result.RunID)
	diagnostics := scanner.NewDiagnostics()

	aScanner := scanner.New(root,
		scanner.WithConfigExtensions(a.config.Scan.ConfigExtensions...),
		scanner.WithSourceExtensions(a.config.Scan.SourceExtensions...),
		scanner.WithExclude(a.config.Scan.Exclude...),
		scanner.WithFS(a.fs),
		scanner.WithLogger(logger),
	)
	files, err := aScanner.Walk(ctx, diagnostics)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotDirectory, err)
	}
	detector := repository.New(a.fs, root, a.projectFiles...)
	result.ProjectName = detector.DetectProject(ctx).Name
	logger.Info("analysis started", "project", result.ProjectName, "root", root, "configFiles", len(files.Config), "sourceFiles", len(files.Source))

	sources, err := scanner.NewSources(aScanner, a.factory, a.config.Scan.CacheSize, diagnostics, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create source cache: %w", err)
	}

	defaults := resolver.New(aScanner, diagnostics, logger).Resolve(ctx, files.Config)
	logger.Info("defaults resolved", "keys", defaults.Len())

	aCatalog := catalog.New()
	extractor.New(a.extractorConfig(), aScanner, sources, detector, defaults, diagnostics, logger).Extract(ctx, files, aCatalog)
	logger.Info("definitions extracted", "variables", aCatalog.Len())

	tracer.New(a.rules, sources, a.config.Extract.ValueAnnotation, logger).Trace(ctx, files.Source, aCatalog)
	logger.Info("usages traced", "variables", aCatalog.Len())

	result.Catalog = aCatalog
	result.Variables = aCatalog.Variables()
	result.Warnings = diagnostics.Messages()
	result.CompletedAt = time.Now()
	if len(result.Warnings) > 0 {
		logger.Warn("analysis completed with skipped files", "count", len(result.Warnings))
	}
	logger.Info("analysis completed",
		"total", result.TotalVariables(),
		"required", result.RequiredVariables(),
		"optional", result.OptionalVariables(),
		"duration", result.Duration())
	return result, nil
}

func (a *Analyzer) extractorConfig() *extractor.Config {
	return &extractor.Config{
		ValueAnnotation:      a.config.Extract.ValueAnnotation,
		PropertiesAnnotation: a.config.Extract.PropertiesAnnotation,
		EnvironmentReceivers: a.config.Extract.EnvironmentReceivers,
	}
}
