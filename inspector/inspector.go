package inspector

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/envdoc/inspector/graph"
	"github.com/viant/envdoc/inspector/java"
)

// ErrUnsupported is returned for files no registered inspector can parse
var ErrUnsupported = errors.New("unsupported file type")

// Inspector provides an interface for inspecting source code
type Inspector interface {
	// InspectContent parses loaded source; filename is recorded as the file path
	InspectContent(ctx context.Context, filename string, src []byte) (*graph.File, error)
}

// Factory creates appropriate inspectors based on file extension
type Factory struct {
	config     *graph.Config
	inspectors map[string]Inspector
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(config *graph.Config) *Factory {
	if config == nil {
		config = graph.DefaultConfig()
	}
	javaInspector := java.NewInspector(config)
	return &Factory{
		config: config,
		inspectors: map[string]Inspector{
			".java": javaInspector,
		},
	}
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if inspector, ok := f.inspectors[ext]; ok {
		return inspector, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
}

// Supports reports whether an inspector is registered for the extension
func (f *Factory) Supports(ext string) bool {
	_, ok := f.inspectors[strings.ToLower(ext)]
	return ok
}

// Extensions returns the registered extensions, sorted
func (f *Factory) Extensions() []string {
	result := make([]string, 0, len(f.inspectors))
	for ext := range f.inspectors {
		result = append(result, ext)
	}
	sort.Strings(result)
	return result
}

// InspectContent is a convenience method that gets the appropriate inspector and inspects the content
func (f *Factory) InspectContent(ctx context.Context, filename string, src []byte) (*graph.File, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	return inspector.InspectContent(ctx, filename, src)
}
