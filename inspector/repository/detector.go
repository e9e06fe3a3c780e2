package repository

import (
	"context"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// DefaultMarkers are build descriptors identifying a module directory
var DefaultMarkers = []string{
	"pom.xml",          // Java/Maven projects
	"build.gradle",     // Java/Gradle projects
	"build.gradle.kts", // Kotlin DSL Gradle projects
}

var (
	mavenParentRegex   = regexp.MustCompile(`(?s)<parent>.*?</parent>`)
	mavenArtifactRegex = regexp.MustCompile(`<artifactId>\s*([^<\s]+)\s*</artifactId>`)
	gradleNameRegex    = regexp.MustCompile(`(?:rootProject|project)\.name\s*=\s*['"]([^'"]+)['"]`)
)

// Detector resolves modules and project information below a project root
type Detector struct {
	fs      afs.Service
	root    string
	markers []string
	mux     sync.Mutex
	modules map[string]*Module // Resolved module per relative directory
}

// New creates a detector for the project root reading through fs (nil means the default afs service);
// no markers means DefaultMarkers
func New(fs afs.Service, root string, markers ...string) *Detector {
	if fs == nil {
		fs = afs.New()
	}
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	return &Detector{
		fs:      fs,
		root:    root,
		markers: markers,
		modules: make(map[string]*Module),
	}
}

// Module returns the module of a file given by its slash separated path relative to the root.
// The walk stops at the root; when the nearest marker is the root itself, or no marker is found,
// the module is named after the root directory.
func (d *Detector) Module(ctx context.Context, relativeFile string) *Module {
	return d.moduleOf(ctx, path.Dir(filepath.ToSlash(relativeFile)))
}

// ModuleName returns the module name of a relative file
func (d *Detector) ModuleName(ctx context.Context, relativeFile string) string {
	return d.Module(ctx, relativeFile).Name
}

func (d *Detector) moduleOf(ctx context.Context, dir string) *Module {
	if dir == "." || dir == "/" {
		dir = ""
	}
	d.mux.Lock()
	module, ok := d.modules[dir]
	d.mux.Unlock()
	if ok {
		return module
	}

	if dir == "" {
		module = &Module{Name: filepath.Base(d.root), Marker: d.findMarker(ctx, "")}
	} else if marker := d.findMarker(ctx, dir); marker != "" {
		module = &Module{Name: dir, Path: dir, Marker: marker}
	} else {
		module = d.moduleOf(ctx, parentDir(dir))
	}

	d.mux.Lock()
	d.modules[dir] = module
	d.mux.Unlock()
	return module
}

func (d *Detector) findMarker(ctx context.Context, dir string) string {
	for _, marker := range d.markers {
		location := filepath.Join(d.root, filepath.FromSlash(dir), marker)
		if ok, _ := d.fs.Exists(ctx, location); ok {
			return marker
		}
	}
	return ""
}

func parentDir(dir string) string {
	parent := path.Dir(dir)
	if parent == "." {
		return ""
	}
	return parent
}

// DetectProject returns project information for the root, naming it from build descriptors
func (d *Detector) DetectProject(ctx context.Context) *Project {
	project := &Project{
		RootPath: d.root,
		Type:     "unknown",
		Name:     filepath.Base(d.root),
	}
	if name := d.extractMavenProjectName(ctx); name != "" {
		project.Type, project.Name = "maven", name
		return project
	}
	if name := d.extractGradleProjectName(ctx); name != "" {
		project.Type, project.Name = "gradle", name
		return project
	}
	if name := d.extractGoModuleName(ctx); name != "" {
		project.Type, project.Name = "go", name
	}
	return project
}

func (d *Detector) download(ctx context.Context, name string) []byte {
	content, err := d.fs.DownloadWithURL(ctx, filepath.Join(d.root, name))
	if err != nil {
		return nil
	}
	return content
}

func (d *Detector) extractMavenProjectName(ctx context.Context) string {
	data := d.download(ctx, "pom.xml")
	if len(data) == 0 {
		return ""
	}
	// The parent block carries the parent's artifact id
	data = mavenParentRegex.ReplaceAll(data, nil)
	matches := mavenArtifactRegex.FindSubmatch(data)
	if len(matches) < 2 {
		return ""
	}
	return string(matches[1])
}

func (d *Detector) extractGradleProjectName(ctx context.Context) string {
	for _, name := range []string{"settings.gradle", "settings.gradle.kts", "build.gradle", "build.gradle.kts"} {
		data := d.download(ctx, name)
		if len(data) == 0 {
			continue
		}
		if matches := gradleNameRegex.FindSubmatch(data); len(matches) == 2 {
			return strings.TrimSpace(string(matches[1]))
		}
	}
	return ""
}

func (d *Detector) extractGoModuleName(ctx context.Context) string {
	content := d.download(ctx, "go.mod")
	if len(content) == 0 {
		return ""
	}
	mod, err := modfile.ParseLax("go.mod", content, nil)
	if err != nil || mod.Module == nil {
		return ""
	}
	return path.Base(mod.Module.Mod.Path)
}
