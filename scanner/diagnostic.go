package scanner

import (
	"fmt"

	"go.uber.org/multierr"
)

// Phases recorded with file level failures
const (
	PhaseRead    = "read"
	PhaseParse   = "parse"
	PhaseResolve = "resolve"
	PhaseExtract = "extract"
)

// Diagnostic records a file level failure; the file contributed nothing to the phase
type Diagnostic struct {
	Path  string // Slash separated path relative to the scan root
	Phase string
	Err   error
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s %s: %v", d.Phase, d.Path, d.Err)
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// Diagnostics collects file level failures of one run
type Diagnostics struct {
	items []*Diagnostic
	seen  map[string]bool
}

// NewDiagnostics creates an empty collection
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{seen: map[string]bool{}}
}

// Add records a failure once per path and phase
func (d *Diagnostics) Add(path, phase string, err error) {
	if err == nil {
		return
	}
	key := phase + ":" + path
	if d.seen[key] {
		return
	}
	d.seen[key] = true
	d.items = append(d.items, &Diagnostic{Path: path, Phase: phase, Err: err})
}

// Items returns failures in the order they were recorded
func (d *Diagnostics) Items() []*Diagnostic {
	return d.items
}

// Len returns the number of failures
func (d *Diagnostics) Len() int {
	return len(d.items)
}

// Messages returns failures as text
func (d *Diagnostics) Messages() []string {
	var result []string
	for _, item := range d.items {
		result = append(result, item.Error())
	}
	return result
}

// Err combines all failures into one error, nil when there are none
func (d *Diagnostics) Err() error {
	var err error
	for _, item := range d.items {
		err = multierr.Append(err, item)
	}
	return err
}
