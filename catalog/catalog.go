// Package catalog defines the ordered variable catalog produced by one analysis run.
package catalog

import (
	"fmt"

	"github.com/minio/highwayhash"
	"gopkg.in/yaml.v3"
)

var fingerprintKey = []byte("envdoc-catalog-fingerprint-key-!")

// Catalog is an ordered name to Variable mapping; insertion order is discovery order.
// A catalog is owned by a single run and is not safe for concurrent use.
type Catalog struct {
	names     []string
	variables map[string]*Variable
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{variables: make(map[string]*Variable)}
}

// Define adds the variable unless its name is already defined; the first writer wins
func (c *Catalog) Define(variable *Variable) bool {
	if _, ok := c.variables[variable.Name]; ok {
		return false
	}
	c.names = append(c.names, variable.Name)
	c.variables[variable.Name] = variable
	return true
}

// Has reports whether the name is defined
func (c *Catalog) Has(name string) bool {
	_, ok := c.variables[name]
	return ok
}

// Get returns the variable by name
func (c *Catalog) Get(name string) (*Variable, bool) {
	variable, ok := c.variables[name]
	return variable, ok
}

// Len returns the number of variables
func (c *Catalog) Len() int {
	return len(c.names)
}

// Names returns variable names in discovery order
func (c *Catalog) Names() []string {
	result := make([]string, len(c.names))
	copy(result, c.names)
	return result
}

// Variables returns variables in discovery order
func (c *Catalog) Variables() []*Variable {
	result := make([]*Variable, 0, len(c.names))
	for _, name := range c.names {
		result = append(result, c.variables[name])
	}
	return result
}

// AddUsage appends a usage to a known variable
func (c *Catalog) AddUsage(name string, usage *Usage) bool {
	variable, ok := c.variables[name]
	if !ok {
		return false
	}
	variable.Usages = append(variable.Usages, usage)
	return true
}

// DeduplicateUsages collapses every usage list to one entry per (type, method), keeping the first
func (c *Catalog) DeduplicateUsages() {
	for _, name := range c.names {
		c.variables[name].deduplicateUsages()
	}
}

// Modules returns module names in order of first appearance
func (c *Catalog) Modules() []string {
	var result []string
	seen := map[string]bool{}
	for _, variable := range c.Variables() {
		module := variable.ModuleName()
		if !seen[module] {
			seen[module] = true
			result = append(result, module)
		}
	}
	return result
}

// ByModule groups variables by the module of their definition, keeping discovery order
func (c *Catalog) ByModule() map[string][]*Variable {
	result := make(map[string][]*Variable)
	for _, variable := range c.Variables() {
		module := variable.ModuleName()
		result[module] = append(result[module], variable)
	}
	return result
}

// MarshalYAML encodes the catalog as the ordered variable list
func (c *Catalog) MarshalYAML() (interface{}, error) {
	return c.Variables(), nil
}

// Fingerprint returns a content hash of the catalog in order; equal catalogs have equal fingerprints
func (c *Catalog) Fingerprint() (uint64, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return 0, fmt.Errorf("failed to encode catalog: %w", err)
	}
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, err
	}
	if _, err = hash.Write(data); err != nil {
		return 0, err
	}
	return hash.Sum64(), nil
}
