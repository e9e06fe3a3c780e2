package catalog

import "time"

// Result is the outcome of one analysis run handed off to documentation generation
type Result struct {
	ProjectName string      `yaml:"projectName"`
	RootPath    string      `yaml:"rootPath"`
	RunID       string      `yaml:"runId"`
	StartedAt   time.Time   `yaml:"startedAt"`
	CompletedAt time.Time   `yaml:"completedAt"`
	Variables   []*Variable `yaml:"variables"`
	Warnings    []string    `yaml:"warnings,omitempty"`
	Catalog     *Catalog    `yaml:"-"`
}

// TotalVariables returns the number of variables
func (r *Result) TotalVariables() int {
	return len(r.Variables)
}

// RequiredVariables returns the number of required variables
func (r *Result) RequiredVariables() int {
	count := 0
	for _, variable := range r.Variables {
		if variable.Required {
			count++
		}
	}
	return count
}

// OptionalVariables returns the number of variables with a default
func (r *Result) OptionalVariables() int {
	return r.TotalVariables() - r.RequiredVariables()
}

// Duration returns the run duration
func (r *Result) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}
