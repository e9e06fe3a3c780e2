package catalog

// Definition represents the site and pattern by which a variable was first discovered
type Definition struct {
	Kind               DefinitionKind `yaml:"kind"`
	FilePath           string         `yaml:"filePath"`                     // Slash separated, relative to the scan root
	LineNumber         int            `yaml:"lineNumber"`                   // 1-based line
	CodeSnippet        string         `yaml:"codeSnippet,omitempty"`        // Source excerpt around the definition
	ContainingTypeName string         `yaml:"containingTypeName,omitempty"` // Declaring class for source definitions
	FieldOrMethodName  string         `yaml:"fieldOrMethodName,omitempty"`  // Field or enclosing method
	ModuleName         string         `yaml:"moduleName"`                   // Nearest enclosing build unit
}

// Usage represents a site where a variable value is consumed
type Usage struct {
	ContainingTypeName string       `yaml:"containingTypeName"`
	MethodName         string       `yaml:"methodName"`
	LineNumber         int          `yaml:"lineNumber"`
	FilePath           string       `yaml:"filePath"`
	ContextDescription string       `yaml:"contextDescription"`
	Purpose            UsagePurpose `yaml:"purpose"`
	CodeSnippet        string       `yaml:"codeSnippet,omitempty"`
}

// Key returns the usage uniqueness key
func (u *Usage) Key() string {
	return u.ContainingTypeName + ":" + u.MethodName
}

// Variable represents a catalog entry
type Variable struct {
	Name         string      `yaml:"name"`
	DefaultValue *string     `yaml:"defaultValue"`
	Required     bool        `yaml:"required"`
	Definition   *Definition `yaml:"definition"`
	Usages       []*Usage    `yaml:"usages"`
}

// NewVariable creates a variable; required is derived from the default unless forced
func NewVariable(name string, defaultValue *string, definition *Definition) *Variable {
	return &Variable{
		Name:         name,
		DefaultValue: defaultValue,
		Required:     defaultValue == nil || definition.Kind == EnvLookup,
		Definition:   definition,
		Usages:       []*Usage{},
	}
}

// Default returns the default value and whether one was resolved
func (v *Variable) Default() (string, bool) {
	if v.DefaultValue == nil {
		return "", false
	}
	return *v.DefaultValue, true
}

// ModuleName returns the definition module
func (v *Variable) ModuleName() string {
	if v.Definition == nil {
		return ""
	}
	return v.Definition.ModuleName
}

// Purposes returns the distinct usage purposes in discovery order
func (v *Variable) Purposes() []UsagePurpose {
	var result []UsagePurpose
	seen := map[UsagePurpose]bool{}
	for _, usage := range v.Usages {
		if !seen[usage.Purpose] {
			seen[usage.Purpose] = true
			result = append(result, usage.Purpose)
		}
	}
	return result
}

// deduplicateUsages keeps the first usage per key preserving discovery order
func (v *Variable) deduplicateUsages() {
	if len(v.Usages) < 2 {
		return
	}
	seen := make(map[string]bool, len(v.Usages))
	result := make([]*Usage, 0, len(v.Usages))
	for _, usage := range v.Usages {
		key := usage.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, usage)
	}
	v.Usages = result
}
