package graph

// File represents a source code file with its types and symbols
type File struct {
	Name      string   // File name
	Path      string   // File path
	Package   string   // Package name
	Imports   []Import // Imports used in this file
	Types     []*Type  // Top level types declared in this file
	Calls     []*Call  // Method invocations in source order
	HasErrors bool     // Whether the parser reported syntax errors
	Hash      uint64   // Content hash

	typeMap map[string]*Type // Qualified type name lookup
}

// Import represents an imported package
type Import struct {
	Name string // Simple name or '*'
	Path string // Import path
}

// Index builds the lookup maps; it must be called once the file is fully populated
func (f *File) Index() {
	f.typeMap = make(map[string]*Type)
	for _, aType := range f.AllTypes() {
		if _, ok := f.typeMap[aType.QualifiedName]; !ok {
			f.typeMap[aType.QualifiedName] = aType
		}
	}
}

// LookupType retrieves a type by qualified name
func (f *File) LookupType(qualifiedName string) *Type {
	return f.typeMap[qualifiedName]
}

// PrimaryType returns the first top level type
func (f *File) PrimaryType() *Type {
	if len(f.Types) == 0 {
		return nil
	}
	return f.Types[0]
}

// AllTypes returns top level and nested types, depth first in declaration order
func (f *File) AllTypes() []*Type {
	var result []*Type
	var visit func(types []*Type)
	visit = func(types []*Type) {
		for _, aType := range types {
			result = append(result, aType)
			visit(aType.Types)
		}
	}
	visit(f.Types)
	return result
}

// Fields returns all fields of all types
func (f *File) Fields() []*Field {
	var result []*Field
	for _, aType := range f.AllTypes() {
		result = append(result, aType.Fields...)
	}
	return result
}

// FieldsWithAnnotation returns fields carrying the annotation
func (f *File) FieldsWithAnnotation(name string) []*Field {
	var result []*Field
	for _, field := range f.Fields() {
		if field.Annotation(name) != nil {
			result = append(result, field)
		}
	}
	return result
}

// TypesWithAnnotation returns types carrying the annotation
func (f *File) TypesWithAnnotation(name string) []*Type {
	var result []*Type
	for _, aType := range f.AllTypes() {
		if aType.Annotation(name) != nil {
			result = append(result, aType)
		}
	}
	return result
}

// Methods returns all non constructor functions of all types
func (f *File) Methods() []*Function {
	var result []*Function
	for _, aType := range f.AllTypes() {
		for _, method := range aType.Methods {
			if !method.IsConstructor {
				result = append(result, method)
			}
		}
	}
	return result
}

// CallsTo returns invocations of the method name
func (f *File) CallsTo(name string) []*Call {
	var result []*Call
	for _, call := range f.Calls {
		if call.Name == name {
			result = append(result, call)
		}
	}
	return result
}

// EnclosingFunction returns the innermost function whose span contains the 1-based line
func (f *File) EnclosingFunction(line int) *Function {
	var result *Function
	for _, aType := range f.AllTypes() {
		for _, method := range aType.Methods {
			if !method.Location.Contains(line) {
				continue
			}
			if result == nil || method.Location.Start >= result.Location.Start {
				result = method
			}
		}
	}
	return result
}
