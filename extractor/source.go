package extractor

import (
	"strings"

	"github.com/viant/envdoc/catalog"
	"github.com/viant/envdoc/inspector/graph"
	"github.com/viant/envdoc/placeholder"
)

const unknownMember = "unknown"

// annotatedFields extracts placeholders bound with @Value; every placeholder of the annotation counts
func (e *Extractor) annotatedFields(aUnit *unit) []*candidate {
	var result []*candidate
	for _, field := range aUnit.tree.FieldsWithAnnotation(e.config.ValueAnnotation) {
		content, ok := field.Annotation(e.config.ValueAnnotation).Argument("value")
		if !ok {
			continue
		}
		content = strings.ReplaceAll(content, `"`, "")
		for _, match := range placeholder.FindAll(content) {
			result = append(result, &candidate{
				name:         match.Name,
				defaultValue: match.DefaultValue(),
				definition: &catalog.Definition{
					Kind:               catalog.AnnotatedField,
					FilePath:           aUnit.file.RelPath,
					LineNumber:         field.Location.Line,
					CodeSnippet:        strings.TrimSpace(field.Content()),
					ContainingTypeName: field.Owner,
					FieldOrMethodName:  field.Name,
					ModuleName:         aUnit.module,
				},
			})
		}
	}
	return result
}

// propertiesClassFields derives one variable per field of a prefix bound class
func (e *Extractor) propertiesClassFields(aUnit *unit) []*candidate {
	var result []*candidate
	for _, aType := range aUnit.tree.TypesWithAnnotation(e.config.PropertiesAnnotation) {
		prefix, ok := propertiesPrefix(aType.Annotation(e.config.PropertiesAnnotation))
		if !ok {
			continue
		}
		for _, field := range aType.Fields {
			property := prefix + "." + placeholder.Kebab(field.Name)
			result = append(result, &candidate{
				name:         placeholder.EnvName(property),
				defaultValue: e.propertyDefault(property, field),
				definition: &catalog.Definition{
					Kind:               catalog.PropertiesClassField,
					FilePath:           aUnit.file.RelPath,
					LineNumber:         field.Location.Line,
					CodeSnippet:        strings.TrimSpace(field.Content()),
					ContainingTypeName: aType.QualifiedName,
					FieldOrMethodName:  field.Name,
					ModuleName:         aUnit.module,
				},
			})
		}
	}
	return result
}

// propertyDefault consults configuration files first, then the literal field initializer
func (e *Extractor) propertyDefault(property string, field *graph.Field) *string {
	if value, ok := e.defaults.Lookup(property); ok {
		return stringPtr(value)
	}
	if value, ok := field.Initializer.Literal(); ok {
		return stringPtr(value)
	}
	return nil
}

// propertiesPrefix returns the prefix or value element of @ConfigurationProperties; a class without one is not prefix bound
func propertiesPrefix(annotation *graph.Annotation) (string, bool) {
	value, ok := annotation.Argument("prefix", "value")
	if !ok {
		return "", false
	}
	prefix := strings.TrimSpace(strings.ReplaceAll(value, `"`, ""))
	return prefix, prefix != ""
}

// envLookups extracts System.getenv("NAME"); the name is always required
func (e *Extractor) envLookups(aUnit *unit) []*candidate {
	var result []*candidate
	for _, call := range aUnit.tree.CallsTo("getenv") {
		if !isSystem(call.Receiver) {
			continue
		}
		for _, argument := range call.Arguments {
			if !argument.IsString() {
				continue
			}
			result = append(result, &candidate{
				name:       argument.Value,
				definition: e.callDefinition(catalog.EnvLookup, aUnit, call),
			})
		}
	}
	return result
}

// systemProperties extracts System.getProperty("name", "default")
func (e *Extractor) systemProperties(aUnit *unit) []*candidate {
	var result []*candidate
	for _, call := range aUnit.tree.CallsTo("getProperty") {
		if !isSystem(call.Receiver) || !call.Argument(0).IsString() {
			continue
		}
		result = append(result, &candidate{
			name:         placeholder.EnvName(call.Argument(0).Value),
			defaultValue: literalArgument(call, 1),
			definition:   e.callDefinition(catalog.SystemProperty, aUnit, call),
		})
	}
	return result
}

// environmentLookups extracts getProperty calls on an environment accessor
func (e *Extractor) environmentLookups(aUnit *unit) []*candidate {
	var result []*candidate
	for _, call := range aUnit.tree.CallsTo("getProperty") {
		if !e.isEnvironmentReceiver(call.Receiver) || !call.Argument(0).IsString() {
			continue
		}
		property := call.Argument(0).Value
		name := placeholder.EnvName(property)
		if matches := placeholder.FindAll(property); len(matches) > 0 {
			name = matches[0].Name
		}
		result = append(result, &candidate{
			name:         name,
			defaultValue: literalArgument(call, 1),
			definition:   e.callDefinition(catalog.EnvironmentAPI, aUnit, call),
		})
	}
	return result
}

func (e *Extractor) callDefinition(kind catalog.DefinitionKind, aUnit *unit, call *graph.Call) *catalog.Definition {
	member := unknownMember
	if function := aUnit.tree.EnclosingFunction(call.Location.Line); function != nil {
		member = function.Name
	}
	return &catalog.Definition{
		Kind:               kind,
		FilePath:           aUnit.file.RelPath,
		LineNumber:         call.Location.Line,
		CodeSnippet:        strings.TrimSpace(call.Location.Raw),
		ContainingTypeName: call.Owner,
		FieldOrMethodName:  member,
		ModuleName:         aUnit.module,
	}
}

func (e *Extractor) isEnvironmentReceiver(receiver string) bool {
	if receiver == "" {
		return false
	}
	for _, candidate := range e.config.EnvironmentReceivers {
		if strings.Contains(receiver, candidate) {
			return true
		}
	}
	return false
}

func isSystem(receiver string) bool {
	return receiver == "System" || receiver == "java.lang.System"
}

func literalArgument(call *graph.Call, index int) *string {
	if value, ok := call.Argument(index).Literal(); ok {
		return stringPtr(value)
	}
	return nil
}
