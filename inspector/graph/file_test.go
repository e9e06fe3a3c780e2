package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/envdoc/inspector/graph"
)

func sampleFile() *graph.File {
	outer := &graph.Function{Name: "run", Owner: "a.App", Location: &graph.Location{Line: 3, EndLine: 12, Start: 30}}
	inner := &graph.Function{Name: "call", Owner: "a.App.Task", Location: &graph.Location{Line: 6, EndLine: 8, Start: 60}}
	constructor := &graph.Function{Name: "App", Owner: "a.App", IsConstructor: true, Location: &graph.Location{Line: 14, EndLine: 15, Start: 140}}
	file := &graph.File{
		Types: []*graph.Type{
			{
				Name:          "App",
				QualifiedName: "a.App",
				Annotations:   graph.Annotations{{Name: "org.springframework.boot.autoconfigure.SpringBootApplication"}},
				Fields: []*graph.Field{
					{Name: "url", Annotations: graph.Annotations{{Name: "Value", Arguments: map[string]string{"value": `"${URL}"`}}}},
					{Name: "plain"},
				},
				Methods: []*graph.Function{outer, constructor},
				Types: []*graph.Type{
					{Name: "Task", QualifiedName: "a.App.Task", Methods: []*graph.Function{inner}},
				},
			},
		},
		Calls: []*graph.Call{
			{Name: "getenv", Arguments: []*graph.Expression{{Kind: "string_literal", Value: "A", IsLiteral: true}}},
			{Name: "getProperty"},
			{Name: "getenv"},
		},
	}
	file.Index()
	return file
}

func TestFile_Queries(t *testing.T) {
	file := sampleFile()

	assert.Len(t, file.AllTypes(), 2)
	assert.Equal(t, "a.App.Task", file.LookupType("a.App.Task").QualifiedName)
	assert.Nil(t, file.LookupType("a.Missing"))
	assert.Len(t, file.TypesWithAnnotation("SpringBootApplication"), 1)
	assert.Len(t, file.FieldsWithAnnotation("Value"), 1)
	assert.Len(t, file.CallsTo("getenv"), 2)

	var names []string
	for _, method := range file.Methods() {
		names = append(names, method.Name)
	}
	assert.Equal(t, []string{"run", "call"}, names)
}

func TestFile_EnclosingFunction(t *testing.T) {
	file := sampleFile()
	tests := []struct {
		description string
		line        int
		expect      string
	}{
		{description: "outer body", line: 4, expect: "run"},
		{description: "innermost wins", line: 7, expect: "call"},
		{description: "constructor", line: 15, expect: "App"},
		{description: "outside", line: 20},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			actual := file.EnclosingFunction(tt.line)
			if tt.expect == "" {
				assert.Nil(t, actual)
				return
			}
			assert.Equal(t, tt.expect, actual.Name)
		})
	}
}

func TestRecords(t *testing.T) {
	annotation := &graph.Annotation{Name: "ConfigurationProperties", Arguments: map[string]string{"prefix": `"app"`}}
	value, ok := annotation.Argument("value", "prefix")
	assert.True(t, ok)
	assert.Equal(t, `"app"`, value)
	_, ok = (*graph.Annotation)(nil).Argument("value")
	assert.False(t, ok)

	var expression *graph.Expression
	_, ok = expression.Literal()
	assert.False(t, ok)
	assert.False(t, expression.IsString())
	assert.True(t, (&graph.Expression{Kind: "text_block", IsLiteral: true}).IsString())
	assert.False(t, (&graph.Expression{Kind: "decimal_integer_literal", IsLiteral: true}).IsString())

	call := &graph.Call{Arguments: []*graph.Expression{{Text: "x"}}}
	assert.Nil(t, call.Argument(1))
	assert.Nil(t, call.Argument(-1))

	var location *graph.Location
	assert.False(t, location.Contains(1))
	assert.Equal(t, "", (&graph.Function{}).BodyText())
}
