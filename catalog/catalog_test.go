package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/envdoc/catalog"
	"gopkg.in/yaml.v3"
)

func strPtr(value string) *string {
	return &value
}

func definition(kind catalog.DefinitionKind, module string) *catalog.Definition {
	return &catalog.Definition{Kind: kind, FilePath: "src/main/resources/application.yml", LineNumber: 3, ModuleName: module}
}

func TestNewVariable_Required(t *testing.T) {
	tests := []struct {
		name         string
		defaultValue *string
		kind         catalog.DefinitionKind
		expected     bool
	}{
		{name: "no default", kind: catalog.ConfigYAML, expected: true},
		{name: "default", defaultValue: strPtr("admin"), kind: catalog.ConfigYAML, expected: false},
		{name: "empty default", defaultValue: strPtr(""), kind: catalog.ConfigProperties, expected: false},
		{name: "env lookup forces required", defaultValue: strPtr("x"), kind: catalog.EnvLookup, expected: true},
		{name: "system property default", defaultValue: strPtr("8080"), kind: catalog.SystemProperty, expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variable := catalog.NewVariable("X", tt.defaultValue, definition(tt.kind, "app"))
			assert.Equal(t, tt.expected, variable.Required)
			assert.NotNil(t, variable.Usages)
		})
	}
}

func TestCatalog_DefineFirstWriterWins(t *testing.T) {
	aCatalog := catalog.New()
	assert.True(t, aCatalog.Define(catalog.NewVariable("DB_URL", nil, definition(catalog.ConfigYAML, "app"))))
	assert.True(t, aCatalog.Define(catalog.NewVariable("API_KEY", nil, definition(catalog.EnvLookup, "app"))))
	assert.False(t, aCatalog.Define(catalog.NewVariable("DB_URL", strPtr("jdbc"), definition(catalog.AnnotatedField, "app"))))

	assert.Equal(t, 2, aCatalog.Len())
	assert.Equal(t, []string{"DB_URL", "API_KEY"}, aCatalog.Names())
	variable, ok := aCatalog.Get("DB_URL")
	require.True(t, ok)
	assert.Equal(t, catalog.ConfigYAML, variable.Definition.Kind)
	assert.Nil(t, variable.DefaultValue)
	assert.True(t, aCatalog.Has("API_KEY"))
	assert.False(t, aCatalog.Has("MISSING"))
}

func TestCatalog_DeduplicateUsages(t *testing.T) {
	aCatalog := catalog.New()
	aCatalog.Define(catalog.NewVariable("DB_URL", nil, definition(catalog.ConfigYAML, "app")))
	usages := []*catalog.Usage{
		{ContainingTypeName: "com.example.Repo", MethodName: "load", LineNumber: 10},
		{ContainingTypeName: "com.example.Repo", MethodName: "save", LineNumber: 20},
		{ContainingTypeName: "com.example.Repo", MethodName: "load", LineNumber: 30},
		{ContainingTypeName: "com.example.Other", MethodName: "load", LineNumber: 40},
	}
	for _, usage := range usages {
		assert.True(t, aCatalog.AddUsage("DB_URL", usage))
	}
	assert.False(t, aCatalog.AddUsage("MISSING", usages[0]))

	aCatalog.DeduplicateUsages()
	variable, _ := aCatalog.Get("DB_URL")
	var lines []int
	for _, usage := range variable.Usages {
		lines = append(lines, usage.LineNumber)
	}
	assert.Equal(t, []int{10, 20, 40}, lines)
}

func TestCatalog_ByModule(t *testing.T) {
	aCatalog := catalog.New()
	aCatalog.Define(catalog.NewVariable("A", nil, definition(catalog.ConfigYAML, "orders")))
	aCatalog.Define(catalog.NewVariable("B", nil, definition(catalog.ConfigYAML, "billing")))
	aCatalog.Define(catalog.NewVariable("C", nil, definition(catalog.ConfigYAML, "orders")))

	assert.Equal(t, []string{"orders", "billing"}, aCatalog.Modules())
	byModule := aCatalog.ByModule()
	require.Len(t, byModule["orders"], 2)
	assert.Equal(t, "C", byModule["orders"][1].Name)
	assert.Len(t, byModule["billing"], 1)
}

func TestCatalog_MarshalYAML(t *testing.T) {
	aCatalog := catalog.New()
	variable := catalog.NewVariable("DB_USER", strPtr("admin"), definition(catalog.ConfigYAML, "app"))
	aCatalog.Define(variable)
	aCatalog.AddUsage("DB_USER", &catalog.Usage{ContainingTypeName: "com.example.DbConfig", MethodName: "dataSource", Purpose: catalog.DatabaseConnection})

	data, err := yaml.Marshal(aCatalog)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "DB_USER", decoded[0]["name"])
	assert.Equal(t, "admin", decoded[0]["defaultValue"])
	assert.Equal(t, false, decoded[0]["required"])
	assert.Contains(t, string(data), "purpose: DATABASE_CONNECTION")
	assert.Contains(t, string(data), "kind: CONFIG_YAML")
}

func TestCatalog_Fingerprint(t *testing.T) {
	build := func(names ...string) *catalog.Catalog {
		aCatalog := catalog.New()
		for _, name := range names {
			aCatalog.Define(catalog.NewVariable(name, nil, definition(catalog.ConfigYAML, "app")))
		}
		return aCatalog
	}
	first, err := build("A", "B").Fingerprint()
	require.NoError(t, err)
	second, err := build("A", "B").Fingerprint()
	require.NoError(t, err)
	reordered, err := build("B", "A").Fingerprint()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, reordered)
}

func TestResult_Counters(t *testing.T) {
	started := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	result := &catalog.Result{
		StartedAt:   started,
		CompletedAt: started.Add(2 * time.Second),
		Variables: []*catalog.Variable{
			catalog.NewVariable("A", nil, definition(catalog.ConfigYAML, "app")),
			catalog.NewVariable("B", strPtr("1"), definition(catalog.ConfigYAML, "app")),
			catalog.NewVariable("C", strPtr("1"), definition(catalog.EnvLookup, "app")),
		},
	}
	assert.Equal(t, 3, result.TotalVariables())
	assert.Equal(t, 2, result.RequiredVariables())
	assert.Equal(t, 1, result.OptionalVariables())
	assert.Equal(t, 2*time.Second, result.Duration())
}

func TestKinds(t *testing.T) {
	assert.True(t, catalog.ConfigYAML.IsConfigFile())
	assert.False(t, catalog.AnnotatedField.IsConfigFile())
	assert.True(t, catalog.EnvironmentAPI.Valid())
	assert.False(t, catalog.DefinitionKind("UNKNOWN").Valid())
	assert.Equal(t, "Cache configuration", catalog.CacheConfig.Description())
}

func TestVariable_Purposes(t *testing.T) {
	variable := catalog.NewVariable("A", nil, definition(catalog.ConfigYAML, "app"))
	variable.Usages = []*catalog.Usage{
		{Purpose: catalog.CacheConfig}, {Purpose: catalog.Other}, {Purpose: catalog.CacheConfig},
	}
	assert.Equal(t, []catalog.UsagePurpose{catalog.CacheConfig, catalog.Other}, variable.Purposes())
}
