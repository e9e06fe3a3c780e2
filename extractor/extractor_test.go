package extractor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/envdoc/catalog"
	"github.com/viant/envdoc/extractor"
	"github.com/viant/envdoc/inspector/java"
	"github.com/viant/envdoc/inspector/repository"
	"github.com/viant/envdoc/resolver"
	"github.com/viant/envdoc/scanner"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		location := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
}

// extract runs resolver and extractor over a fixture tree
func extract(t *testing.T, root string) (*catalog.Catalog, *scanner.Diagnostics) {
	t.Helper()
	ctx := context.Background()
	aScanner := scanner.New(root)
	diagnostics := scanner.NewDiagnostics()
	files, err := aScanner.Walk(ctx, diagnostics)
	require.NoError(t, err)
	sources, err := scanner.NewSources(aScanner, java.NewInspector(nil), 16, diagnostics, nil)
	require.NoError(t, err)
	defaults := resolver.New(aScanner, diagnostics, nil).Resolve(ctx, files.Config)

	aCatalog := catalog.New()
	extractor.New(nil, aScanner, sources, repository.New(nil, root), defaults, diagnostics, nil).Extract(ctx, files, aCatalog)
	return aCatalog, diagnostics
}

func variable(t *testing.T, aCatalog *catalog.Catalog, name string) *catalog.Variable {
	t.Helper()
	result, ok := aCatalog.Get(name)
	require.True(t, ok, "missing variable %v", name)
	return result
}

func TestExtractor_ConfigYAML(t *testing.T) {
	root := filepath.Join(t.TempDir(), "orders")
	writeFiles(t, root, map[string]string{
		"pom.xml": "<project/>",
		"src/main/resources/application.yml": `spring:
  datasource:
    driver: postgres
    url: ${DATABASE_URL}
    username: ${DB_USER:admin}
    password: ${DB_PASSWORD:}
`,
	})
	aCatalog, _ := extract(t, root)
	assert.Equal(t, []string{"DATABASE_URL", "DB_USER", "DB_PASSWORD"}, aCatalog.Names())

	databaseURL := variable(t, aCatalog, "DATABASE_URL")
	assert.True(t, databaseURL.Required)
	assert.Nil(t, databaseURL.DefaultValue)
	assert.Equal(t, catalog.ConfigYAML, databaseURL.Definition.Kind)
	assert.Equal(t, "src/main/resources/application.yml", databaseURL.Definition.FilePath)
	assert.Equal(t, 4, databaseURL.Definition.LineNumber)
	assert.Equal(t, "spring:\n  datasource:\n    driver: postgres\n    url: ${DATABASE_URL}", databaseURL.Definition.CodeSnippet)
	assert.Equal(t, "orders", databaseURL.Definition.ModuleName)

	dbUser := variable(t, aCatalog, "DB_USER")
	assert.False(t, dbUser.Required)
	assert.Equal(t, "admin", *dbUser.DefaultValue)
	assert.Equal(t, "datasource:\n    driver: postgres\n    url: ${DATABASE_URL}\n    username: ${DB_USER:admin}", dbUser.Definition.CodeSnippet)

	dbPassword := variable(t, aCatalog, "DB_PASSWORD")
	assert.False(t, dbPassword.Required)
	assert.Equal(t, "", *dbPassword.DefaultValue)
}

func TestExtractor_ConfigProperties(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/main/resources/application.properties": "server.port=${SERVER_PORT:8080}\n  app.name=${APP_NAME}\n",
	})
	aCatalog, _ := extract(t, root)
	require.Equal(t, 2, aCatalog.Len())

	serverPort := variable(t, aCatalog, "SERVER_PORT")
	assert.False(t, serverPort.Required)
	assert.Equal(t, "8080", *serverPort.DefaultValue)
	assert.Equal(t, catalog.ConfigProperties, serverPort.Definition.Kind)
	assert.Equal(t, 1, serverPort.Definition.LineNumber)

	appName := variable(t, aCatalog, "APP_NAME")
	assert.True(t, appName.Required)
	assert.Equal(t, 2, appName.Definition.LineNumber)
	assert.Equal(t, "app.name=${APP_NAME}", appName.Definition.CodeSnippet)
}

func TestExtractor_SourcePatterns(t *testing.T) {
	root := filepath.Join(t.TempDir(), "shop")
	writeFiles(t, root, map[string]string{
		"src/main/java/com/example/AppSettings.java": `package com.example;

@Component
public class AppSettings {
    @Value("${FEATURE_X:false}")
    private boolean featureX;

    @Value("${DATABASE_URL:jdbc:h2:mem}")
    private String url;

    public void init() {
        String key = System.getenv("SECRET_KEY");
        if (key == null) {
            key = "fallback";
        }
        String home = System.getProperty("app.home", "/opt/app");
        String tmp = System.getProperty("java.io.tmpdir");
        String region = environment.getProperty("cloud.region", "eu-west-1");
        String token = env.getProperty("${API_TOKEN}");
        String other = registry.getProperty("ignored.name");
    }
}
`,
		"src/main/resources/application.yml": "db:\n  url: ${DATABASE_URL}\n",
	})
	aCatalog, diagnostics := extract(t, root)
	assert.Equal(t, 0, diagnostics.Len())
	assert.Equal(t, []string{
		"DATABASE_URL",
		"FEATURE_X",
		"SECRET_KEY",
		"APP_HOME",
		"JAVA_IO_TMPDIR",
		"CLOUD_REGION",
		"API_TOKEN",
	}, aCatalog.Names())

	t.Run("config definition wins", func(t *testing.T) {
		databaseURL := variable(t, aCatalog, "DATABASE_URL")
		assert.Equal(t, catalog.ConfigYAML, databaseURL.Definition.Kind)
		assert.True(t, databaseURL.Required)
		assert.Nil(t, databaseURL.DefaultValue)
	})

	t.Run("annotated field", func(t *testing.T) {
		featureX := variable(t, aCatalog, "FEATURE_X")
		assert.Equal(t, catalog.AnnotatedField, featureX.Definition.Kind)
		assert.Equal(t, "false", *featureX.DefaultValue)
		assert.Equal(t, "com.example.AppSettings", featureX.Definition.ContainingTypeName)
		assert.Equal(t, "featureX", featureX.Definition.FieldOrMethodName)
		assert.Equal(t, 5, featureX.Definition.LineNumber)
		assert.Equal(t, "@Value(\"${FEATURE_X:false}\")\n    private boolean featureX;", featureX.Definition.CodeSnippet)
		assert.Equal(t, "shop", featureX.Definition.ModuleName)
	})

	t.Run("env lookup", func(t *testing.T) {
		secretKey := variable(t, aCatalog, "SECRET_KEY")
		assert.Equal(t, catalog.EnvLookup, secretKey.Definition.Kind)
		assert.True(t, secretKey.Required)
		assert.Nil(t, secretKey.DefaultValue)
		assert.Equal(t, "init", secretKey.Definition.FieldOrMethodName)
		assert.Equal(t, 12, secretKey.Definition.LineNumber)
		assert.Equal(t, `System.getenv("SECRET_KEY")`, secretKey.Definition.CodeSnippet)
	})

	t.Run("system property", func(t *testing.T) {
		appHome := variable(t, aCatalog, "APP_HOME")
		assert.Equal(t, catalog.SystemProperty, appHome.Definition.Kind)
		assert.Equal(t, "/opt/app", *appHome.DefaultValue)
		assert.False(t, appHome.Required)
		assert.True(t, variable(t, aCatalog, "JAVA_IO_TMPDIR").Required)
	})

	t.Run("environment api", func(t *testing.T) {
		region := variable(t, aCatalog, "CLOUD_REGION")
		assert.Equal(t, catalog.EnvironmentAPI, region.Definition.Kind)
		assert.Equal(t, "eu-west-1", *region.DefaultValue)
		token := variable(t, aCatalog, "API_TOKEN")
		assert.True(t, token.Required)
		assert.False(t, aCatalog.Has("IGNORED_NAME"))
	})
}

func TestExtractor_PropertiesClass(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/main/resources/application.yml":       "app:\n  db:\n    url: jdbc:postgresql://prod/db\n    max_pool: 20\n",
		"src/main/resources/application-local.yml": "app:\n  db:\n    user: ${LOCAL_USER:local}\n",
		"src/main/java/com/example/DbProperties.java": `package com.example;

@ConfigurationProperties(prefix = "app.db")
public class DbProperties {
    private String url;
    private int maxPool;
    private int timeoutSeconds = 30;
    private String user;
    private String schema;
    private static final String REGION = "eu";
}
`,
		"src/main/java/com/example/CacheProperties.java": `package com.example;

@ConfigurationProperties("app.cache")
public class CacheProperties {
    private String ttl = "60s";
}
`,
	})
	aCatalog, _ := extract(t, root)

	tests := []struct {
		name         string
		defaultValue *string
		required     bool
	}{
		{name: "APP_DB_URL", defaultValue: strPtr("jdbc:postgresql://prod/db")},
		{name: "APP_DB_MAX_POOL", defaultValue: strPtr("20")},
		{name: "APP_DB_TIMEOUT_SECONDS", defaultValue: strPtr("30")},
		{name: "APP_DB_USER", defaultValue: strPtr("local")},
		{name: "APP_DB_SCHEMA", required: true},
		{name: "APP_CACHE_TTL", defaultValue: strPtr("60s")},
		{name: "APP_DB_REGION", defaultValue: strPtr("eu")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := variable(t, aCatalog, tt.name)
			assert.Equal(t, catalog.PropertiesClassField, actual.Definition.Kind)
			assert.Equal(t, tt.defaultValue, actual.DefaultValue)
			assert.Equal(t, tt.required, actual.Required)
		})
	}
	assert.True(t, aCatalog.Has("LOCAL_USER"))
	dbURL := variable(t, aCatalog, "APP_DB_URL")
	assert.Equal(t, "com.example.DbProperties", dbURL.Definition.ContainingTypeName)
	assert.Equal(t, "url", dbURL.Definition.FieldOrMethodName)
}

func TestExtractor_PropertiesClassWithoutPrefix(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/main/java/com/example/Root.java": `package com.example;

@ConfigurationProperties
public class Root {
    private String name;
    private int port = 8080;
}
`,
		"src/main/java/com/example/Strict.java": `package com.example;

@ConfigurationProperties(ignoreUnknownFields = false)
public class Strict {
    private String url;

    public void init() {
        String value = System.getenv("URL");
    }
}
`,
	})
	aCatalog, _ := extract(t, root)
	assert.Equal(t, []string{"URL"}, aCatalog.Names())
	assert.Equal(t, catalog.EnvLookup, variable(t, aCatalog, "URL").Definition.Kind)
}

func TestExtractor_SkipsBrokenFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/main/java/com/example/Broken.java":   "package com.example;\npublic class Broken {\n void x( {\n System.getenv(\"BROKEN\");\n}\n",
		"src/main/java/com/example/Good.java":     "package com.example;\npublic class Good {\n void x() { System.getenv(\"GOOD\"); }\n}\n",
		"src/test/java/com/example/GoodTest.java": "package com.example;\npublic class GoodTest {\n void x() { System.getenv(\"TEST_ONLY\"); }\n}\n",
		"target/classes/application.yml":          "a: ${TARGET_ONLY}\n",
	})
	aCatalog, diagnostics := extract(t, root)
	assert.Equal(t, []string{"GOOD"}, aCatalog.Names())
	require.Equal(t, 1, diagnostics.Len())
	assert.Equal(t, "src/main/java/com/example/Broken.java", diagnostics.Items()[0].Path)
}

func strPtr(value string) *string {
	return &value
}
