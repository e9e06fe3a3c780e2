package catalog

// DefinitionKind identifies the pattern a variable was discovered by
type DefinitionKind string

const (
	ConfigYAML           DefinitionKind = "CONFIG_YAML"            // ${NAME} in a YAML configuration file
	ConfigProperties     DefinitionKind = "CONFIG_PROPERTIES"      // ${NAME} in a .properties file
	AnnotatedField       DefinitionKind = "ANNOTATED_FIELD"        // field bound with @Value("${NAME}")
	PropertiesClassField DefinitionKind = "PROPERTIES_CLASS_FIELD" // field of a @ConfigurationProperties class
	EnvLookup            DefinitionKind = "ENV_LOOKUP"             // System.getenv("NAME")
	SystemProperty       DefinitionKind = "SYSTEM_PROPERTY"        // System.getProperty("name", "default")
	EnvironmentAPI       DefinitionKind = "ENVIRONMENT_API"        // environment.getProperty("name", "default")
)

// DefinitionKinds lists every kind in extraction precedence order
var DefinitionKinds = []DefinitionKind{
	ConfigYAML,
	ConfigProperties,
	AnnotatedField,
	PropertiesClassField,
	EnvLookup,
	SystemProperty,
	EnvironmentAPI,
}

// IsConfigFile reports whether the kind originates from a configuration file
func (k DefinitionKind) IsConfigFile() bool {
	return k == ConfigYAML || k == ConfigProperties
}

// Valid reports whether the kind is one of DefinitionKinds
func (k DefinitionKind) Valid() bool {
	for _, candidate := range DefinitionKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// UsagePurpose describes why a variable value is consumed
type UsagePurpose string

const (
	DatabaseConnection UsagePurpose = "DATABASE_CONNECTION"
	ExternalAPI        UsagePurpose = "EXTERNAL_API"
	Authentication     UsagePurpose = "AUTHENTICATION"
	FeatureFlag        UsagePurpose = "FEATURE_FLAG"
	LoggingConfig      UsagePurpose = "LOGGING_CONFIG"
	CacheConfig        UsagePurpose = "CACHE_CONFIG"
	ServerConfig       UsagePurpose = "SERVER_CONFIG"
	MessagingConfig    UsagePurpose = "MESSAGING_CONFIG"
	Other              UsagePurpose = "OTHER"
)

var purposeDescriptions = map[UsagePurpose]string{
	DatabaseConnection: "Database connection",
	ExternalAPI:        "External API",
	Authentication:     "Authentication",
	FeatureFlag:        "Feature flag",
	LoggingConfig:      "Logging configuration",
	CacheConfig:        "Cache configuration",
	ServerConfig:       "Server configuration",
	MessagingConfig:    "Messaging configuration",
	Other:              "Other",
}

// Description returns a human readable purpose label
func (p UsagePurpose) Description() string {
	if description, ok := purposeDescriptions[p]; ok {
		return description
	}
	return string(p)
}
